package validator_test

import (
	"net/http"
	"rental/shared/failure"
	"rental/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	StartDate  string `json:"start_date"  validate:"required,calendardate"`
	EndDate    string `json:"end_date"    validate:"required,calendardate"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        stayRequest
		expectError string
	}{
		{
			name: "valid struct",
			data: stayRequest{
				PropertyID: "550e8400-e29b-41d4-a716-446655440000",
				StartDate:  "2025-06-01",
				EndDate:    "2025-06-05",
			},
		},
		{
			name: "missing property",
			data: stayRequest{
				StartDate: "2025-06-01",
				EndDate:   "2025-06-05",
			},
			expectError: "PropertyID is required",
		},
		{
			name: "property is not a uuid",
			data: stayRequest{
				PropertyID: "p1",
				StartDate:  "2025-06-01",
				EndDate:    "2025-06-05",
			},
			expectError: "PropertyID must be a valid UUID",
		},
		{
			name: "date with time of day",
			data: stayRequest{
				PropertyID: "550e8400-e29b-41d4-a716-446655440000",
				StartDate:  "2025-06-01T10:00:00Z",
				EndDate:    "2025-06-05",
			},
			expectError: "StartDate must be a date formatted as YYYY-MM-DD",
		},
		{
			name: "impossible date",
			data: stayRequest{
				PropertyID: "550e8400-e29b-41d4-a716-446655440000",
				StartDate:  "2025-06-01",
				EndDate:    "2025-02-30",
			},
			expectError: "EndDate must be a date formatted as YYYY-MM-DD",
		},
		{
			name: "invalid email",
			data: stayRequest{
				PropertyID: "550e8400-e29b-41d4-a716-446655440000",
				StartDate:  "2025-06-01",
				EndDate:    "2025-06-05",
				GuestEmail: "not-an-email",
			},
			expectError: "GuestEmail must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expectError, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid uuid", field: "550e8400-e29b-41d4-a716-446655440000", tag: "uuid"},
		{name: "invalid uuid", field: "abc", tag: "uuid", expectError: true},
		{name: "valid calendar date", field: "2024-02-29", tag: "calendardate"},
		{name: "invalid calendar date", field: "2023-02-29", tag: "calendardate", expectError: true},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "zero value passes empty", field: 0, tag: "empty"},
		{name: "non zero fails empty", field: 3, tag: "empty", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"property_id":"550e8400-e29b-41d4-a716-446655440000","start_date":"2025-06-01","end_date":"2025-06-01"}`,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"property_id":}`,
			expectError: true,
		},
		{
			name:        "unknown field",
			jsonBody:    `{"property_id":"550e8400-e29b-41d4-a716-446655440000","start_date":"2025-06-01","end_date":"2025-06-01","price":10}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
