package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"rental/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("bad dates"), code: http.StatusBadRequest, message: "bad dates"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("end before start")), code: http.StatusBadRequest, message: "end before start"},
		{name: "unauthorized", err: failure.Unauthorized("no actor"), code: http.StatusUnauthorized, message: "no actor"},
		{name: "forbidden", err: failure.Forbidden("not yours"), code: http.StatusForbidden, message: "not yours"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("dates taken"), code: http.StatusConflict, message: "dates taken"},
		{name: "wrap", err: failure.Wrap(http.StatusConflict, "stale", errSentinel), code: http.StatusConflict, message: "stale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
}

func TestGetCode_WrappedFailure(t *testing.T) {
	err := fmt.Errorf("failed to create booking: %w", failure.Conflict("dates taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, failure.Is(err, http.StatusConflict))
	assert.False(t, failure.Is(err, http.StatusNotFound))
}

func TestWrap_KeepsCause(t *testing.T) {
	err := failure.Wrap(http.StatusConflict, "booking was modified concurrently", errSentinel)

	assert.ErrorIs(t, err, errSentinel)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", err), errSentinel)
}
