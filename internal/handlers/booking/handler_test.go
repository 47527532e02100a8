package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	"rental/internal/domains/reservation/model/dto"
	reservationMocks "rental/internal/domains/reservation/mocks"
	"rental/internal/handlers/booking"
	"rental/shared/constant"
	"rental/shared/failure"
)

type passAuth struct{}

func (passAuth) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, "user-guest")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRouter(svc *reservationMocks.MockBooking) http.Handler {
	router := chi.NewRouter()
	handler := booking.New(svc, passAuth{}, mocks.NewOtel())
	handler.Router(router)

	return router
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *reservationMocks.MockBooking)
		wantCode int
		wantBody string
	}{
		{
			name: "created",
			body: `{"property_id":"5b0f6a1e-4c1d-4d53-9d7e-0c8b1f2a3e41","start_date":"2025-06-01","end_date":"2025-06-03"}`,
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, "2025-06-01", req.StartDate)

						return dto.BookingResponse{ID: "b-1", Status: "ACTIVE"}, nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"b-1"`,
		},
		{
			name:     "malformed body",
			body:     `{"property_id":`,
			setup:    func(*reservationMocks.MockBooking) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing dates",
			body:     `{"property_id":"5b0f6a1e-4c1d-4d53-9d7e-0c8b1f2a3e41"}`,
			setup:    func(*reservationMocks.MockBooking) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "dates taken",
			body: `{"property_id":"5b0f6a1e-4c1d-4d53-9d7e-0c8b1f2a3e41","start_date":"2025-06-01","end_date":"2025-06-03"}`,
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Conflict("property is not available for the selected dates"))
			},
			wantCode: http.StatusConflict,
			wantBody: "not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := reservationMocks.NewMockBooking(gomock.NewController(t))
			tt.setup(svc)

			req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestFindBooking_PassesQuery(t *testing.T) {
	svc := reservationMocks.NewMockBooking(gomock.NewController(t))
	svc.EXPECT().Find(gomock.Any(), dto.FindBookingRequest{
		PropertyID: "p-1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-03",
	}).Return(dto.BookingResponse{ID: "b-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings/lookup?property_id=p-1&start_date=2025-06-01&end_date=2025-06-03", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b-1", body.Data.ID)
}

func TestBookingLifecycleRoutes(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		setup    func(svc *reservationMocks.MockBooking)
		wantCode int
	}{
		{
			name:   "cancel",
			method: http.MethodPatch,
			path:   "/bookings/b-1/cancel",
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Cancel(gomock.Any(), "b-1").Return(dto.BookingResponse{ID: "b-1", Status: "CANCELED"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "reactivate forbidden",
			method: http.MethodPatch,
			path:   "/bookings/b-1/reactivate",
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Reactivate(gomock.Any(), "b-1").Return(dto.BookingResponse{}, failure.Forbidden("only the guest can modify this booking"))
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/bookings/b-2",
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Get(gomock.Any(), "b-2").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/bookings/b-1",
			setup: func(svc *reservationMocks.MockBooking) {
				svc.EXPECT().Delete(gomock.Any(), "b-1").Return(nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := reservationMocks.NewMockBooking(gomock.NewController(t))
			tt.setup(svc)

			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestInternalErrorIsHidden(t *testing.T) {
	svc := reservationMocks.NewMockBooking(gomock.NewController(t))
	svc.EXPECT().Get(gomock.Any(), "b-1").Return(dto.BookingResponse{}, assert.AnError)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), constant.ResponseErrorInternal)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
