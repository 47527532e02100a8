package booking

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/reservation/model/dto"
	"rental/internal/domains/reservation/service"
	"rental/shared/constant"
	"rental/shared/validator"
	"rental/transport/http/middleware"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/lookup", handler.FindBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
		routerGroup.Patch("/{id}/reactivate", handler.ReactivateBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a property for an inclusive date range. Fails when the dates overlap an active booking or block.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + res.GuestID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// FindBooking returns the caller's active booking for an exact date range.
// @Summary Find own booking by dates
// @Tags Booking
// @Produce json
// @Param property_id query string true "Property ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/lookup [get]
// @Security BearerAuth
func (handler *Handler) FindBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindBooking")
	defer scope.End()

	query := request.URL.Query()

	req := dto.FindBookingRequest{
		PropertyID: query.Get(constant.RequestQueryPropertyID),
		StartDate:  query.Get(constant.RequestQueryStartDate),
		EndDate:    query.Get(constant.RequestQueryEndDate),
	}

	res, err := handler.service.Find(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID retrieves a booking visible to its guest and the property owner.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking replaces the dates and guest details of a booking.
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking moves a booking to CANCELED, freeing its dates.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking canceled successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// ReactivateBooking moves a canceled booking back to ACTIVE when its dates are still free.
// @Summary Reactivate a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/reactivate [patch]
// @Security BearerAuth
func (handler *Handler) ReactivateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReactivateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Reactivate(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to reactivate booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking reactivated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBooking permanently removes a booking.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}
