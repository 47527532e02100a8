package service

//go:generate go run go.uber.org/mock/mockgen -source=./booking.go -destination=../mocks/booking_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	propertyRepo "rental/internal/domains/property/repository"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/event"
	"rental/internal/domains/reservation/model"
	"rental/internal/domains/reservation/model/dto"
	"rental/internal/domains/reservation/repository"
	"rental/shared"
	"rental/shared/actor"
	"rental/shared/cache"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/timezone"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgSelfBooking        = "you can't book your own property"
	msgBookingUnavailable = "property is not available for the selected dates"
	msgNotBookingGuest    = "only the guest who made the booking can change it"
	msgBookingCanceled    = "booking is canceled"
	msgBookingActive      = "booking is already active"
	msgBookingHidden      = "only the guest or the property owner can read this booking"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Reactivate(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	// Find returns the caller's active booking on a property for exactly the given dates.
	Find(ctx context.Context, req dto.FindBookingRequest) (dto.BookingResponse, error)
}

type bookingService struct {
	core
}

func NewBooking(
	store repository.Reservation,
	properties propertyRepo.Property,
	actors actor.Resolver,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &bookingService{
		core: newCore(store, properties, actors, publisher, cfg, cache, otel),
	}
}

func (s *bookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	interval, err := s.interval(&req)
	if err != nil {
		return res, err
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	property, err := s.property(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	if property.IsOwnedBy(current.UserID) {
		return res, failure.Conflict(msgSelfBooking) //nolint:wrapcheck
	}

	booking := model.NewBooking(property.ID, current.UserID, interval, req.Guest(), current.UserID, timezone.Now())

	created, err := s.store.CreateIfNoConflict(ctx, booking, s.policy.BookingRule())
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			log.Error().Err(err).Str("property_id", property.ID).Msg("failed to create booking")
		}

		return res, storeError(err, msgBookingUnavailable, msgPropertyNotFound)
	}

	s.committed(ctx, event.New(event.BookingCreated, created, current.UserID, timezone.Now()), created)

	res.FromModel(created, property.OwnerID)

	return res, nil
}

func (s *bookingService) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	interval, err := s.interval(&req)
	if err != nil {
		return res, err
	}

	current, booking, err := s.guestBooking(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	updated, err := s.store.UpdateWithVersion(ctx, id, expectedVersion(booking, req.Version),
		func(entry *model.Entry) (conflict.Rule, error) {
			// dates of a canceled booking are not edited, it has to be reactivated first
			if !entry.IsActive() {
				return conflict.Rule{}, failure.Conflict(msgBookingCanceled)
			}

			entry.SetInterval(interval)
			entry.SetGuest(req.Guest())
			entry.Touch(current.UserID, now)

			return s.policy.BookingRule(), nil
		})
	if err != nil {
		return res, s.writeFailed(err, id, "failed to update booking")
	}

	return s.respond(ctx, event.BookingUpdated, updated, current.UserID), nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, booking, err := s.guestBooking(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	canceled, err := s.store.UpdateWithVersion(ctx, id, booking.Version,
		func(entry *model.Entry) (conflict.Rule, error) {
			if !entry.IsActive() {
				return conflict.Rule{}, failure.Conflict(msgBookingCanceled)
			}

			entry.Status = model.StatusCanceled
			entry.Touch(current.UserID, now)

			// canceling only frees days
			return conflict.None(), nil
		})
	if err != nil {
		return res, s.writeFailed(err, id, "failed to cancel booking")
	}

	return s.respond(ctx, event.BookingCanceled, canceled, current.UserID), nil
}

func (s *bookingService) Reactivate(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReactivateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, booking, err := s.guestBooking(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	reactivated, err := s.store.UpdateWithVersion(ctx, id, booking.Version,
		func(entry *model.Entry) (conflict.Rule, error) {
			if entry.IsActive() {
				return conflict.Rule{}, failure.Conflict(msgBookingActive)
			}

			entry.Status = model.StatusActive
			entry.Touch(current.UserID, now)

			return s.policy.BookingRule(), nil
		})
	if err != nil {
		return res, s.writeFailed(err, id, "failed to reactivate booking")
	}

	return s.respond(ctx, event.BookingReactivated, reactivated, current.UserID), nil
}

func (s *bookingService) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, booking, err := s.guestBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = s.store.Delete(ctx, id); err != nil {
		return s.writeFailed(err, id, "failed to delete booking")
	}

	s.committed(ctx, event.New(event.BookingDeleted, booking, current.UserID, timezone.Now()), booking)

	return nil
}

func (s *bookingService) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validID(id, "booking id"); err != nil {
		return res, err
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return s.visible(res, current.UserID)
	}

	booking, err := s.entry(ctx, id, model.KindBooking)
	if err != nil {
		return res, err
	}

	property, err := s.property(ctx, booking.PropertyID)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, property.OwnerID)

	s.remember(ctx, cacheKey, res)

	return s.visible(res, current.UserID)
}

func (s *bookingService) Find(ctx context.Context, req dto.FindBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	// past stays can be looked up, only the range itself must be valid
	interval, err := model.ParseInterval(req.Dates())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	property, err := s.property(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	booking, err := s.store.FindByPropertyAndGuestAndInterval(ctx, property.ID, current.UserID, interval)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
		}

		log.Error().Err(err).Str("property_id", property.ID).Msg("failed to find booking")

		return res, fmt.Errorf("failed to find booking: %w", err)
	}

	res.FromModel(booking, property.OwnerID)

	return res, nil
}

// guestBooking resolves the actor and loads a booking that actor made.
func (s *bookingService) guestBooking(ctx context.Context, id string) (actor.Actor, model.Entry, error) {
	if err := validID(id, "booking id"); err != nil {
		return actor.Actor{}, model.Entry{}, err
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return actor.Actor{}, model.Entry{}, err //nolint:wrapcheck
	}

	booking, err := s.entry(ctx, id, model.KindBooking)
	if err != nil {
		return actor.Actor{}, model.Entry{}, err
	}

	if !booking.IsGuest(current.UserID) {
		return actor.Actor{}, model.Entry{}, failure.Forbidden(msgNotBookingGuest) //nolint:wrapcheck
	}

	return current, booking, nil
}

func (s *bookingService) writeFailed(err error, id, msg string) error {
	if !errors.Is(err, repository.ErrConflict) && !errors.Is(err, repository.ErrStaleVersion) {
		log.Error().Err(err).Str("entry_id", id).Msg(msg)
	}

	return storeError(err, msgBookingUnavailable, msgBookingNotFound)
}

// respond finishes a committed mutation and builds the response with the current owner.
func (s *bookingService) respond(ctx context.Context, eventType event.Type, entry model.Entry, actorID string) dto.BookingResponse {
	s.committed(ctx, event.New(eventType, entry, actorID, timezone.Now()), entry)

	res := dto.BookingResponse{}

	property, err := s.property(ctx, entry.PropertyID)
	if err != nil {
		// the write is committed, answer without the owner rather than failing
		log.Warn().Err(err).Str("property_id", entry.PropertyID).Msg("failed to load property owner for response")
	}

	res.FromModel(entry, property.OwnerID)

	return res
}

func (s *bookingService) visible(res dto.BookingResponse, userID string) (dto.BookingResponse, error) {
	if !res.CanBeReadBy(userID) {
		return dto.BookingResponse{}, failure.Forbidden(msgBookingHidden) //nolint:wrapcheck
	}

	return res, nil
}
