// Package service implements the booking and block use cases on top of the
// reservation store. Every mutator validates input first, then resolves the
// actor, then checks existence and authority, and only then asks the store to
// write. The store is the only place where the calendar is changed.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"rental/config"
	"rental/infras/otel"
	propertyModel "rental/internal/domains/property/model"
	propertyRepo "rental/internal/domains/property/repository"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/event"
	"rental/internal/domains/reservation/model"
	"rental/internal/domains/reservation/repository"
	"rental/shared"
	"rental/shared/actor"
	"rental/shared/cache"
	"rental/shared/failure"
	"rental/shared/timezone"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking = "reservation:booking"
	cacheGetBlock   = "reservation:block"
	cacheGetBlocks  = "reservation:blocks"
)

const (
	msgStartInPast      = "start date must not be in the past"
	msgStaleVersion     = "reservation was modified by someone else, reload it and retry"
	msgBookingNotFound  = "booking not found"
	msgBlockNotFound    = "block not found"
	msgPropertyNotFound = "property not found"
	msgInvalidID        = "%s must be a valid UUID"
)

// dated is implemented by every request that carries a date range.
type dated interface {
	Dates() (string, string)
}

// core holds the collaborators shared by the booking and block services.
type core struct {
	store      repository.Reservation
	properties propertyRepo.Property
	actors     actor.Resolver
	publisher  event.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	policy     conflict.Policy
}

func newCore(
	store repository.Reservation,
	properties propertyRepo.Property,
	actors actor.Resolver,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) core {
	return core{
		store:      store,
		properties: properties,
		actors:     actors,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		policy: conflict.Policy{
			AllowOverlappingBlocks: cfg.App.Reservation.AllowOverlappingBlocks,
			RecheckBlockMove:       cfg.App.Reservation.RecheckBlockMove,
		},
	}
}

// interval parses the requested range and rejects ranges that are reversed or start before today.
func (c *core) interval(req dated) (model.Interval, error) {
	interval, err := model.ParseInterval(req.Dates())
	if err != nil {
		return model.Interval{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	if interval.Start.Before(timezone.Today()) {
		return model.Interval{}, failure.BadRequestFromString(msgStartInPast) //nolint:wrapcheck
	}

	return interval, nil
}

func (c *core) property(ctx context.Context, id string) (propertyModel.Property, error) {
	property, err := c.properties.FindByID(ctx, id)
	if err != nil {
		if failure.Is(err, http.StatusNotFound) {
			return propertyModel.Property{}, err
		}

		log.Error().Err(err).Str("property_id", id).Msg("failed to find property")

		return propertyModel.Property{}, fmt.Errorf("failed to find property: %w", err)
	}

	return property, nil
}

// validID rejects ids that can never name a stored row.
func validID(id, name string) error {
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf(msgInvalidID, name)) //nolint:wrapcheck
	}

	return nil
}

// entry loads an entry of the given kind. An entry of the other kind is reported as missing.
func (c *core) entry(ctx context.Context, id string, kind model.Kind) (model.Entry, error) {
	notFound := msgBookingNotFound
	if kind == model.KindBlock {
		notFound = msgBlockNotFound
	}

	entry, err := c.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Entry{}, failure.NotFound(notFound) //nolint:wrapcheck
		}

		log.Error().Err(err).Str("entry_id", id).Msg("failed to find reservation")

		return model.Entry{}, fmt.Errorf("failed to find reservation: %w", err)
	}

	if entry.Kind != kind {
		return model.Entry{}, failure.NotFound(notFound) //nolint:wrapcheck
	}

	return entry, nil
}

// storeError maps store sentinels to failures and passes failures raised by mutators through.
func storeError(err error, conflictMsg, notFoundMsg string) error {
	var fail *failure.Failure

	switch {
	case errors.As(err, &fail):
		return err
	case errors.Is(err, repository.ErrStaleVersion):
		return failure.Wrap(http.StatusConflict, msgStaleVersion, err) //nolint:wrapcheck
	case errors.Is(err, repository.ErrConflict):
		if conflicts := repository.ConflictsOf(err); len(conflicts) > 0 {
			blocking := make([]string, 0, len(conflicts))
			for _, c := range conflicts {
				blocking = append(blocking, c.String())
			}

			log.Info().Strs("conflicts", blocking).Msg("reservation rejected by overlapping entries")
		}

		return failure.Wrap(http.StatusConflict, conflictMsg, err) //nolint:wrapcheck
	case errors.Is(err, repository.ErrNotFound):
		return failure.Wrap(http.StatusNotFound, notFoundMsg, err) //nolint:wrapcheck
	case errors.Is(err, model.ErrInvalidInterval):
		return failure.BadRequest(err) //nolint:wrapcheck
	default:
		return fmt.Errorf("failed to write reservation: %w", err)
	}
}

// expectedVersion prefers the version the client last saw over the one just loaded.
func expectedVersion(current model.Entry, clientVersion *int64) int64 {
	if clientVersion != nil {
		return *clientVersion
	}

	return current.Version
}

// committed publishes the change and drops the cached projections of the entry
// before the caller gets its response. Neither step can undo the write, failures
// are only logged.
func (c *core) committed(ctx context.Context, evt event.Event, entry model.Entry) {
	ctx = context.WithoutCancel(ctx)

	if err := c.publisher.Publish(ctx, evt); err != nil {
		log.Error().Err(err).Str("entry_id", entry.ID).Str("event", string(evt.Type)).Msg("failed to publish reservation event")
	}

	if entry.IsBooking() {
		if err := c.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, entry.ID)); err != nil {
			log.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to delete booking from cache")
		}

		return
	}

	if err := c.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBlock, entry.ID)); err != nil {
		log.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to delete block from cache")
	}

	shared.InvalidateCaches(ctx, c.cache, shared.BuildCacheKey(cacheGetBlocks, entry.PropertyID))
}

// remember stores a read projection. A read racing a write can still save the
// old projection, it lives for at most the cache TTL.
func (c *core) remember(ctx context.Context, key string, value any) {
	if err := c.cache.Save(context.WithoutCancel(ctx), key, value, c.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save reservation to cache")
	}
}
