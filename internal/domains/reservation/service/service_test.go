package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	propertyMocks "rental/internal/domains/property/mocks"
	propertyModel "rental/internal/domains/property/model"
	reservationMocks "rental/internal/domains/reservation/mocks"
	"rental/internal/domains/reservation/repository"
	"rental/internal/domains/reservation/service"
	"rental/shared/actor"
	"rental/shared/cache"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/failure"
	"rental/shared/timezone"
)

const (
	propertyID      = "5b0f6a1e-4c1d-4d53-9d7e-0c8b1f2a3e41"
	otherPropertyID = "8a3c2d4e-1f5b-4a6c-8d7e-9f0a1b2c3d4e"
	missingProperty = "00000000-0000-4000-8000-000000000000"
	missingEntry    = "11111111-2222-4333-8444-555555555555"
	cachedBookingID = "2f6c1a9e-7b3d-4e5f-9a1b-3c4d5e6f7a8b"
	cachedBlockID   = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"

	owner    = "user-owner"
	guest    = "user-guest"
	stranger = "user-stranger"
)

type fixture struct {
	store     repository.Reservation
	publisher *reservationMocks.MockPublisher
	booking   service.Booking
	block     service.Block
}

type fixtureOption func(cfg *config.Config)

func allowOverlappingBlocks(cfg *config.Config) {
	cfg.App.Reservation.AllowOverlappingBlocks = true
}

func recheckBlockMove(cfg *config.Config) {
	cfg.App.Reservation.RecheckBlockMove = true
}

// newFixture wires both services on an in memory store. The clock is pinned to
// 2025-05-01 so June dates are in the future.
func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	restore := timezone.SetClock(func() time.Time {
		return time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	})
	t.Cleanup(restore)

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	for _, opt := range opts {
		opt(cfg)
	}

	properties := propertyMocks.NewMockProperty(ctrl)
	properties.EXPECT().FindByID(gomock.Any(), propertyID).
		Return(propertyModel.Property{ID: propertyID, OwnerID: owner, Name: "Beach house"}, nil).AnyTimes()
	properties.EXPECT().FindByID(gomock.Any(), otherPropertyID).
		Return(propertyModel.Property{ID: otherPropertyID, OwnerID: stranger, Name: "Cabin"}, nil).AnyTimes()
	properties.EXPECT().FindByID(gomock.Any(), missingProperty).
		Return(propertyModel.Property{}, failure.NotFound("property not found")).AnyTimes()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	publisher := reservationMocks.NewMockPublisher(ctrl)

	store := repository.NewMemory()
	resolver := actor.NewContextResolver()

	return &fixture{
		store:     store,
		publisher: publisher,
		booking:   service.NewBooking(store, properties, resolver, publisher, cfg, mockCache, mocks.NewOtel()),
		block:     service.NewBlock(store, properties, resolver, publisher, cfg, mockCache, mocks.NewOtel()),
	}
}

// allowEvents accepts any number of published events.
func (f *fixture) allowEvents() {
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func as(userID string) context.Context {
	return actor.WithActor(context.Background(), actor.Actor{UserID: userID})
}

func june(day int) string {
	return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func july(day int) string {
	return time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, code, failure.GetCode(err), "error: %v", err)
}

func assertConflict(t *testing.T, err error) {
	t.Helper()

	assertCode(t, err, http.StatusConflict)
}
