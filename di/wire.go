//go:build wireinject
// +build wireinject

package di

import (
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/redis"
	"rental/shared/actor"
	"rental/shared/cache"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"

	propertyRepository "rental/internal/domains/property/repository"
	reservationEvent "rental/internal/domains/reservation/event"
	reservationRepository "rental/internal/domains/reservation/repository"
	reservationService "rental/internal/domains/reservation/service"

	"github.com/google/wire"

	blockHandler "rental/internal/handlers/block"
	bookingHandler "rental/internal/handlers/booking"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	providePostgres,
	provideOtel,
	provideKafka,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	actor.NewContextResolver,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.NewPostgres,
	reservationEvent.NewPublisher,
	reservationService.NewBooking,
	reservationService.NewBlock,
)

var domains = wire.NewSet(
	propertyDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	blockHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func()) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
