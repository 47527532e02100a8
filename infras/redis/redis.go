package redis

import (
	"context"
	"net"
	"rental/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary redis used for read projections and rate limiting.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("host", primary.Host).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
