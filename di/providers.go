package di

import (
	"context"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"time"

	"github.com/rs/zerolog/log"
)

const otelFlushTimeout = 5 * time.Second

func providePostgres(cfg *config.Config) (*postgres.Connection, func()) {
	conn := postgres.New(cfg)

	return conn, func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close postgres connections")
		}
	}
}

func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}
}

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	ot := otel.New(cfg)

	return ot, func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelFlushTimeout)
		defer cancel()

		if err := ot.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}
}
