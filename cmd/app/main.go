package main

import (
	"rental/config"
	"rental/di"
	"rental/helper"
	"rental/shared/logger"
	"rental/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Setup(cfg.App.Timezone)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, cleanup := di.InitializeService()
	defer cleanup()

	http.Serve()
}
