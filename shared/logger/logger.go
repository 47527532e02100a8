package logger

import (
	"os"
	"rental/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
