package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"     default:"rental"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		// Reservation holds the calendar policies for owner blocks.
		Reservation struct {
			AllowOverlappingBlocks bool `envconfig:"ALLOW_OVERLAPPING_BLOCKS" default:"false"`
			RecheckBlockMove       bool `envconfig:"RECHECK_BLOCK_MOVE"       default:"false"`
		} `envconfig:"RESERVATION"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"60"`
		Issuer          string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry         int    `envconfig:"MAX_RETRY"          default:"3"`
			RetryWaitTime    int    `envconfig:"RETRY_WAIT_TIME"    default:"2"`
			MigrationTable   string `envconfig:"MIGRATION_TABLE"    default:"schema_migrations"`
			MigrationPath    string `envconfig:"MIGRATION_PATH"     default:"migrations/postgres"`
			AutoMigrate      bool   `envconfig:"AUTO_MIGRATE"`
			Prefix           string `envconfig:"PREFIX"`
			TxTimeoutSeconds int    `envconfig:"TX_TIMEOUT_SECONDS" default:"5"`
			Read             struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		Topic   string   `envconfig:"TOPIC" default:"reservation-events"`
		// Async hands messages to the writer and returns at once; delivery errors are only logged.
		Async                bool `envconfig:"ASYNC"`
		BatchTimeoutMillis   int  `envconfig:"BATCH_TIMEOUT_MILLIS"   default:"10"`
		PublishTimeoutMillis int  `envconfig:"PUBLISH_TIMEOUT_MILLIS" default:"500"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		initialized = true

		log.Info().Str("app", conf.App.Name).Msg("Service configuration initialized")
	})

	if err != nil {
		return fmt.Errorf("processing environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
