package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"rental/config"
	"rental/shared/constant"
	"rental/transport/http/middleware"
	"rental/transport/http/response"
	"rental/transport/http/router"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware

	state     atomic.Int32
	setupOnce sync.Once
	mux       *chi.Mux
	server    *http.Server
	done      chan struct{}
}

func New(cfg *config.Config, r router.Router, appMiddleware middleware.AppMiddleware) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: appMiddleware,
		done:       make(chan struct{}),
	}
}

// Serve blocks until the server is shut down by SIGINT or SIGTERM.
func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-h.done
}

// ServeHTTP lets the router run behind a plain http.Handler, e.g. a serverless entrypoint.
func (h *HTTP) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.setup()

	h.mux.ServeHTTP(writer, request)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) setup() {
	h.setupOnce.Do(func() {
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.Recoverer)
	h.mux.Use(h.Middleware.CORS())
	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())

	h.mux.Get("/health", h.health)

	h.Router.SetupRoutes(h.mux)
}

func (h *HTTP) health(writer http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, constant.ResponseHealthy)
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer close(h.done)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(time.Second)

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown stops accepting connections and waits up to timeout for in flight requests.
func (h *HTTP) shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server gracefully")
	}
}
