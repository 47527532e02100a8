package handler

import (
	"net/http"
	"rental/config"
	"rental/di"
	"rental/shared/logger"
	"rental/shared/timezone"
	"sync"

	transport "rental/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built once per
// instance and its connections live as long as the instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		timezone.Setup(cfg.App.Timezone)

		server, _ = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
