package middleware

import (
	"fmt"
	"net/http"
	"rental/config"
	"rental/infras/otel"
	"rental/shared/cache"
	"rental/shared/constant"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	CORS() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens the request span. The route pattern is only known after
// routing, so it is attached once the handler returns.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       request.Host,
			"http.source":     a.getClientIP(request),
		})

		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(wrapped, request.WithContext(ctx))

		attributes := map[string]any{
			"http.status_code": wrapped.Status(),
		}

		if rctx := chi.RouteContext(request.Context()); rctx != nil {
			attributes["http.route"] = rctx.RoutePattern()
		}

		scope.SetAttributes(attributes)
	})
}

func (a *appMiddleware) CORS() func(http.Handler) http.Handler {
	corsConfig := a.config.App.CORS

	if !corsConfig.Enable {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}
