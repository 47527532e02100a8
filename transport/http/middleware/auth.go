package middleware

import (
	"context"
	"errors"
	"net/http"
	"rental/infras/jwt"
	"rental/infras/otel"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Auth validates the bearer token and stores the caller identity on the
// request context, where actor resolution reads it.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		reject := func(err error) {
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			reject(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			reject(failure.Unauthorized(message))

			return
		}

		if claims.UserID == "" {
			log.Error().Msg("JWT claims: UserID is empty")
			reject(failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
