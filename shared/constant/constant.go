package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RequestParamID         = "id"
	RequestParamPropertyID = "propertyID"

	RequestQueryPropertyID = "property_id"
	RequestQueryStartDate  = "start_date"
	RequestQueryEndDate    = "end_date"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = time.RFC3339
	CalendarFormat = "2006-01-02"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "INTERNAL SERVER ERROR"
	ResponseHealthy                   = "OK"
)

const (
	ServerEnvDevelopment = "development"
)

const (
	Empty = ""
)
