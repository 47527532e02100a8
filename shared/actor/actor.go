// Package actor resolves who is performing the current operation.
package actor

import (
	"context"
	"rental/shared/constant"
	"rental/shared/failure"
)

type Actor struct {
	UserID string
	Email  string
}

type Resolver interface {
	Current(ctx context.Context) (Actor, error)
}

type contextResolver struct{}

// NewContextResolver reads the actor the auth middleware stored on the request context.
func NewContextResolver() Resolver {
	return contextResolver{}
}

func (contextResolver) Current(ctx context.Context) (Actor, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return Actor{}, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	return Actor{UserID: userID, Email: email}, nil
}

// WithActor returns a context carrying the given actor, in the same shape the auth middleware uses.
func WithActor(ctx context.Context, a Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, a.UserID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, a.Email)
}
