package auth

import (
	"context"
	"errors"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// ErrNoAuthContext is returned when a request was not routed through hydration.
var ErrNoAuthContext = errors.New("no authentication context found")

// NewContext attaches ac to ctx.
func NewContext(ctx context.Context, ac *Context) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// FromContext returns the Context attached by NewContext.
func FromContext(ctx context.Context) (*Context, error) {
	ac, ok := ctx.Value(authContextKey).(*Context)
	if !ok || ac == nil {
		return nil, ErrNoAuthContext
	}
	return ac, nil
}
