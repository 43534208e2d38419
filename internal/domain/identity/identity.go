package identity

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Caller is the authenticated account behind a request.
type Caller struct {
	UserID string
}

// Provider resolves a bearer token to the account that owns it.
type Provider interface {
	Verify(ctx context.Context, token string) (*Caller, error)
}

type ctxKey struct{}

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the caller stored by the auth middleware, or nil.
func FromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(ctxKey{}).(*Caller)
	return c
}
