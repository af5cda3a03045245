package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
