package auth

import (
	"context"
)

// contextKey type for context value keys
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity adds a verified identity to context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom retrieves the verified identity from context
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// MustIdentity retrieves the verified identity or panics (for use after the gate)
func MustIdentity(ctx context.Context) *Identity {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		panic("auth: identity not found in context")
	}
	return identity
}
