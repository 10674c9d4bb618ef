// Package auth provides the request gate: bearer-token verification
// against Firebase Auth followed by a role check against the user store.
package auth

import (
	"context"
)

// Identity represents a verified caller identity produced from
// the decoded ID token claims
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	ProviderID    string `json:"provider_id,omitempty"`
}

// TokenVerifier verifies Firebase ID tokens
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}
