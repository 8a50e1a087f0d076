// Package http provides HTTP middleware and utilities for identity resolution.
package http

import (
	"context"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// principalKey is a context key type for storing resolved principals.
type principalKey struct{}

// WithPrincipal stores a resolved principal in the context.
// This is called by the session middleware after successful resolution.
func WithPrincipal(ctx context.Context, principal *identityDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the resolved principal from the context.
// Returns (principal, true) if present, or (nil, false) if no principal was set.
func GetPrincipal(ctx context.Context) (*identityDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*identityDomain.Principal)
	return principal, ok
}
