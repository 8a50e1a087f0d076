package domain

import (
	"context"
)

// requestContextKey is a context key type for storing per-request metadata.
type requestContextKey struct{}

// WithRequestContext stores the per-request metadata in the context. It is
// constructed once per request so every guard and the audit pipeline see the
// same correlation id, IP, and user agent.
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, reqCtx)
}

// GetRequestContext retrieves the per-request metadata from the context.
// Returns (reqCtx, true) if present, or (nil, false) if not set.
func GetRequestContext(ctx context.Context) (*RequestContext, bool) {
	reqCtx, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return reqCtx, ok
}
