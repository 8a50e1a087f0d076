package http

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	"github.com/clinicguard/clinicguard/internal/httputil"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	identityUseCase "github.com/clinicguard/clinicguard/internal/identity/usecase"
)

// RequestContextMiddleware builds the per-request metadata once and stores it
// in the request context. Must run before the session middleware and any guard
// so that a single request produces a linkable set of audit entries.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqCtx := &identityDomain.RequestContext{
			RequestID: requestid.Get(c),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Path:      c.Request.URL.Path,
			Method:    c.Request.Method,
		}

		ctx := identityDomain.WithRequestContext(c.Request.Context(), reqCtx)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionMiddleware resolves the Bearer credential into a Principal.
//
// The middleware:
//  1. Extracts the Bearer token from the Authorization header (case-insensitive)
//  2. Resolves it via ResolverUseCase (verify, expiry re-check, role-store load)
//  3. Stores the Principal in the request context for downstream guards
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid/expired credential, missing role record → 401 Unauthorized
//   - Other errors → 500 Internal Server Error
func SessionMiddleware(
	resolver identityUseCase.ResolverUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqCtx, _ := identityDomain.GetRequestContext(c.Request.Context())

		// Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("session resolution failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("session resolution failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		rawCredential := authHeader[len(bearerPrefix):]

		principal, err := resolver.Resolve(c.Request.Context(), rawCredential, reqCtx)
		if err != nil {
			logger.Debug("session resolution failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store resolved principal in context
		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("session resolved",
			slog.String("principal_id", principal.ID.String()),
			slog.String("role", principal.Role.String()),
			slog.String("clinic_id", principal.ClinicID.String()))

		c.Next()
	}
}
