// Package http provides HTTP middleware adapters for authorization guards.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	authzUseCase "github.com/clinicguard/clinicguard/internal/authz/usecase"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	"github.com/clinicguard/clinicguard/internal/httputil"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	identityHTTP "github.com/clinicguard/clinicguard/internal/identity/http"
)

// RequireRoleMiddleware enforces that the resolved principal holds one of the
// allowed roles. MUST run after the session middleware.
func RequireRoleMiddleware(
	guards authzUseCase.GuardUseCase,
	logger *slog.Logger,
	allowedRoles ...identityDomain.Role,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityHTTP.GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("role guard: no resolved principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := guards.RequireRole(c.Request.Context(), principal, allowedRoles...); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireApprovedDoctorMiddleware enforces that the principal is a doctor
// whose clinic approval has been granted.
func RequireApprovedDoctorMiddleware(
	guards authzUseCase.GuardUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityHTTP.GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("approval guard: no resolved principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := guards.RequireApprovedDoctor(c.Request.Context(), principal); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePermissionMiddleware enforces a permission-matrix capability.
func RequirePermissionMiddleware(
	guards authzUseCase.GuardUseCase,
	permission authzDomain.Permission,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityHTTP.GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("permission guard: no resolved principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := guards.RequirePermission(c.Request.Context(), principal, permission); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
