package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	auditMocks "github.com/clinicguard/clinicguard/internal/audit/usecase/mocks"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	authzUseCase "github.com/clinicguard/clinicguard/internal/authz/usecase"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	identityHTTP "github.com/clinicguard/clinicguard/internal/identity/http"
)

type stubRelationshipStore struct {
	mock.Mock
}

func (s *stubRelationshipStore) ActiveAssignmentExists(
	ctx context.Context,
	doctorID, patientID uuid.UUID,
) (bool, error) {
	args := s.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

func guardedRouter(
	principal *identityDomain.Principal,
	spy *auditMocks.RecorderSpy,
	mount func(*gin.RouterGroup, authzUseCase.GuardUseCase),
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	guards := authzUseCase.NewGuardUseCase(new(stubRelationshipStore), spy)

	router := gin.New()
	group := router.Group("/")
	if principal != nil {
		group.Use(func(c *gin.Context) {
			ctx := identityHTTP.WithPrincipal(c.Request.Context(), principal)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
	mount(group, guards)
	return router
}

func adminPrincipal() *identityDomain.Principal {
	return &identityDomain.Principal{
		ID:       uuid.Must(uuid.NewV7()),
		Role:     identityDomain.RoleAdmin,
		ClinicID: uuid.Must(uuid.NewV7()),
	}
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRequireRoleMiddleware(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("allowed role passes", func(t *testing.T) {
		router := guardedRouter(adminPrincipal(), &auditMocks.RecorderSpy{},
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/admin",
					RequireRoleMiddleware(guards, logger, identityDomain.RoleAdmin),
					okHandler,
				)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied role returns 403 and audits", func(t *testing.T) {
		principal := &identityDomain.Principal{
			ID:       uuid.Must(uuid.NewV7()),
			Role:     identityDomain.RolePatient,
			ClinicID: uuid.Must(uuid.NewV7()),
		}
		spy := &auditMocks.RecorderSpy{}
		router := guardedRouter(principal, spy,
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/admin",
					RequireRoleMiddleware(guards, logger, identityDomain.RoleAdmin),
					okHandler,
				)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)

		entry := spy.Last()
		assert.NotNil(t, entry)
		assert.Equal(t, auditDomain.ActionAccessDenied, entry.Action)
	})

	t.Run("missing principal returns 401", func(t *testing.T) {
		router := guardedRouter(nil, &auditMocks.RecorderSpy{},
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/admin",
					RequireRoleMiddleware(guards, logger, identityDomain.RoleAdmin),
					okHandler,
				)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequirePermissionMiddleware(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("granted permission passes", func(t *testing.T) {
		router := guardedRouter(adminPrincipal(), &auditMocks.RecorderSpy{},
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/audit-logs",
					RequirePermissionMiddleware(guards, authzDomain.PermissionViewAuditLogs, logger),
					okHandler,
				)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing permission returns 403", func(t *testing.T) {
		// Admins hold no clinical capabilities.
		spy := &auditMocks.RecorderSpy{}
		router := guardedRouter(adminPrincipal(), spy,
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/charts",
					RequirePermissionMiddleware(guards, authzDomain.PermissionViewPatientChart, logger),
					okHandler,
				)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charts", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "permission_denied", spy.Last().Metadata["reason"])
	})
}

func TestRequireApprovedDoctorMiddleware(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	doctorID := uuid.Must(uuid.NewV7())

	t.Run("approved doctor passes", func(t *testing.T) {
		principal := &identityDomain.Principal{
			ID:             uuid.Must(uuid.NewV7()),
			Role:           identityDomain.RoleDoctor,
			ClinicID:       uuid.Must(uuid.NewV7()),
			DoctorID:       &doctorID,
			DoctorApproved: true,
		}
		router := guardedRouter(principal, &auditMocks.RecorderSpy{},
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/clinical", RequireApprovedDoctorMiddleware(guards, logger), okHandler)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clinical", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pending doctor returns 403", func(t *testing.T) {
		principal := &identityDomain.Principal{
			ID:       uuid.Must(uuid.NewV7()),
			Role:     identityDomain.RoleDoctor,
			ClinicID: uuid.Must(uuid.NewV7()),
			DoctorID: &doctorID,
		}
		spy := &auditMocks.RecorderSpy{}
		router := guardedRouter(principal, spy,
			func(g *gin.RouterGroup, guards authzUseCase.GuardUseCase) {
				g.GET("/clinical", RequireApprovedDoctorMiddleware(guards, logger), okHandler)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clinical", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "approval_pending", spy.Last().Metadata["reason"])
	})
}
