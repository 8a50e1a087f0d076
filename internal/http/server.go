// Package http provides the HTTP server and route wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/clinicguard/clinicguard/internal/audit/http"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	authzHTTP "github.com/clinicguard/clinicguard/internal/authz/http"
	authzUseCase "github.com/clinicguard/clinicguard/internal/authz/usecase"
	"github.com/clinicguard/clinicguard/internal/config"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	identityHTTP "github.com/clinicguard/clinicguard/internal/identity/http"
	identityUseCase "github.com/clinicguard/clinicguard/internal/identity/usecase"
	"github.com/clinicguard/clinicguard/internal/metrics"
	recordsHTTP "github.com/clinicguard/clinicguard/internal/records/http"
)

// Server represents the main HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start
// to register routes; health and readiness probes use the database handle for
// the readiness check.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware the router mounts.
type RouterConfig struct {
	Config *config.Config

	// MeterProvider enables HTTP metrics when non-nil.
	MeterProvider otelmetric.MeterProvider

	// ResolverUseCase backs the session middleware.
	ResolverUseCase identityUseCase.ResolverUseCase

	// Guards backs the route-level role and permission middleware.
	Guards authzUseCase.GuardUseCase

	RecordsHandler  *recordsHTTP.RecordsHandler
	AuditLogHandler *auditHTTP.AuditLogHandler
}

// SetupRouter builds the route tree.
//
// Middleware order is load-bearing: the correlation id must exist before
// logging and auditing, the request context must exist before session
// resolution, and the session must be resolved before any guard runs.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.Config.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(
		cfg.Config.CORSEnabled, cfg.Config.CORSAllowOrigins, s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Probes stay outside the guarded tree.
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	if cfg.Config.RateLimitEnabled {
		v1.Use(identityHTTP.SessionRateLimitMiddleware(
			cfg.Config.RateLimitRequestsPerSec,
			cfg.Config.RateLimitBurst,
			s.logger,
		))
	}

	v1.Use(identityHTTP.RequestContextMiddleware())
	v1.Use(identityHTTP.SessionMiddleware(cfg.ResolverUseCase, s.logger))

	// Clinical records: role and ownership checks run inside the use case.
	v1.GET("/patients/:patient_id/chart", cfg.RecordsHandler.GetChartHandler)
	v1.GET("/files/:file_id/download", cfg.RecordsHandler.DownloadFileHandler)

	// Admin surface: role and permission enforced at the route level.
	admin := v1.Group("/admin")
	admin.Use(authzHTTP.RequireRoleMiddleware(cfg.Guards, s.logger, identityDomain.RoleAdmin))
	admin.GET(
		"/audit-logs",
		authzHTTP.RequirePermissionMiddleware(cfg.Guards, authzDomain.PermissionViewAuditLogs, s.logger),
		cfg.AuditLogHandler.ListHandler,
	)
	admin.GET(
		"/metrics-summary",
		authzHTTP.RequirePermissionMiddleware(cfg.Guards, authzDomain.PermissionViewMetrics, s.logger),
		cfg.AuditLogHandler.SummaryHandler,
	)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// is the only hard dependency; without it every guard decision would fail.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(pingCtx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
