// Package http provides HTTP handlers for audit trail operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicguard/clinicguard/internal/audit/http/dto"
	auditUseCase "github.com/clinicguard/clinicguard/internal/audit/usecase"
	"github.com/clinicguard/clinicguard/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit log operations.
// Routes using it are mounted behind the admin role and view_audit_logs
// permission guards.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves audit logs with pagination support and optional time-based filtering.
// GET /v1/admin/audit-logs?offset=0&limit=50&created_at_from=2026-08-01T00:00:00Z&created_at_to=2026-08-30T23:59:59Z
// Returns 200 OK with the audit log list ordered by created_at descending
// (newest first). Accepts optional created_at_from and created_at_to query
// parameters in RFC3339 format; timestamps are converted to UTC and both
// boundaries are inclusive.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var createdAtFrom *time.Time
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-08-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtFrom = &utcTime
	}

	var createdAtTo *time.Time
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-08-30T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtTo = &utcTime
	}

	if createdAtFrom != nil && createdAtTo != nil && createdAtFrom.After(*createdAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	entries, err := h.auditLogUseCase.List(c.Request.Context(), offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.MakeSuccessResponseGin(c, http.StatusOK, dto.MapAuditLogsToListResponse(entries))
}

// summaryWindowBounds limit the metrics-summary lookback to between one hour
// and thirty days.
const (
	defaultSummaryHours = 24
	maxSummaryHours     = 720
)

// SummaryHandler aggregates audit activity over a trailing window.
// GET /v1/admin/metrics-summary?hours=24
// Returns 200 OK with per-action counts plus total and denied rollups.
func (h *AuditLogHandler) SummaryHandler(c *gin.Context) {
	hours := defaultSummaryHours
	if hoursStr := c.Query("hours"); hoursStr != "" {
		parsed, err := strconv.Atoi(hoursStr)
		if err != nil || parsed < 1 || parsed > maxSummaryHours {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid hours: must be an integer between 1 and %d", maxSummaryHours),
				h.logger)
			return
		}
		hours = parsed
	}

	summary, err := h.auditLogUseCase.Summary(c.Request.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.MakeSuccessResponseGin(c, http.StatusOK, dto.MapActivitySummaryToResponse(summary))
}
