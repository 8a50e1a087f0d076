package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	auditMocks "github.com/clinicguard/clinicguard/internal/audit/usecase/mocks"
	"github.com/clinicguard/clinicguard/internal/httputil"
)

func setupAuditRouter(uc *auditMocks.MockAuditLogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuditLogHandler(uc, slog.New(slog.DiscardHandler))

	router := gin.New()
	router.GET("/v1/admin/audit-logs", handler.ListHandler)
	router.GET("/v1/admin/metrics-summary", handler.SummaryHandler)
	return router
}

func TestAuditLogListHandler(t *testing.T) {
	entries := []*auditDomain.Entry{
		{
			ID:        uuid.Must(uuid.NewV7()),
			RequestID: "req-1",
			ActorID:   uuid.Must(uuid.NewV7()),
			ClinicID:  uuid.Must(uuid.NewV7()),
			Action:    auditDomain.ActionAccessDenied,
			Success:   false,
			Metadata:  map[string]any{"reason": "tenant_mismatch"},
			CreatedAt: time.Now().UTC(),
		},
	}

	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("List", mock.Anything, 0, 50, (*time.Time)(nil), (*time.Time)(nil)).
		Return(entries, nil)

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp httputil.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), data["count"])

	logs := data["audit_logs"].([]any)
	first := logs[0].(map[string]any)
	assert.Equal(t, "ACCESS_DENIED", first["action"])
	assert.Equal(t, "req-1", first["request_id"])

	uc.AssertExpectations(t)
}

func TestAuditLogListHandler_Pagination(t *testing.T) {
	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("List", mock.Anything, 20, 10, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*auditDomain.Entry{}, nil)

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs?offset=20&limit=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestAuditLogListHandler_InvalidPagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "negative offset", query: "?offset=-1"},
		{name: "zero limit", query: "?limit=0"},
		{name: "limit above max", query: "?limit=101"},
		{name: "non-numeric offset", query: "?offset=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(auditMocks.MockAuditLogUseCase)
			router := setupAuditRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "List")
		})
	}
}

func TestAuditLogListHandler_TimeFilters(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)

	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("List", mock.Anything, 0, 50, &from, &to).Return([]*auditDomain.Entry{}, nil)

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/admin/audit-logs?created_at_from=2026-08-01T00:00:00Z&created_at_to=2026-08-30T23:59:59Z",
		nil,
	)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestAuditLogListHandler_InvalidTimeFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "malformed from", query: "?created_at_from=not-a-date"},
		{name: "malformed to", query: "?created_at_to=2026-13-99"},
		{
			name:  "from after to",
			query: "?created_at_from=2026-08-30T00:00:00Z&created_at_to=2026-08-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(auditMocks.MockAuditLogUseCase)
			router := setupAuditRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "List")
		})
	}
}

func TestAuditLogSummaryHandler(t *testing.T) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	summary := &auditDomain.ActivitySummary{
		Since:  since,
		Total:  15,
		Denied: 4,
		ByAction: map[auditDomain.Action]int64{
			auditDomain.ActionAuthSuccess:  8,
			auditDomain.ActionAuthFailed:   1,
			auditDomain.ActionAccessDenied: 3,
			auditDomain.ActionViewChart:    3,
		},
	}

	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("Summary", mock.Anything, 24*time.Hour).Return(summary, nil)

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/metrics-summary", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp httputil.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(15), data["total"])
	assert.Equal(t, float64(4), data["denied"])

	byAction := data["by_action"].(map[string]any)
	assert.Equal(t, float64(3), byAction["ACCESS_DENIED"])

	uc.AssertExpectations(t)
}

func TestAuditLogSummaryHandler_CustomWindow(t *testing.T) {
	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("Summary", mock.Anything, 72*time.Hour).
		Return(&auditDomain.ActivitySummary{Since: time.Now().UTC()}, nil)

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/metrics-summary?hours=72", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestAuditLogSummaryHandler_InvalidWindow(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "zero hours", query: "?hours=0"},
		{name: "negative hours", query: "?hours=-5"},
		{name: "above max", query: "?hours=721"},
		{name: "non-numeric", query: "?hours=day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(auditMocks.MockAuditLogUseCase)
			router := setupAuditRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/metrics-summary"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Summary")
		})
	}
}

func TestAuditLogSummaryHandler_UseCaseError(t *testing.T) {
	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("Summary", mock.Anything, 24*time.Hour).
		Return(nil, errors.New("connection refused"))

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/metrics-summary", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuditLogListHandler_UseCaseError(t *testing.T) {
	uc := new(auditMocks.MockAuditLogUseCase)
	uc.On("List", mock.Anything, 0, 50, (*time.Time)(nil), (*time.Time)(nil)).
		Return(nil, errors.New("connection refused"))

	router := setupAuditRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit-logs", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
