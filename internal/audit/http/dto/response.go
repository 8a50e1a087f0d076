// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
)

// AuditLogResponse represents an audit entry in API responses. Metadata is
// already allow-listed at record time, so the response mirrors storage.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	RequestID    string         `json:"request_id"`
	ActorID      string         `json:"actor_id"`
	ClinicID     string         `json:"clinic_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	IP           string         `json:"ip"`
	UserAgent    string         `json:"user_agent"`
	Success      bool           `json:"success"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogListResponse represents a paginated list of audit entries.
type AuditLogListResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	Count     int                `json:"count"`
}

// ActivitySummaryResponse aggregates audit activity for the admin
// metrics-summary endpoint. Counts only, never entry contents.
type ActivitySummaryResponse struct {
	Since    time.Time        `json:"since"`
	Total    int64            `json:"total"`
	Denied   int64            `json:"denied"`
	ByAction map[string]int64 `json:"by_action"`
}

// MapActivitySummaryToResponse converts a domain activity summary to an API response.
func MapActivitySummaryToResponse(summary *auditDomain.ActivitySummary) ActivitySummaryResponse {
	byAction := make(map[string]int64, len(summary.ByAction))
	for action, count := range summary.ByAction {
		byAction[string(action)] = count
	}
	return ActivitySummaryResponse{
		Since:    summary.Since,
		Total:    summary.Total,
		Denied:   summary.Denied,
		ByAction: byAction,
	}
}

// MapAuditLogToResponse converts a domain audit entry to an API response.
func MapAuditLogToResponse(entry *auditDomain.Entry) AuditLogResponse {
	return AuditLogResponse{
		ID:           entry.ID.String(),
		RequestID:    entry.RequestID,
		ActorID:      entry.ActorID.String(),
		ClinicID:     entry.ClinicID.String(),
		Action:       string(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IP:           entry.IP,
		UserAgent:    entry.UserAgent,
		Success:      entry.Success,
		Metadata:     entry.Metadata,
		CreatedAt:    entry.CreatedAt,
	}
}

// MapAuditLogsToListResponse converts domain audit entries to a list response.
func MapAuditLogsToListResponse(entries []*auditDomain.Entry) AuditLogListResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = MapAuditLogToResponse(entry)
	}
	return AuditLogListResponse{
		AuditLogs: responses,
		Count:     len(responses),
	}
}
