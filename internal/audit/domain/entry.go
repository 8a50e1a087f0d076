// Package domain defines the audit domain models.
//
// Audit entries record who accessed what, when, and whether the access was
// allowed. Entries are append-only and must never contain protected health
// information; metadata is restricted to an explicit allow-list of
// primitive-valued keys.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action names the audited operation.
type Action string

const (
	// ActionAuthSuccess records a successful identity resolution.
	ActionAuthSuccess Action = "AUTH_SUCCESS"

	// ActionAuthFailed records a rejected credential or missing role record.
	ActionAuthFailed Action = "AUTH_FAILED"

	// ActionAccessDenied records a guard denial (role, tenant, ownership, permission).
	ActionAccessDenied Action = "ACCESS_DENIED"

	// ActionAccessGranted records a guard chain that completed successfully.
	ActionAccessGranted Action = "ACCESS_GRANTED"

	// ActionViewChart records a patient chart read.
	ActionViewChart Action = "VIEW_CHART"

	// ActionDownloadFile records a file record download.
	ActionDownloadFile Action = "DOWNLOAD_FILE"
)

// Entry is a single append-only audit record. Once written it is never updated.
type Entry struct {
	ID           uuid.UUID
	RequestID    string
	ActorID      uuid.UUID
	ClinicID     uuid.UUID
	Action       Action
	ResourceType string
	ResourceID   string
	IP           string
	UserAgent    string
	Success      bool
	Metadata     map[string]any
	CreatedAt    time.Time
}
