// Package domain defines the clinical record domain models under authorization.
//
// Chart summaries and file names are protected health information: they may
// appear in responses to authorized callers but never in audit metadata.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// Record errors.
var (
	// ErrChartNotFound indicates no chart exists for the patient in the clinic.
	ErrChartNotFound = apperrors.Wrap(apperrors.ErrNotFound, "chart not found")

	// ErrFileNotFound indicates no file record exists in the clinic.
	ErrFileNotFound = apperrors.Wrap(apperrors.ErrNotFound, "file not found")
)

// PatientChart is a patient's clinical chart. The clinic identifier is
// assigned at creation and never changes.
type PatientChart struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	ClinicID  uuid.UUID
	Summary   string
	UpdatedAt time.Time
}

// FileRecord is an uploaded file attached to a patient. The clinic identifier
// is assigned at creation and never changes.
type FileRecord struct {
	ID         uuid.UUID
	PatientID  uuid.UUID
	ClinicID   uuid.UUID
	FileName   string
	FileSize   int64
	FileType   string
	Category   string
	StorageKey string
	CreatedAt  time.Time
}
