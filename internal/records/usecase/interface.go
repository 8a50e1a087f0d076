// Package usecase implements guarded access to clinical records.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	recordsDomain "github.com/clinicguard/clinicguard/internal/records/domain"
)

// ChartRepository defines persistence operations for patient charts.
// Every query carries the clinic identifier as a pre-fetch filter so a
// cross-tenant chart is never loaded in the first place.
type ChartRepository interface {
	// GetByPatient retrieves the chart for a patient within a clinic.
	// Returns ErrChartNotFound if no chart matches both identifiers.
	GetByPatient(
		ctx context.Context,
		patientID, clinicID uuid.UUID,
	) (*recordsDomain.PatientChart, error)
}

// FileRepository defines persistence operations for file records.
// Every query carries the clinic identifier as a pre-fetch filter.
type FileRepository interface {
	// Get retrieves a file record by id within a clinic.
	// Returns ErrFileNotFound if no record matches both identifiers.
	Get(ctx context.Context, fileID, clinicID uuid.UUID) (*recordsDomain.FileRecord, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(entry *auditDomain.Entry)
}

// RecordsUseCase defines guarded read operations over clinical records.
// Each operation runs the canonical guard sequence: role, tenant (pre-filter
// and post-fetch), ownership or relationship, then the permission matrix.
type RecordsUseCase interface {
	// GetPatientChart returns the chart when the principal is the patient
	// themselves or a doctor with an active assignment.
	GetPatientChart(
		ctx context.Context,
		principal *identityDomain.Principal,
		patientID uuid.UUID,
	) (*recordsDomain.PatientChart, error)

	// DownloadFile returns the file record when the principal owns it or is
	// a doctor with an active assignment to the owning patient.
	DownloadFile(
		ctx context.Context,
		principal *identityDomain.Principal,
		fileID uuid.UUID,
	) (*recordsDomain.FileRecord, error)
}
