package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	"github.com/clinicguard/clinicguard/internal/metrics"
	recordsDomain "github.com/clinicguard/clinicguard/internal/records/domain"
)

// recordsUseCaseWithMetrics decorates RecordsUseCase with metrics instrumentation.
type recordsUseCaseWithMetrics struct {
	next    RecordsUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordsUseCaseWithMetrics wraps a RecordsUseCase with metrics recording.
func NewRecordsUseCaseWithMetrics(useCase RecordsUseCase, m metrics.BusinessMetrics) RecordsUseCase {
	return &recordsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetPatientChart records metrics for chart read operations.
func (r *recordsUseCaseWithMetrics) GetPatientChart(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) (*recordsDomain.PatientChart, error) {
	start := time.Now()
	chart, err := r.next.GetPatientChart(ctx, principal, patientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "get_patient_chart", status)
	r.metrics.RecordDuration(ctx, "records", "get_patient_chart", time.Since(start), status)

	return chart, err
}

// DownloadFile records metrics for file download operations.
func (r *recordsUseCaseWithMetrics) DownloadFile(
	ctx context.Context,
	principal *identityDomain.Principal,
	fileID uuid.UUID,
) (*recordsDomain.FileRecord, error) {
	start := time.Now()
	file, err := r.next.DownloadFile(ctx, principal, fileID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "download_file", status)
	r.metrics.RecordDuration(ctx, "records", "download_file", time.Since(start), status)

	return file, err
}
