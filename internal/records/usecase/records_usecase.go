package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	authzUseCase "github.com/clinicguard/clinicguard/internal/authz/usecase"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	recordsDomain "github.com/clinicguard/clinicguard/internal/records/domain"
)

// recordsUseCase implements RecordsUseCase. Every read runs the full guard
// sequence. The repositories already filter by the principal's clinic, so a
// cross-tenant lookup surfaces as not-found before any ownership check; the
// post-fetch tenant guard stays as a second, independent barrier.
type recordsUseCase struct {
	chartRepository ChartRepository
	fileRepository  FileRepository
	guards          authzUseCase.GuardUseCase
	auditor         AuditRecorder
}

// NewRecordsUseCase creates a new RecordsUseCase with the provided dependencies.
func NewRecordsUseCase(
	chartRepository ChartRepository,
	fileRepository FileRepository,
	guards authzUseCase.GuardUseCase,
	auditor AuditRecorder,
) RecordsUseCase {
	return &recordsUseCase{
		chartRepository: chartRepository,
		fileRepository:  fileRepository,
		guards:          guards,
		auditor:         auditor,
	}
}

// GetPatientChart returns the chart for a patient visible to the principal.
func (r *recordsUseCase) GetPatientChart(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) (*recordsDomain.PatientChart, error) {
	if err := r.guards.RequireRole(
		ctx, principal, identityDomain.RoleDoctor, identityDomain.RolePatient,
	); err != nil {
		return nil, err
	}

	// Doctors additionally need their clinic approval granted before any
	// clinical read; a pending doctor stops here, before the fetch.
	if principal.IsDoctor() {
		if err := r.guards.RequireApprovedDoctor(ctx, principal); err != nil {
			return nil, err
		}
	}

	chart, err := r.chartRepository.GetByPatient(ctx, patientID, principal.ClinicID)
	if err != nil {
		return nil, err
	}

	if err := r.guards.RequireClinicAccess(
		ctx, principal, chart.ClinicID, "patient_chart", chart.ID.String(),
	); err != nil {
		return nil, err
	}

	if err := r.guards.EnsureOwnershipOrDoctor(ctx, principal, chart.PatientID); err != nil {
		return nil, err
	}

	if err := r.guards.RequirePermission(ctx, principal, chartPermission(principal)); err != nil {
		return nil, err
	}

	r.record(ctx, principal, auditDomain.ActionViewChart, "patient_chart", chart.ID.String(), map[string]any{
		"user_role": principal.Role.String(),
	})

	return chart, nil
}

// DownloadFile returns the file record for a file visible to the principal.
func (r *recordsUseCase) DownloadFile(
	ctx context.Context,
	principal *identityDomain.Principal,
	fileID uuid.UUID,
) (*recordsDomain.FileRecord, error) {
	if err := r.guards.RequireRole(
		ctx, principal, identityDomain.RoleDoctor, identityDomain.RolePatient,
	); err != nil {
		return nil, err
	}

	if principal.IsDoctor() {
		if err := r.guards.RequireApprovedDoctor(ctx, principal); err != nil {
			return nil, err
		}
	}

	file, err := r.fileRepository.Get(ctx, fileID, principal.ClinicID)
	if err != nil {
		return nil, err
	}

	if err := r.guards.RequireClinicAccess(
		ctx, principal, file.ClinicID, "file", file.ID.String(),
	); err != nil {
		return nil, err
	}

	if err := r.guards.EnsureOwnershipOrDoctor(ctx, principal, file.PatientID); err != nil {
		return nil, err
	}

	if err := r.guards.RequirePermission(
		ctx, principal, authzDomain.PermissionDownloadFile,
	); err != nil {
		return nil, err
	}

	// File name and storage key are PHI-adjacent and stay out of the metadata.
	r.record(ctx, principal, auditDomain.ActionDownloadFile, "file", file.ID.String(), map[string]any{
		"file_size": file.FileSize,
		"file_type": file.FileType,
		"category":  file.Category,
	})

	return file, nil
}

// chartPermission selects the matrix capability matching the principal's role:
// patients read their own chart, doctors read assigned patients' charts.
func chartPermission(principal *identityDomain.Principal) authzDomain.Permission {
	if principal.IsPatient() {
		return authzDomain.PermissionViewOwnChart
	}
	return authzDomain.PermissionViewPatientChart
}

// record emits a successful-access audit entry.
func (r *recordsUseCase) record(
	ctx context.Context,
	principal *identityDomain.Principal,
	action auditDomain.Action,
	resourceType string,
	resourceID string,
	metadata map[string]any,
) {
	if r.auditor == nil {
		return
	}

	entry := &auditDomain.Entry{
		ActorID:      principal.ID,
		ClinicID:     principal.ClinicID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Success:      true,
		Metadata:     metadata,
	}
	if reqCtx, ok := identityDomain.GetRequestContext(ctx); ok {
		entry.RequestID = reqCtx.RequestID
		entry.IP = reqCtx.IP
		entry.UserAgent = reqCtx.UserAgent
	}
	r.auditor.Record(entry)
}
