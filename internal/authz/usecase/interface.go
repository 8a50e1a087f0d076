// Package usecase implements the guard orchestrator for authorization checks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// RelationshipStore defines persistence operations for doctor-patient assignments.
// Implementations must support transaction-aware operations via context propagation.
type RelationshipStore interface {
	// ActiveAssignmentExists reports whether an active assignment links the
	// doctor to the patient. An explicit assignment, not shared clinic
	// membership, establishes a care relationship.
	ActiveAssignmentExists(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(entry *auditDomain.Entry)
}

// GuardUseCase composes the ordered, reusable authorization checks that
// request handlers call explicitly. Every denial emits a best-effort audit
// entry describing the reason without any resource content.
type GuardUseCase interface {
	// RequireRole succeeds iff the principal's role is in the allowed set.
	RequireRole(
		ctx context.Context,
		principal *identityDomain.Principal,
		allowedRoles ...identityDomain.Role,
	) error

	// RequireApprovedDoctor succeeds iff the principal is an approved doctor.
	// A pending doctor fails with ErrApprovalPending, distinct from a role mismatch.
	RequireApprovedDoctor(ctx context.Context, principal *identityDomain.Principal) error

	// RequireClinicAccess succeeds iff the resource belongs to the principal's
	// clinic. Runs before any ownership check so a foreign-tenant request
	// fails identically regardless of ownership.
	RequireClinicAccess(
		ctx context.Context,
		principal *identityDomain.Principal,
		resourceClinicID uuid.UUID,
		resourceType string,
		resourceID string,
	) error

	// RequirePatientSelfAccess succeeds iff the principal is the patient
	// identified by patientID.
	RequirePatientSelfAccess(
		ctx context.Context,
		principal *identityDomain.Principal,
		patientID uuid.UUID,
	) error

	// RequireDoctorAccessToPatient succeeds iff the principal is a doctor with
	// an active assignment to the patient.
	RequireDoctorAccessToPatient(
		ctx context.Context,
		principal *identityDomain.Principal,
		patientID uuid.UUID,
	) error

	// EnsureOwnershipOrDoctor succeeds iff the principal owns the patient
	// record or is a doctor with an active assignment to the patient.
	EnsureOwnershipOrDoctor(
		ctx context.Context,
		principal *identityDomain.Principal,
		patientID uuid.UUID,
	) error

	// RequirePermission succeeds iff the permission matrix grants the capability.
	RequirePermission(
		ctx context.Context,
		principal *identityDomain.Principal,
		permission authzDomain.Permission,
	) error
}
