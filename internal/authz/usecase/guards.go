package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// guardUseCase implements GuardUseCase. Decisions come from the pure checks in
// the authz domain; this layer adds the relationship lookup and observes every
// denial to emit an ACCESS_DENIED audit entry.
type guardUseCase struct {
	relationshipStore RelationshipStore
	auditor           AuditRecorder
}

// NewGuardUseCase creates a new GuardUseCase with the provided dependencies.
func NewGuardUseCase(relationshipStore RelationshipStore, auditor AuditRecorder) GuardUseCase {
	return &guardUseCase{
		relationshipStore: relationshipStore,
		auditor:           auditor,
	}
}

// RequireRole succeeds iff the principal's role is in the allowed set.
func (g *guardUseCase) RequireRole(
	ctx context.Context,
	principal *identityDomain.Principal,
	allowedRoles ...identityDomain.Role,
) error {
	decision := authzDomain.CheckRole(principal, allowedRoles...)
	return g.observe(ctx, principal, decision, "", "")
}

// RequireApprovedDoctor succeeds iff the principal is an approved doctor.
func (g *guardUseCase) RequireApprovedDoctor(
	ctx context.Context,
	principal *identityDomain.Principal,
) error {
	decision := authzDomain.CheckApprovedDoctor(principal)
	return g.observe(ctx, principal, decision, "", "")
}

// RequireClinicAccess succeeds iff the resource belongs to the principal's clinic.
func (g *guardUseCase) RequireClinicAccess(
	ctx context.Context,
	principal *identityDomain.Principal,
	resourceClinicID uuid.UUID,
	resourceType string,
	resourceID string,
) error {
	decision := authzDomain.CheckTenant(principal, resourceClinicID)
	return g.observe(ctx, principal, decision, resourceType, resourceID)
}

// RequirePatientSelfAccess succeeds iff the principal owns the patient record.
func (g *guardUseCase) RequirePatientSelfAccess(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) error {
	decision := authzDomain.CheckPatientSelfAccess(principal, patientID)
	return g.observe(ctx, principal, decision, "patient", patientID.String())
}

// RequireDoctorAccessToPatient succeeds iff an active assignment links the
// doctor to the patient.
func (g *guardUseCase) RequireDoctorAccessToPatient(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) error {
	hasAssignment, err := g.lookupAssignment(ctx, principal, patientID)
	if err != nil {
		return err
	}

	decision := authzDomain.CheckDoctorRelationship(principal, hasAssignment)
	return g.observe(ctx, principal, decision, "patient", patientID.String())
}

// EnsureOwnershipOrDoctor succeeds iff the principal owns the patient record
// or is a doctor with an active assignment to the patient.
func (g *guardUseCase) EnsureOwnershipOrDoctor(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) error {
	// Patient self-access needs no I/O; check it first.
	if decision := authzDomain.CheckPatientSelfAccess(principal, patientID); decision.Allowed {
		return nil
	}

	hasAssignment, err := g.lookupAssignment(ctx, principal, patientID)
	if err != nil {
		return err
	}

	decision := authzDomain.CheckDoctorRelationship(principal, hasAssignment)
	if decision.Allowed {
		return nil
	}

	// Neither ownership nor relationship: report the combined denial.
	decision.Reason = "no_ownership_or_relationship"
	if decision.Metadata != nil {
		decision.Metadata["reason"] = "no_ownership_or_relationship"
	}
	return g.observe(ctx, principal, decision, "patient", patientID.String())
}

// RequirePermission succeeds iff the permission matrix grants the capability.
func (g *guardUseCase) RequirePermission(
	ctx context.Context,
	principal *identityDomain.Principal,
	permission authzDomain.Permission,
) error {
	decision := authzDomain.CheckPermission(principal, permission)
	return g.observe(ctx, principal, decision, "", "")
}

// lookupAssignment queries the relationship store for non-patient principals.
func (g *guardUseCase) lookupAssignment(
	ctx context.Context,
	principal *identityDomain.Principal,
	patientID uuid.UUID,
) (bool, error) {
	if !principal.IsDoctor() || principal.DoctorID == nil {
		return false, nil
	}

	hasAssignment, err := g.relationshipStore.ActiveAssignmentExists(ctx, *principal.DoctorID, patientID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to look up care relationship")
	}
	return hasAssignment, nil
}

// observe turns a decision into the guard's result, emitting an ACCESS_DENIED
// audit entry for every denial. The entry carries the denial reason and role
// detail, never resource content beyond the opaque identifier.
func (g *guardUseCase) observe(
	ctx context.Context,
	principal *identityDomain.Principal,
	decision authzDomain.Decision,
	resourceType string,
	resourceID string,
) error {
	if decision.Allowed {
		return nil
	}

	if g.auditor != nil {
		entry := &auditDomain.Entry{
			ActorID:      principal.ID,
			ClinicID:     principal.ClinicID,
			Action:       auditDomain.ActionAccessDenied,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Success:      false,
			Metadata:     decision.Metadata,
		}
		if reqCtx, ok := identityDomain.GetRequestContext(ctx); ok {
			entry.RequestID = reqCtx.RequestID
			entry.IP = reqCtx.IP
			entry.UserAgent = reqCtx.UserAgent
		}
		g.auditor.Record(entry)
	}

	return decision.Err
}
