package domain

import (
	"strings"

	"github.com/google/uuid"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// Decision is the outcome of a single pure authorization check. The guard
// orchestrator observes decisions to emit audit entries; the checks themselves
// perform no I/O, so identical inputs always produce identical decisions.
type Decision struct {
	Check    string         // Name of the check that produced this decision
	Allowed  bool           // Whether the check passed
	Reason   string         // Denial reason, empty when allowed
	Err      error          // Typed guard error, nil when allowed
	Metadata map[string]any // Allow-list-safe denial detail for the audit entry
}

// allow returns a passing decision for the named check.
func allow(check string) Decision {
	return Decision{Check: check, Allowed: true}
}

// deny returns a failing decision carrying the typed error and audit metadata.
func deny(check, reason string, err error, metadata map[string]any) Decision {
	return Decision{Check: check, Allowed: false, Reason: reason, Err: err, Metadata: metadata}
}

// CheckRole verifies the principal's role is in the allowed set.
func CheckRole(principal *identityDomain.Principal, allowedRoles ...identityDomain.Role) Decision {
	for _, role := range allowedRoles {
		if principal.Role == role {
			return allow("require_role")
		}
	}

	required := make([]string, 0, len(allowedRoles))
	for _, role := range allowedRoles {
		required = append(required, role.String())
	}

	return deny("require_role", "role_mismatch", ErrRoleMismatch, map[string]any{
		"reason":        "role_mismatch",
		"required_role": strings.Join(required, ","),
		"user_role":     principal.Role.String(),
	})
}

// CheckApprovedDoctor verifies the principal is a doctor whose clinic approval
// has been granted. A pending doctor fails with a distinct error so callers
// can render a different message than a plain role mismatch.
func CheckApprovedDoctor(principal *identityDomain.Principal) Decision {
	if !principal.IsDoctor() {
		return CheckRole(principal, identityDomain.RoleDoctor)
	}
	if !principal.DoctorApproved {
		return deny("require_approved_doctor", "approval_pending", ErrApprovalPending, map[string]any{
			"reason":    "approval_pending",
			"user_role": principal.Role.String(),
		})
	}
	return allow("require_approved_doctor")
}

// CheckTenant verifies the resource's clinic matches the principal's clinic.
func CheckTenant(principal *identityDomain.Principal, resourceClinicID uuid.UUID) Decision {
	if err := EnforceTenant(resourceClinicID, principal.ClinicID); err != nil {
		return deny("require_clinic_access", "tenant_mismatch", err, map[string]any{
			"reason":    "tenant_mismatch",
			"user_role": principal.Role.String(),
		})
	}
	return allow("require_clinic_access")
}

// CheckPatientSelfAccess verifies the principal is the patient identified by patientID.
func CheckPatientSelfAccess(principal *identityDomain.Principal, patientID uuid.UUID) Decision {
	if principal.OwnsPatient(patientID) {
		return allow("require_patient_self_access")
	}
	return deny("require_patient_self_access", "not_record_owner", ErrOwnershipMismatch, map[string]any{
		"reason":    "not_record_owner",
		"user_role": principal.Role.String(),
	})
}

// CheckDoctorRelationship verifies the principal is a doctor with an active
// assignment to the patient. The relationship lookup is I/O and therefore
// supplied by the caller; same-clinic membership alone is never sufficient.
func CheckDoctorRelationship(
	principal *identityDomain.Principal,
	hasActiveAssignment bool,
) Decision {
	if !principal.IsDoctor() || principal.DoctorID == nil {
		return deny("require_doctor_access", "not_a_doctor", ErrOwnershipMismatch, map[string]any{
			"reason":    "not_a_doctor",
			"user_role": principal.Role.String(),
		})
	}
	if !hasActiveAssignment {
		return deny("require_doctor_access", "no_care_relationship", ErrOwnershipMismatch, map[string]any{
			"reason":    "no_care_relationship",
			"user_role": principal.Role.String(),
		})
	}
	return allow("require_doctor_access")
}

// CheckPermission verifies the permission matrix grants the capability.
func CheckPermission(principal *identityDomain.Principal, permission Permission) Decision {
	if CanAccess(principal.Role, permission) {
		return allow("require_permission")
	}
	return deny("require_permission", "permission_denied", ErrPermissionDenied, map[string]any{
		"reason":              "permission_denied",
		"required_permission": string(permission),
		"user_role":           principal.Role.String(),
	})
}
