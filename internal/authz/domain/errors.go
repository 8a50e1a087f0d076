package domain

import (
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// Guard denial errors. Each wraps a base sentinel so the response mapper in
// one place derives the status code, while callers can still distinguish the
// denial kind with errors.Is.
var (
	// ErrRoleMismatch indicates the principal's role is not in the allowed set.
	ErrRoleMismatch = apperrors.Wrap(apperrors.ErrForbidden, "role not permitted for this resource")

	// ErrApprovalPending indicates a doctor whose clinic approval is still pending.
	// Distinct from ErrRoleMismatch so callers can render a different message.
	ErrApprovalPending = apperrors.Wrap(apperrors.ErrForbidden, "doctor approval is pending")

	// ErrOwnershipMismatch indicates the tenant matched but no ownership or
	// care relationship links the principal to the resource.
	ErrOwnershipMismatch = apperrors.Wrap(apperrors.ErrForbidden, "no ownership or care relationship")

	// ErrPermissionDenied indicates the permission matrix denied the capability.
	ErrPermissionDenied = apperrors.Wrap(apperrors.ErrForbidden, "permission denied")

	// ErrTenantMismatch indicates the resource belongs to a different clinic.
	// It wraps ErrNotFound so a foreign-tenant resource is indistinguishable
	// from a missing one: cross-tenant probes learn nothing about existence.
	ErrTenantMismatch = apperrors.Wrap(apperrors.ErrNotFound, "tenant mismatch")
)
