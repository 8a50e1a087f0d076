package domain

import (
	"github.com/google/uuid"
)

// EnforceTenant verifies a resource's clinic matches the principal's clinic.
// Pure comparison with no I/O; identical inputs always yield identical
// outcomes. Callers apply it both as a pre-fetch filter and against the
// fetched object, so a direct-by-identifier lookup cannot bypass the filter.
func EnforceTenant(resourceClinicID, principalClinicID uuid.UUID) error {
	if resourceClinicID == uuid.Nil || principalClinicID == uuid.Nil {
		return ErrTenantMismatch
	}
	if resourceClinicID != principalClinicID {
		return ErrTenantMismatch
	}
	return nil
}
