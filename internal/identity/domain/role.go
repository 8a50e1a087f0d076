// Package domain defines the identity domain models.
//
// A Principal is the resolved, per-request identity: who is calling, which
// clinic they belong to, and which role they hold. Principals are created once
// per request by the resolver and are immutable for the request's lifetime.
package domain

import (
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// Role is the closed set of identity roles. Every principal holds exactly one.
type Role string

const (
	// RoleDoctor identifies clinicians with explicit patient assignments.
	RoleDoctor Role = "doctor"

	// RolePatient identifies patients who own their personal records.
	RolePatient Role = "patient"

	// RoleAdmin identifies clinic administrators.
	RoleAdmin Role = "admin"
)

// Roles returns all known roles.
func Roles() []Role {
	return []Role{RoleDoctor, RolePatient, RoleAdmin}
}

// ParseRole converts a stored role string into a Role.
// Unknown values fail with ErrInvalidInput; a missing or unrecognized role
// never falls back to a default role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleDoctor:
		return RoleDoctor, nil
	case RolePatient:
		return RolePatient, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown role %q", value)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RolePatient, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the role as a string.
func (r Role) String() string {
	return string(r)
}
