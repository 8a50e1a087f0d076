package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the resolved identity for a single request. It is built once by
// the resolver and never mutated afterwards; in particular no guard may change
// its clinic assignment.
type Principal struct {
	ID             uuid.UUID  // Subject identifier from the identity provider
	Email          string     // Verified contact address
	Role           Role       // Closed role enumeration
	ClinicID       uuid.UUID  // Tenant the principal belongs to
	EmailVerified  bool       // Whether the identity provider verified the address
	DoctorID       *uuid.UUID // Set when Role is doctor
	PatientID      *uuid.UUID // Set when Role is patient
	DoctorApproved bool       // Clinic approval state for doctors
}

// IsDoctor reports whether the principal holds the doctor role.
func (p *Principal) IsDoctor() bool {
	return p.Role == RoleDoctor
}

// IsPatient reports whether the principal holds the patient role.
func (p *Principal) IsPatient() bool {
	return p.Role == RolePatient
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnsPatient reports whether the principal is the patient identified by patientID.
func (p *Principal) OwnsPatient(patientID uuid.UUID) bool {
	return p.Role == RolePatient && p.PatientID != nil && *p.PatientID == patientID
}

// RoleRecord is a role-store row keyed by the identity provider subject.
// It carries everything needed to build a Principal.
type RoleRecord struct {
	SubjectID      uuid.UUID
	Email          string
	Role           Role
	ClinicID       uuid.UUID
	EmailVerified  bool
	IsActive       bool
	DoctorID       *uuid.UUID
	PatientID      *uuid.UUID
	DoctorApproved bool
	CreatedAt      time.Time
}

// RequestContext carries the per-request metadata threaded through every guard
// and the audit pipeline, so one request yields a linkable set of audit entries.
type RequestContext struct {
	RequestID string // Correlation id assigned at the routing layer
	IP        string
	UserAgent string
	Path      string
	Method    string
}
