// Package usecase implements identity resolution business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// RoleStore defines persistence operations for role records.
// Implementations must support transaction-aware operations via context propagation.
type RoleStore interface {
	// GetBySubject retrieves a role record by identity provider subject.
	// Returns ErrRoleRecordNotFound if no record exists.
	GetBySubject(ctx context.Context, subjectID uuid.UUID) (*identityDomain.RoleRecord, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(entry *auditDomain.Entry)
}

// ResolverUseCase turns a raw request credential into a Principal.
type ResolverUseCase interface {
	// Resolve validates the credential, re-checks the session expiry against
	// wall-clock time, and loads the role record. A verified identity with no
	// role record is unauthenticated; it never receives a default role.
	Resolve(
		ctx context.Context,
		rawCredential string,
		reqCtx *identityDomain.RequestContext,
	) (*identityDomain.Principal, error)
}
