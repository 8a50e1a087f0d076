package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	identityService "github.com/clinicguard/clinicguard/internal/identity/service"
)

// resolverUseCase implements ResolverUseCase.
type resolverUseCase struct {
	tokenVerifier identityService.TokenVerifier
	roleStore     RoleStore
	auditor       AuditRecorder
}

// NewResolverUseCase creates a new ResolverUseCase with the provided dependencies.
func NewResolverUseCase(
	tokenVerifier identityService.TokenVerifier,
	roleStore RoleStore,
	auditor AuditRecorder,
) ResolverUseCase {
	return &resolverUseCase{
		tokenVerifier: tokenVerifier,
		roleStore:     roleStore,
		auditor:       auditor,
	}
}

// Resolve validates the credential and builds the per-request Principal.
//
// Failure modes, all mapped to 401:
//   - empty credential
//   - signature rejected by the identity provider boundary
//   - session expiry in the past (re-checked against wall clock here, not
//     only inside the verifier)
//   - no role record, or an inactive one, for the verified subject
//
// Every outcome emits an AUTH_SUCCESS or AUTH_FAILED audit entry.
func (r *resolverUseCase) Resolve(
	ctx context.Context,
	rawCredential string,
	reqCtx *identityDomain.RequestContext,
) (*identityDomain.Principal, error) {
	if rawCredential == "" {
		r.auditFailure(uuid.Nil, uuid.Nil, reqCtx, "missing_credential")
		return nil, identityDomain.ErrMissingCredential
	}

	session, err := r.tokenVerifier.Verify(rawCredential)
	if err != nil {
		r.auditFailure(uuid.Nil, uuid.Nil, reqCtx, "invalid_credential")
		return nil, identityDomain.ErrInvalidCredential
	}

	// Explicit expiry re-check against wall clock. The verifier already
	// validates exp, but the session boundary is too important to rest on a
	// single library default.
	if session.ExpiresAt.Before(time.Now().UTC()) {
		r.auditFailure(session.SubjectID, uuid.Nil, reqCtx, "session_expired")
		return nil, identityDomain.ErrSessionExpired
	}

	record, err := r.roleStore.GetBySubject(ctx, session.SubjectID)
	if err != nil {
		if errors.Is(err, identityDomain.ErrRoleRecordNotFound) {
			// A verified identity without a role record is unauthenticated.
			r.auditFailure(session.SubjectID, uuid.Nil, reqCtx, "role_record_missing")
			return nil, identityDomain.ErrRoleRecordNotFound
		}
		return nil, err
	}

	if !record.IsActive {
		r.auditFailure(session.SubjectID, record.ClinicID, reqCtx, "identity_inactive")
		return nil, identityDomain.ErrInvalidCredential
	}

	principal := &identityDomain.Principal{
		ID:             record.SubjectID,
		Email:          record.Email,
		Role:           record.Role,
		ClinicID:       record.ClinicID,
		EmailVerified:  record.EmailVerified,
		DoctorID:       record.DoctorID,
		PatientID:      record.PatientID,
		DoctorApproved: record.DoctorApproved,
	}

	r.record(&auditDomain.Entry{
		ActorID:  principal.ID,
		ClinicID: principal.ClinicID,
		Action:   auditDomain.ActionAuthSuccess,
		Success:  true,
		Metadata: map[string]any{"user_role": principal.Role.String()},
	}, reqCtx)

	return principal, nil
}

// auditFailure emits an AUTH_FAILED entry with a denial reason.
func (r *resolverUseCase) auditFailure(
	actorID, clinicID uuid.UUID,
	reqCtx *identityDomain.RequestContext,
	reason string,
) {
	r.record(&auditDomain.Entry{
		ActorID:  actorID,
		ClinicID: clinicID,
		Action:   auditDomain.ActionAuthFailed,
		Success:  false,
		Metadata: map[string]any{"reason": reason},
	}, reqCtx)
}

// record attaches the request context and hands the entry to the auditor.
func (r *resolverUseCase) record(entry *auditDomain.Entry, reqCtx *identityDomain.RequestContext) {
	if r.auditor == nil {
		return
	}
	if reqCtx != nil {
		entry.RequestID = reqCtx.RequestID
		entry.IP = reqCtx.IP
		entry.UserAgent = reqCtx.UserAgent
	}
	r.auditor.Record(entry)
}
