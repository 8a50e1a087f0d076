package domain

import (
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// Identity resolution errors. All of them map to 401: a request without a
// valid, non-expired session and a role record is unauthenticated.
var (
	// ErrMissingCredential indicates no credential was supplied with the request.
	ErrMissingCredential = apperrors.Wrap(apperrors.ErrUnauthorized, "missing credential")

	// ErrInvalidCredential indicates the identity provider rejected the credential.
	ErrInvalidCredential = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credential")

	// ErrSessionExpired indicates the session expiry has passed wall-clock time.
	ErrSessionExpired = apperrors.Wrap(apperrors.ErrUnauthorized, "session expired")

	// ErrRoleRecordNotFound indicates a verified identity has no role record.
	// Such identities are unauthenticated; they never receive a default role.
	ErrRoleRecordNotFound = apperrors.Wrap(apperrors.ErrUnauthorized, "no role record for identity")
)
