// Package service provides identity provider integrations.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// VerifiedSession is the outcome of credential verification: the identity
// provider's subject and the session expiry.
type VerifiedSession struct {
	SubjectID uuid.UUID
	ExpiresAt time.Time
}

// TokenVerifier validates raw session credentials issued by the identity provider.
type TokenVerifier interface {
	// Verify checks the credential's signature and returns the verified session.
	// The expiry is re-checked by the caller against wall-clock time; provider
	// validation alone is not trusted.
	Verify(rawToken string) (*VerifiedSession, error)
}

// jwtTokenVerifier verifies HMAC-signed session tokens.
type jwtTokenVerifier struct {
	signingKey []byte
	leeway     time.Duration
}

// NewJWTTokenVerifier creates a TokenVerifier for HMAC-signed session tokens.
func NewJWTTokenVerifier(signingKey string, leeway time.Duration) TokenVerifier {
	return &jwtTokenVerifier{
		signingKey: []byte(signingKey),
		leeway:     leeway,
	}
}

// Verify parses and validates the token signature, then extracts the subject
// and expiry claims. A token without an expiry claim is rejected: sessions
// must always have a bounded lifetime.
func (v *jwtTokenVerifier) Verify(rawToken string) (*VerifiedSession, error) {
	token, err := jwt.Parse(
		rawToken,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.Wrapf(
					identityDomain.ErrInvalidCredential,
					"unexpected signing method %v", token.Header["alg"],
				)
			}
			return v.signingKey, nil
		},
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, identityDomain.ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, identityDomain.ErrInvalidCredential
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, identityDomain.ErrInvalidCredential
	}

	subjectID, err := uuid.Parse(subject)
	if err != nil {
		return nil, identityDomain.ErrInvalidCredential
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, identityDomain.ErrInvalidCredential
	}

	return &VerifiedSession{
		SubjectID: subjectID,
		ExpiresAt: expiresAt.Time,
	}, nil
}
