package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

const testSigningKey = "test-signing-key-32-bytes-long!!"

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestJWTTokenVerifier_Verify(t *testing.T) {
	subjectID := uuid.Must(uuid.NewV7())
	expiry := time.Now().Add(time.Hour)

	verifier := NewJWTTokenVerifier(testSigningKey, 0)

	t.Run("valid token", func(t *testing.T) {
		raw := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": subjectID.String(),
			"exp": expiry.Unix(),
		})

		session, err := verifier.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, subjectID, session.SubjectID)
		assert.WithinDuration(t, expiry, session.ExpiresAt, time.Second)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		raw := signToken(t, "a-different-signing-key-entirely", jwt.MapClaims{
			"sub": subjectID.String(),
			"exp": expiry.Unix(),
		})

		_, err := verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": subjectID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("missing expiry claim", func(t *testing.T) {
		raw := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": subjectID.String(),
		})

		_, err := verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("missing subject claim", func(t *testing.T) {
		raw := signToken(t, testSigningKey, jwt.MapClaims{
			"exp": expiry.Unix(),
		})

		_, err := verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		raw := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": expiry.Unix(),
		})

		_, err := verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": subjectID.String(),
			"exp": expiry.Unix(),
		})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})

	t.Run("garbage input rejected", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")
		assert.True(t, errors.Is(err, identityDomain.ErrInvalidCredential))
	})
}

func TestJWTTokenVerifier_Leeway(t *testing.T) {
	subjectID := uuid.Must(uuid.NewV7())

	// Expired 10 seconds ago; a 30 second leeway still accepts it.
	raw := signToken(t, testSigningKey, jwt.MapClaims{
		"sub": subjectID.String(),
		"exp": time.Now().Add(-10 * time.Second).Unix(),
	})

	strict := NewJWTTokenVerifier(testSigningKey, 0)
	_, err := strict.Verify(raw)
	assert.Error(t, err)

	lenient := NewJWTTokenVerifier(testSigningKey, 30*time.Second)
	_, err = lenient.Verify(raw)
	assert.NoError(t, err)
}
