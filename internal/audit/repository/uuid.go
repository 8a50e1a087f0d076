package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// parseUUID converts a stored string identifier back into a uuid.UUID.
func parseUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Wrapf(err, "failed to parse uuid %q", value)
	}
	return id, nil
}
