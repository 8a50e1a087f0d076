// Package repository implements doctor-patient assignment persistence.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/clinicguard/clinicguard/internal/database"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// PostgreSQLRelationshipStore implements assignment persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRelationshipStore struct {
	db *sql.DB
}

// ActiveAssignmentExists reports whether an active assignment links the doctor
// to the patient.
func (p *PostgreSQLRelationshipStore) ActiveAssignmentExists(
	ctx context.Context,
	doctorID, patientID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS(
			    SELECT 1 FROM doctor_patient_assignments
			    WHERE doctor_id = $1 AND patient_id = $2 AND is_active = true
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, doctorID, patientID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check care relationship")
	}

	return exists, nil
}

// CreateAssignment stores a new active doctor-patient assignment.
func (p *PostgreSQLRelationshipStore) CreateAssignment(
	ctx context.Context,
	doctorID, patientID, clinicID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO doctor_patient_assignments
			  (id, doctor_id, patient_id, clinic_id, is_active, created_at)
			  VALUES ($1, $2, $3, $4, true, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		uuid.Must(uuid.NewV7()),
		doctorID,
		patientID,
		clinicID,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create care relationship")
	}

	return nil
}

// NewPostgreSQLRelationshipStore creates a new PostgreSQL relationship store.
func NewPostgreSQLRelationshipStore(db *sql.DB) *PostgreSQLRelationshipStore {
	return &PostgreSQLRelationshipStore{db: db}
}
