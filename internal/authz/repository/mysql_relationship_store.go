package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/clinicguard/clinicguard/internal/database"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// MySQLRelationshipStore implements assignment persistence for MySQL.
// UUIDs are stored as 36-character strings.
type MySQLRelationshipStore struct {
	db *sql.DB
}

// ActiveAssignmentExists reports whether an active assignment links the doctor
// to the patient.
func (m *MySQLRelationshipStore) ActiveAssignmentExists(
	ctx context.Context,
	doctorID, patientID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS(
			    SELECT 1 FROM doctor_patient_assignments
			    WHERE doctor_id = ? AND patient_id = ? AND is_active = true
			  )`

	var exists bool
	err := querier.QueryRowContext(ctx, query, doctorID.String(), patientID.String()).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check care relationship")
	}

	return exists, nil
}

// CreateAssignment stores a new active doctor-patient assignment.
func (m *MySQLRelationshipStore) CreateAssignment(
	ctx context.Context,
	doctorID, patientID, clinicID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO doctor_patient_assignments
			  (id, doctor_id, patient_id, clinic_id, is_active, created_at)
			  VALUES (?, ?, ?, ?, true, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		uuid.Must(uuid.NewV7()).String(),
		doctorID.String(),
		patientID.String(),
		clinicID.String(),
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create care relationship")
	}

	return nil
}

// NewMySQLRelationshipStore creates a new MySQL relationship store.
func NewMySQLRelationshipStore(db *sql.DB) *MySQLRelationshipStore {
	return &MySQLRelationshipStore{db: db}
}
