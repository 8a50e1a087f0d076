// Package repository implements role-store persistence.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicguard/clinicguard/internal/database"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// PostgreSQLRoleStore implements role record persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRoleStore struct {
	db *sql.DB
}

// GetBySubject retrieves a role record by identity provider subject.
// Returns ErrRoleRecordNotFound if no record exists.
func (p *PostgreSQLRoleStore) GetBySubject(
	ctx context.Context,
	subjectID uuid.UUID,
) (*identityDomain.RoleRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT subject_id, email, role, clinic_id, email_verified, is_active,
			         doctor_id, patient_id, doctor_approved, created_at
			  FROM role_records
			  WHERE subject_id = $1`

	var record identityDomain.RoleRecord
	var role string
	var doctorID, patientID uuid.NullUUID

	err := querier.QueryRowContext(ctx, query, subjectID).Scan(
		&record.SubjectID,
		&record.Email,
		&role,
		&record.ClinicID,
		&record.EmailVerified,
		&record.IsActive,
		&doctorID,
		&patientID,
		&record.DoctorApproved,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrRoleRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role record")
	}

	record.Role, err = identityDomain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	if doctorID.Valid {
		record.DoctorID = &doctorID.UUID
	}
	if patientID.Valid {
		record.PatientID = &patientID.UUID
	}

	return &record, nil
}

// Create stores a new role record.
func (p *PostgreSQLRoleStore) Create(
	ctx context.Context,
	record *identityDomain.RoleRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO role_records
			  (subject_id, email, role, clinic_id, email_verified, is_active,
			   doctor_id, patient_id, doctor_approved, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.SubjectID,
		record.Email,
		record.Role.String(),
		record.ClinicID,
		record.EmailVerified,
		record.IsActive,
		record.DoctorID,
		record.PatientID,
		record.DoctorApproved,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role record")
	}

	return nil
}

// NewPostgreSQLRoleStore creates a new PostgreSQL role store.
func NewPostgreSQLRoleStore(db *sql.DB) *PostgreSQLRoleStore {
	return &PostgreSQLRoleStore{db: db}
}
