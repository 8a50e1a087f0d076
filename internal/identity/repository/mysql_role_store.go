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

// MySQLRoleStore implements role record persistence for MySQL.
// UUIDs are stored as 36-character strings.
type MySQLRoleStore struct {
	db *sql.DB
}

// GetBySubject retrieves a role record by identity provider subject.
// Returns ErrRoleRecordNotFound if no record exists.
func (m *MySQLRoleStore) GetBySubject(
	ctx context.Context,
	subjectID uuid.UUID,
) (*identityDomain.RoleRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT subject_id, email, role, clinic_id, email_verified, is_active,
			         doctor_id, patient_id, doctor_approved, created_at
			  FROM role_records
			  WHERE subject_id = ?`

	var record identityDomain.RoleRecord
	var role string
	var subject, clinicID string
	var doctorID, patientID sql.NullString

	err := querier.QueryRowContext(ctx, query, subjectID.String()).Scan(
		&subject,
		&record.Email,
		&role,
		&clinicID,
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

	if record.SubjectID, err = uuid.Parse(subject); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse subject id")
	}
	if record.ClinicID, err = uuid.Parse(clinicID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse clinic id")
	}

	record.Role, err = identityDomain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	if doctorID.Valid {
		id, err := uuid.Parse(doctorID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse doctor id")
		}
		record.DoctorID = &id
	}
	if patientID.Valid {
		id, err := uuid.Parse(patientID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse patient id")
		}
		record.PatientID = &id
	}

	return &record, nil
}

// Create stores a new role record.
func (m *MySQLRoleStore) Create(
	ctx context.Context,
	record *identityDomain.RoleRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO role_records
			  (subject_id, email, role, clinic_id, email_verified, is_active,
			   doctor_id, patient_id, doctor_approved, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var doctorID, patientID any
	if record.DoctorID != nil {
		doctorID = record.DoctorID.String()
	}
	if record.PatientID != nil {
		patientID = record.PatientID.String()
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		record.SubjectID.String(),
		record.Email,
		record.Role.String(),
		record.ClinicID.String(),
		record.EmailVerified,
		record.IsActive,
		doctorID,
		patientID,
		record.DoctorApproved,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role record")
	}

	return nil
}

// NewMySQLRoleStore creates a new MySQL role store.
func NewMySQLRoleStore(db *sql.DB) *MySQLRoleStore {
	return &MySQLRoleStore{db: db}
}
