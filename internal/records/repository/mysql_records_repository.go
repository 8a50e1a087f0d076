package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicguard/clinicguard/internal/database"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	recordsDomain "github.com/clinicguard/clinicguard/internal/records/domain"
)

// MySQLChartRepository implements chart persistence for MySQL.
// UUIDs are stored as 36-character strings.
type MySQLChartRepository struct {
	db *sql.DB
}

// GetByPatient retrieves the chart for a patient within a clinic. The clinic
// filter is part of the query so rows from other tenants are never loaded.
func (m *MySQLChartRepository) GetByPatient(
	ctx context.Context,
	patientID, clinicID uuid.UUID,
) (*recordsDomain.PatientChart, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, patient_id, clinic_id, summary, updated_at
			  FROM patient_charts
			  WHERE patient_id = ? AND clinic_id = ?`

	var idStr, patientIDStr, clinicIDStr string
	chart := &recordsDomain.PatientChart{}
	err := querier.QueryRowContext(ctx, query, patientID.String(), clinicID.String()).Scan(
		&idStr,
		&patientIDStr,
		&clinicIDStr,
		&chart.Summary,
		&chart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrChartNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get patient chart")
	}

	if chart.ID, err = parseUUID(idStr, "chart id"); err != nil {
		return nil, err
	}
	if chart.PatientID, err = parseUUID(patientIDStr, "patient id"); err != nil {
		return nil, err
	}
	if chart.ClinicID, err = parseUUID(clinicIDStr, "clinic id"); err != nil {
		return nil, err
	}

	return chart, nil
}

// NewMySQLChartRepository creates a new MySQL chart repository.
func NewMySQLChartRepository(db *sql.DB) *MySQLChartRepository {
	return &MySQLChartRepository{db: db}
}

// MySQLFileRepository implements file record persistence for MySQL.
type MySQLFileRepository struct {
	db *sql.DB
}

// Get retrieves a file record by id within a clinic.
func (m *MySQLFileRepository) Get(
	ctx context.Context,
	fileID, clinicID uuid.UUID,
) (*recordsDomain.FileRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, patient_id, clinic_id, file_name, file_size, file_type,
			         category, storage_key, created_at
			  FROM file_records
			  WHERE id = ? AND clinic_id = ?`

	var idStr, patientIDStr, clinicIDStr string
	file := &recordsDomain.FileRecord{}
	err := querier.QueryRowContext(ctx, query, fileID.String(), clinicID.String()).Scan(
		&idStr,
		&patientIDStr,
		&clinicIDStr,
		&file.FileName,
		&file.FileSize,
		&file.FileType,
		&file.Category,
		&file.StorageKey,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file record")
	}

	if file.ID, err = parseUUID(idStr, "file id"); err != nil {
		return nil, err
	}
	if file.PatientID, err = parseUUID(patientIDStr, "patient id"); err != nil {
		return nil, err
	}
	if file.ClinicID, err = parseUUID(clinicIDStr, "clinic id"); err != nil {
		return nil, err
	}

	return file, nil
}

// NewMySQLFileRepository creates a new MySQL file repository.
func NewMySQLFileRepository(db *sql.DB) *MySQLFileRepository {
	return &MySQLFileRepository{db: db}
}

func parseUUID(value, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Wrapf(err, "failed to parse %s", field)
	}
	return parsed, nil
}
