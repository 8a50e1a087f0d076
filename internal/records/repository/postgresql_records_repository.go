// Package repository implements clinical record persistence.
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

// PostgreSQLChartRepository implements chart persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLChartRepository struct {
	db *sql.DB
}

// GetByPatient retrieves the chart for a patient within a clinic. The clinic
// filter is part of the query so rows from other tenants are never loaded.
func (p *PostgreSQLChartRepository) GetByPatient(
	ctx context.Context,
	patientID, clinicID uuid.UUID,
) (*recordsDomain.PatientChart, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, patient_id, clinic_id, summary, updated_at
			  FROM patient_charts
			  WHERE patient_id = $1 AND clinic_id = $2`

	chart := &recordsDomain.PatientChart{}
	err := querier.QueryRowContext(ctx, query, patientID, clinicID).Scan(
		&chart.ID,
		&chart.PatientID,
		&chart.ClinicID,
		&chart.Summary,
		&chart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrChartNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get patient chart")
	}

	return chart, nil
}

// NewPostgreSQLChartRepository creates a new PostgreSQL chart repository.
func NewPostgreSQLChartRepository(db *sql.DB) *PostgreSQLChartRepository {
	return &PostgreSQLChartRepository{db: db}
}

// PostgreSQLFileRepository implements file record persistence for PostgreSQL.
type PostgreSQLFileRepository struct {
	db *sql.DB
}

// Get retrieves a file record by id within a clinic.
func (p *PostgreSQLFileRepository) Get(
	ctx context.Context,
	fileID, clinicID uuid.UUID,
) (*recordsDomain.FileRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, patient_id, clinic_id, file_name, file_size, file_type,
			         category, storage_key, created_at
			  FROM file_records
			  WHERE id = $1 AND clinic_id = $2`

	file := &recordsDomain.FileRecord{}
	err := querier.QueryRowContext(ctx, query, fileID, clinicID).Scan(
		&file.ID,
		&file.PatientID,
		&file.ClinicID,
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

	return file, nil
}

// NewPostgreSQLFileRepository creates a new PostgreSQL file repository.
func NewPostgreSQLFileRepository(db *sql.DB) *PostgreSQLFileRepository {
	return &PostgreSQLFileRepository{db: db}
}
