// Package repository implements audit entry persistence.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	"github.com/clinicguard/clinicguard/internal/database"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// PostgreSQLAuditLogRepository implements audit entry persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create appends a new audit entry. Handles nil metadata as database NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	var metadataJSON []byte
	var err error

	// Handle nil metadata as NULL
	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry metadata")
		}
	}

	query := `INSERT INTO audit_logs
			  (id, request_id, actor_id, clinic_id, action, resource_type, resource_id,
			   ip, user_agent, success, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.RequestID,
		entry.ActorID,
		entry.ClinicID,
		string(entry.Action),
		entry.ResourceType,
		entry.ResourceID,
		entry.IP,
		entry.UserAgent,
		entry.Success,
		metadataJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}

	return nil
}

// List retrieves audit entries ordered by created_at descending (newest first)
// with pagination and optional inclusive time filters. Returns an empty slice
// if no entries match. Handles NULL metadata by returning a nil map.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, request_id, actor_id, clinic_id, action, resource_type, resource_id,
			         ip, user_agent, success, metadata, created_at
			  FROM audit_logs
			  WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			    AND ($2::timestamptz IS NULL OR created_at <= $2)
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, createdAtFrom, createdAtTo, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit entries")
	}

	return entries, nil
}

// CountOlderThan counts audit entries created strictly before the cutoff.
func (p *PostgreSQLAuditLogRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE created_at < $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit entries")
	}

	return count, nil
}

// CountByActionSince counts audit entries created at or after the given time,
// grouped by action.
func (p *PostgreSQLAuditLogRepository) CountByActionSince(
	ctx context.Context,
	since time.Time,
) (map[auditDomain.Action]int64, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(
		ctx,
		`SELECT action, COUNT(*) FROM audit_logs WHERE created_at >= $1 GROUP BY action`,
		since,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count audit entries by action")
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[auditDomain.Action]int64)
	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit action count")
		}
		counts[auditDomain.Action(action)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit action counts")
	}

	return counts, nil
}

// DeleteOlderThan removes audit entries created strictly before the cutoff and
// returns the number of rows deleted. Used by retention cleanup only; entries
// are otherwise immutable.
func (p *PostgreSQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM audit_logs WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit entries")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}

// scanEntry scans a single audit entry row.
func scanEntry(rows *sql.Rows) (*auditDomain.Entry, error) {
	var entry auditDomain.Entry
	var metadataJSON []byte
	var action string

	err := rows.Scan(
		&entry.ID,
		&entry.RequestID,
		&entry.ActorID,
		&entry.ClinicID,
		&action,
		&entry.ResourceType,
		&entry.ResourceID,
		&entry.IP,
		&entry.UserAgent,
		&entry.Success,
		&metadataJSON,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan audit entry")
	}

	entry.Action = auditDomain.Action(action)

	// Unmarshal metadata if not NULL
	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit entry metadata")
		}
	}

	return &entry, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}
