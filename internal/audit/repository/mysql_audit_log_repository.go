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

// MySQLAuditLogRepository implements audit entry persistence for MySQL.
// UUIDs are stored as 36-character strings; metadata as JSON.
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// Create appends a new audit entry. Handles nil metadata as database NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	var metadataJSON []byte
	var err error

	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry metadata")
		}
	}

	query := `INSERT INTO audit_logs
			  (id, request_id, actor_id, clinic_id, action, resource_type, resource_id,
			   ip, user_agent, success, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID.String(),
		entry.RequestID,
		entry.ActorID.String(),
		entry.ClinicID.String(),
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
// with pagination and optional inclusive time filters.
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, request_id, actor_id, clinic_id, action, resource_type, resource_id,
			         ip, user_agent, success, metadata, created_at
			  FROM audit_logs
			  WHERE (? IS NULL OR created_at >= ?)
			    AND (? IS NULL OR created_at <= ?)
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(
		ctx, query,
		createdAtFrom, createdAtFrom,
		createdAtTo, createdAtTo,
		limit, offset,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		var entry auditDomain.Entry
		var metadataJSON []byte
		var action string
		var id, actorID, clinicID string

		err := rows.Scan(
			&id,
			&entry.RequestID,
			&actorID,
			&clinicID,
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

		if entry.ID, err = parseUUID(id); err != nil {
			return nil, err
		}
		if entry.ActorID, err = parseUUID(actorID); err != nil {
			return nil, err
		}
		if entry.ClinicID, err = parseUUID(clinicID); err != nil {
			return nil, err
		}

		entry.Action = auditDomain.Action(action)

		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit entry metadata")
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit entries")
	}

	return entries, nil
}

// CountOlderThan counts audit entries created strictly before the cutoff.
func (m *MySQLAuditLogRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE created_at < ?`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit entries")
	}

	return count, nil
}

// CountByActionSince counts audit entries created at or after the given time,
// grouped by action.
func (m *MySQLAuditLogRepository) CountByActionSince(
	ctx context.Context,
	since time.Time,
) (map[auditDomain.Action]int64, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(
		ctx,
		`SELECT action, COUNT(*) FROM audit_logs WHERE created_at >= ? GROUP BY action`,
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
func (m *MySQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM audit_logs WHERE created_at < ?`,
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

// NewMySQLAuditLogRepository creates a new MySQL audit log repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
