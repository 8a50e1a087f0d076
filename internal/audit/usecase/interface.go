// Package usecase implements the audit pipeline business logic.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
)

// AuditLogRepository defines persistence operations for audit entries.
// Implementations must support transaction-aware operations via context propagation.
type AuditLogRepository interface {
	// Create appends a new audit entry. Entries are immutable once written.
	Create(ctx context.Context, entry *auditDomain.Entry) error

	// List retrieves audit entries ordered by created_at descending with
	// pagination and optional inclusive time filters (nil means no filter).
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)

	// CountOlderThan counts entries created strictly before the cutoff.
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// CountByActionSince counts entries created at or after the given time,
	// grouped by action.
	CountByActionSince(ctx context.Context, since time.Time) (map[auditDomain.Action]int64, error)

	// DeleteOlderThan removes entries created strictly before the cutoff and
	// returns the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Recorder accepts audit entries for asynchronous persistence. Record never
// blocks the caller and never surfaces an error; audit completeness is
// best-effort, request correctness is not.
type Recorder interface {
	// Record sanitizes and enqueues an entry. Safe for concurrent use.
	Record(entry *auditDomain.Entry)

	// Run drains the queue until ctx is cancelled, then flushes what remains.
	Run(ctx context.Context) error
}

// AuditLogUseCase defines read and retention operations over persisted audit entries.
type AuditLogUseCase interface {
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)

	// DeleteOlderThan removes entries older than the given number of days.
	// With dryRun set it only counts what would be deleted.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)

	// Summary aggregates activity over the trailing window.
	Summary(ctx context.Context, window time.Duration) (*auditDomain.ActivitySummary, error)
}

// RecorderMetrics tracks audit pipeline health on a diagnostic channel.
type RecorderMetrics interface {
	// RecordDropped counts entries discarded because the queue was saturated.
	RecordDropped(ctx context.Context)

	// RecordFlushError counts persistence failures swallowed by the recorder.
	RecordFlushError(ctx context.Context)
}
