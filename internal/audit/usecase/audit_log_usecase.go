package usecase

import (
	"context"
	"time"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
)

// auditLogUseCase implements AuditLogUseCase for reading persisted entries.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
}

// List retrieves audit entries ordered by created_at descending (newest first)
// with pagination and optional time-based filtering. Both boundaries are
// inclusive and expected in UTC. Returns an empty slice when nothing matches.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	entries, err := a.auditLogRepo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}

	return entries, nil
}

// DeleteOlderThan removes audit entries older than the given number of days.
// With dryRun set it only counts what would be deleted. Retention cleanup is
// the single sanctioned mutation of the otherwise append-only trail.
func (a *auditLogUseCase) DeleteOlderThan(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		count, err := a.auditLogRepo.CountOlderThan(ctx, cutoff)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit entries for cleanup")
		}
		return count, nil
	}

	count, err := a.auditLogRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit entries")
	}

	return count, nil
}

// Summary aggregates audit activity over the trailing window. Counts only;
// entry contents never leave the store through this path.
func (a *auditLogUseCase) Summary(
	ctx context.Context,
	window time.Duration,
) (*auditDomain.ActivitySummary, error) {
	since := time.Now().UTC().Add(-window)

	byAction, err := a.auditLogRepo.CountByActionSince(ctx, since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to summarize audit activity")
	}

	return auditDomain.NewActivitySummary(since, byAction), nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
	}
}
