package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// AuditMetrics tracks audit pipeline health: entries dropped under queue
// saturation and persistence failures swallowed by the recorder. These are the
// only signals that audit completeness degraded, since the recorder never
// surfaces errors to request handlers.
type AuditMetrics interface {
	// RecordDropped counts entries discarded because the queue was saturated.
	RecordDropped(ctx context.Context)

	// RecordFlushError counts persistence failures swallowed by the recorder.
	RecordFlushError(ctx context.Context)
}

// auditMetrics implements AuditMetrics using OpenTelemetry metrics.
type auditMetrics struct {
	droppedCounter    metric.Int64Counter
	flushErrorCounter metric.Int64Counter
}

// NewAuditMetrics creates a new AuditMetrics implementation using the provided meter provider.
func NewAuditMetrics(meterProvider metric.MeterProvider, namespace string) (AuditMetrics, error) {
	meter := meterProvider.Meter(namespace)

	droppedCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_audit_entries_dropped_total", namespace),
		metric.WithDescription("Total number of audit entries dropped due to queue saturation"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dropped counter: %w", err)
	}

	flushErrorCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_audit_flush_errors_total", namespace),
		metric.WithDescription("Total number of audit persistence failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flush error counter: %w", err)
	}

	return &auditMetrics{
		droppedCounter:    droppedCounter,
		flushErrorCounter: flushErrorCounter,
	}, nil
}

// RecordDropped increments the dropped-entry counter.
func (a *auditMetrics) RecordDropped(ctx context.Context) {
	a.droppedCounter.Add(ctx, 1)
}

// RecordFlushError increments the flush-error counter.
func (a *auditMetrics) RecordFlushError(ctx context.Context) {
	a.flushErrorCounter.Add(ctx, 1)
}

// NoOpAuditMetrics is a no-op implementation of AuditMetrics for when metrics are disabled.
type NoOpAuditMetrics struct{}

// NewNoOpAuditMetrics creates a no-op AuditMetrics implementation.
func NewNoOpAuditMetrics() AuditMetrics {
	return &NoOpAuditMetrics{}
}

// RecordDropped does nothing when metrics are disabled.
func (n *NoOpAuditMetrics) RecordDropped(ctx context.Context) {
	// No-op
}

// RecordFlushError does nothing when metrics are disabled.
func (n *NoOpAuditMetrics) RecordFlushError(ctx context.Context) {
	// No-op
}
