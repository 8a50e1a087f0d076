package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
)

// RecorderConfig holds the audit recorder configuration.
type RecorderConfig struct {
	// QueueSize is the bounded queue capacity. When the queue is saturated the
	// oldest entry is dropped and counted; the recorder never blocks a caller.
	QueueSize int

	// Workers is the number of goroutines draining the queue.
	Workers int

	// FlushTimeout bounds a single persistence attempt.
	FlushTimeout time.Duration
}

// recorder implements Recorder with a bounded channel drained by background
// workers. Failures stay on the diagnostic channel (log + metrics) and are
// never surfaced to request handlers.
type recorder struct {
	config  RecorderConfig
	repo    AuditLogRepository
	metrics RecorderMetrics
	logger  *slog.Logger

	queue chan *auditDomain.Entry

	mu     sync.Mutex
	closed bool
}

// NewRecorder creates a new audit Recorder with the provided dependencies.
// The metrics parameter may be nil when metrics collection is disabled.
func NewRecorder(
	config RecorderConfig,
	repo AuditLogRepository,
	metrics RecorderMetrics,
	logger *slog.Logger,
) Recorder {
	if config.QueueSize <= 0 {
		config.QueueSize = 1024
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.FlushTimeout <= 0 {
		config.FlushTimeout = 5 * time.Second
	}

	return &recorder{
		config:  config,
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		queue:   make(chan *auditDomain.Entry, config.QueueSize),
	}
}

// Record sanitizes the entry's metadata, stamps identity and time, and
// enqueues it. When the queue is full the oldest entry is dropped so the
// newest access is the one that survives.
func (r *recorder) Record(entry *auditDomain.Entry) {
	if entry == nil {
		return
	}

	// Sanitize by allow-list before the entry can reach any sink.
	entry.Metadata = auditDomain.SanitizeMetadata(entry.Metadata)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.Must(uuid.NewV7())
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.countDrop(entry)
		return
	}

	for {
		select {
		case r.queue <- entry:
			return
		default:
		}

		// Queue saturated: drop the oldest entry and retry once.
		select {
		case dropped := <-r.queue:
			r.countDrop(dropped)
		default:
			// A worker drained the queue between selects; loop and re-enqueue.
		}
	}
}

// Run starts the worker pool and blocks until ctx is cancelled. Entries
// enqueued before cancellation are still flushed; persistence uses its own
// timeout-bound context so a disconnecting client cannot abort a write.
func (r *recorder) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case entry := <-r.queue:
					r.flush(entry)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()

	// Stop accepting new entries, then drain whatever is left.
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	for {
		select {
		case entry := <-r.queue:
			r.flush(entry)
		default:
			return ctx.Err()
		}
	}
}

// flush persists a single entry, swallowing any failure onto the diagnostic channel.
func (r *recorder) flush(entry *auditDomain.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.FlushTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, entry); err != nil {
		if r.metrics != nil {
			r.metrics.RecordFlushError(ctx)
		}
		if r.logger != nil {
			r.logger.Error("audit flush failed",
				slog.String("entry_id", entry.ID.String()),
				slog.String("action", string(entry.Action)),
				slog.Any("error", err),
			)
		}
	}
}

// countDrop records a discarded entry on the diagnostic channel.
func (r *recorder) countDrop(entry *auditDomain.Entry) {
	if r.metrics != nil {
		r.metrics.RecordDropped(context.Background())
	}
	if r.logger != nil {
		r.logger.Warn("audit entry dropped",
			slog.String("action", string(entry.Action)),
			slog.String("request_id", entry.RequestID),
		)
	}
}
