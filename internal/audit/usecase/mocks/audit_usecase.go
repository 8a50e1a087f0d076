// Package mocks provides mock implementations for testing audit consumers.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
)

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase for testing.
type MockAuditLogUseCase struct {
	mock.Mock
}

// List mocks the List method of AuditLogUseCase.
func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Entry), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of AuditLogUseCase.
func (m *MockAuditLogUseCase) DeleteOlderThan(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// Summary mocks the Summary method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Summary(
	ctx context.Context,
	window time.Duration,
) (*auditDomain.ActivitySummary, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.ActivitySummary), args.Error(1)
}

// RecorderSpy is a Recorder test double that captures every recorded entry.
type RecorderSpy struct {
	mu      sync.Mutex
	entries []*auditDomain.Entry
}

// Record captures the entry.
func (r *RecorderSpy) Record(entry *auditDomain.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Run blocks until the context is cancelled.
func (r *RecorderSpy) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Entries returns a snapshot of the captured entries.
func (r *RecorderSpy) Entries() []*auditDomain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]*auditDomain.Entry, len(r.entries))
	copy(snapshot, r.entries)
	return snapshot
}

// Last returns the most recently captured entry, or nil.
func (r *RecorderSpy) Last() *auditDomain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}
