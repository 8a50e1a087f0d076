package usecase

import (
	"context"
	"time"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	"github.com/clinicguard/clinicguard/internal/metrics"
)

// resolverUseCaseWithMetrics decorates ResolverUseCase with metrics instrumentation.
type resolverUseCaseWithMetrics struct {
	next    ResolverUseCase
	metrics metrics.BusinessMetrics
}

// NewResolverUseCaseWithMetrics wraps a ResolverUseCase with metrics recording.
func NewResolverUseCaseWithMetrics(useCase ResolverUseCase, m metrics.BusinessMetrics) ResolverUseCase {
	return &resolverUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Resolve records metrics for identity resolution.
func (r *resolverUseCaseWithMetrics) Resolve(
	ctx context.Context,
	rawCredential string,
	reqCtx *identityDomain.RequestContext,
) (*identityDomain.Principal, error) {
	start := time.Now()
	principal, err := r.next.Resolve(ctx, rawCredential, reqCtx)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "identity", "resolve_session", status)
	r.metrics.RecordDuration(ctx, "identity", "resolve_session", time.Since(start), status)

	return principal, err
}
