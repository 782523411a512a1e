package identity

import (
	"context"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/telemetry/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/hyperlocal/internal/services/web/identity"

type instrumented struct {
	next    Provider
	name    string
	metrics *metrics.IdentityMetrics
	tracer  trace.Tracer
}

// Instrumented wraps provider with a span and an outcome counter per
// resolution. It never logs.
func Instrumented(provider Provider, name string, m *metrics.IdentityMetrics) Provider {
	if provider == nil {
		provider = Anonymous{}
	}
	return &instrumented{
		next:    provider,
		name:    name,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
}

func (p *instrumented) CurrentUser(ctx context.Context, credential string) (User, error) {
	ctx, span := p.tracer.Start(ctx, "identity.CurrentUser", trace.WithAttributes(
		attribute.String("identity.provider", p.name),
	))
	defer span.End()

	start := time.Now()
	user, err := p.next.CurrentUser(ctx, credential)
	outcome := metrics.OutcomeResolved
	if err != nil {
		outcome = metrics.OutcomeAnonymous
	}
	span.SetAttributes(attribute.String("identity.outcome", outcome))
	p.metrics.ObserveResolution(p.name, outcome, time.Since(start))
	return user, err
}

func (p *instrumented) LoginURL(returnTo string) string {
	return p.next.LoginURL(returnTo)
}
