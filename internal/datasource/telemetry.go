package datasource

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/meetjaka/voltherm-sub000/internal/datasource"

// Selector reports whether the remote path should be attempted.
type Selector interface {
	Available(ctx context.Context) bool
}

var _ Selector = (*Strategy)(nil)

// Telemetry counts operations per source and opens spans around them.
type Telemetry struct {
	tracer trace.Tracer
	ops    metric.Int64Counter
}

// NewTelemetry creates Telemetry from the given providers. Nil providers
// fall back to no-op implementations.
func NewTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*Telemetry, error) {
	if mp == nil {
		mp = metricnoop.NewMeterProvider()
	}
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}

	ops, err := mp.Meter(instrumentationName).Int64Counter("voltherm.datasource.operations",
		metric.WithDescription("Data operations by source"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create operations counter")
	}
	return &Telemetry{
		tracer: tp.Tracer(instrumentationName),
		ops:    ops,
	}, nil
}

// Start opens a span named op.
func (t *Telemetry) Start(ctx context.Context, op string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, op)
}

// Record counts one op served by src.
func (t *Telemetry) Record(ctx context.Context, op string, src Source) {
	t.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("source", string(src)),
	))
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("datasource.source", string(src)))
}
