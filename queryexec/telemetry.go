package queryexec

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// telemetry bundles the executor's metric instruments and tracer. Without
// an injected meter or tracer it is backed by noop providers and records
// nothing.
type telemetry struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	tracer       trace.Tracer
}

func newTelemetry(meter metric.Meter, tracer trace.Tracer) (*telemetry, error) {
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("queryexec")
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("queryexec")
	}

	totalCount, err := meter.Int64Counter(
		"query.exec.total",
		metric.WithDescription("Total number of query executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"query.exec.errors",
		metric.WithDescription("Total number of failed query executions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"query.exec.duration_ms",
		metric.WithDescription("Query execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &telemetry{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		tracer:       tracer,
	}, nil
}

// startSpan opens a span around one Execute call. Query text is kept out
// of span attributes.
func (t *telemetry) startSpan(ctx context.Context, endpoint, format string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "queryexec.Execute",
		trace.WithAttributes(
			attribute.String("query.endpoint", endpoint),
			attribute.String("query.format", format),
		),
	)
}

// record counts one execution and its duration.
func (t *telemetry) record(ctx context.Context, endpoint string, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("query.endpoint", endpoint))

	t.totalCount.Add(ctx, 1, opt)
	if err != nil {
		t.errorCount.Add(ctx, 1, opt)
	}
	t.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}
