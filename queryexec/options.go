package queryexec

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/queryops/querycache"
)

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor's logger. The default logger discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(ex *Executor) { ex.logger = l }
}

// WithKeyer overrides the cache key derivation.
func WithKeyer(k querycache.Keyer) Option {
	return func(ex *Executor) {
		if k != nil {
			ex.keyer = k
		}
	}
}

// WithMeter sets the OpenTelemetry meter backing execution metrics. The
// default meter records nothing.
func WithMeter(m metric.Meter) Option {
	return func(ex *Executor) { ex.meter = m }
}

// WithTracer sets the OpenTelemetry tracer for Execute spans. The default
// tracer records nothing.
func WithTracer(t trace.Tracer) Option {
	return func(ex *Executor) { ex.tracer = t }
}

// WithSingleFlight collapses concurrent cache misses for the same key into
// one remote call. Off by default: concurrent misses then each call the
// remote, which is harmless because Set is idempotent per key.
func WithSingleFlight() Option {
	return func(ex *Executor) { ex.sf = new(singleflight.Group) }
}
