// internal/catalog/observability.go
package catalog

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "libraryinventory/catalog"

// Logger receives operational events from the store. *slog.Logger
// satisfies it.
type Logger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Option configures a store created by NewService.
type Option func(*service)

// WithLogger sets the sink for load, save and mutation events.
func WithLogger(logger Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *service) {
		if tp != nil {
			s.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *service) {
		if mp != nil {
			s.meter = mp.Meter(instrumentationName)
		}
	}
}

func defaultObservability(s *service) {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.tracer = otel.Tracer(instrumentationName)
	s.meter = otel.Meter(instrumentationName)
}

// instruments holds the counters the store reports to.
type instruments struct {
	mutations       metric.Int64Counter
	persistFailures metric.Int64Counter
}

func newInstruments(meter metric.Meter) instruments {
	// The SDK returns a usable instrument alongside any registration error.
	mutations, _ := meter.Int64Counter("catalog.mutations",
		metric.WithDescription("Mutating catalog operations by result kind"))
	persistFailures, _ := meter.Int64Counter("catalog.persist.failures",
		metric.WithDescription("Failed writes of the catalog file"))
	return instruments{mutations: mutations, persistFailures: persistFailures}
}
