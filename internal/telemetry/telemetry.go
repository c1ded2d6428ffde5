// Package telemetry owns the process-wide logger and OpenTelemetry
// providers. They are created once at the application boundary and
// handed to the catalog store, which never touches global state itself.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"libraryinventory/internal/config"
)

const (
	ServiceName     = "library-inventory"
	shutdownTimeout = 5 * time.Second
)

// Telemetry bundles the logger and providers of one session.
type Telemetry struct {
	Logger         *slog.Logger
	SessionID      uuid.UUID
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider

	logFile io.Closer
}

// New builds the session logger and providers from cfg. Traces are
// exported over OTLP/HTTP only when an endpoint is configured.
func New(ctx context.Context, cfg config.Config) (*Telemetry, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	var logFile io.Closer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, logFile = f, f
	}

	sessionID := uuid.New()
	logger := NewLogger(out, level).With("session", sessionID.String())

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceInstanceIDKey.String(sessionID.String()),
		),
	)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			closeQuietly(logFile)
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(exporter))
	}

	t := &Telemetry{
		Logger:         logger,
		SessionID:      sessionID,
		TracerProvider: sdktrace.NewTracerProvider(traceOpts...),
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithResource(res)),
		logFile:        logFile,
	}

	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)

	return t, nil
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Shutdown flushes the providers and closes the log file.
func (t *Telemetry) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer provider: %w", err))
	}
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter provider: %w", err))
	}
	if t.logFile != nil {
		if err := t.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}
