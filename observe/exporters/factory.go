// Package exporters builds OpenTelemetry span exporters and metric readers
// from an exporter name, reading endpoints from the standard OTEL environment.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrUnknownExporter is returned for exporter names the factory does not know.
var ErrUnknownExporter = errors.New("exporters: unknown exporter")

// ErrEndpointNotConfigured is returned when a network exporter has no endpoint.
var ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")

// Environment variables consulted for endpoints, in lookup order.
var (
	TraceEndpointEnv  = []string{"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"}
	MetricEndpointEnv = []string{"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"}
	JaegerEndpointEnv = []string{"OTEL_EXPORTER_JAEGER_ENDPOINT"}
)

func requireEndpoint(vars []string) error {
	for _, name := range vars {
		if os.Getenv(name) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: set one of %v", ErrEndpointNotConfigured, vars)
}

// NewTracingExporter returns a span exporter for stdout, otlp, jaeger or none.
// Jaeger is reached over OTLP.
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	case "otlp":
		if err := requireEndpoint(TraceEndpointEnv); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)
	case "jaeger":
		if err := requireEndpoint(JaegerEndpointEnv); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)
	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
}

// NewMetricsReader returns a metric reader for stdout, otlp, prometheus or none.
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	var (
		exp sdkmetric.Exporter
		err error
	)
	switch name {
	case "prometheus":
		reader, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("prometheus exporter: %w", err)
		}
		return reader, nil
	case "stdout":
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
	case "otlp":
		if err := requireEndpoint(MetricEndpointEnv); err != nil {
			return nil, err
		}
		exp, err = otlpmetricgrpc.New(ctx)
	case "none", "":
		exp, err = stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s metrics exporter: %w", name, err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}
