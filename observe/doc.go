// Package observe provides observability primitives for memoized calls.
//
// It is a pure instrumentation library: a JSON structured Logger, OpenTelemetry
// metrics and tracing keyed by CallMeta, and an Observer that wires exporters.
// The memo package consumes it through Instruments.
package observe
