package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records counters and latency for memoized calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one call with its status and duration.
	RecordCall(ctx context.Context, meta CallMeta, status string, duration time.Duration, err error)
}

type metricsImpl struct {
	total    metric.Int64Counter
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates the memo.call.* instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	m := &metricsImpl{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.total, "memo.call.total", "Total number of memoized calls", "{call}"},
		{&m.hits, "memo.call.hits", "Calls served from the cache", "{call}"},
		{&m.misses, "memo.call.misses", "Calls that invoked the wrapped function", "{call}"},
		{&m.errors, "memo.call.errors", "Calls that returned an error", "{error}"},
	}
	for _, c := range counters {
		ctr, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
		*c.dst = ctr
	}

	hist, err := meter.Float64Histogram(
		"memo.call.duration_ms",
		metric.WithDescription("Memoized call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	m.duration = hist
	return m, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, status string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("memo.name", meta.DisplayName()),
		attribute.String("memo.status", status),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("memo.namespace", meta.Namespace))
	}
	opt := metric.WithAttributes(attrs...)

	m.total.Add(ctx, 1, opt)
	switch status {
	case StatusHit:
		m.hits.Add(ctx, 1, opt)
	case StatusMiss:
		m.misses.Add(ctx, 1, opt)
	}
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

type noopMetrics struct{}

func (noopMetrics) RecordCall(context.Context, CallMeta, string, time.Duration, error) {}
