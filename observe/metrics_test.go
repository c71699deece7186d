package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t testing.TB) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return rm
}

func counterTotal(rm metricdata.ResourceMetrics, name string) int64 {
	found := findMetric(rm, name)
	if found == nil {
		return 0
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		return -1
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_StatusCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := CallMeta{Name: "f", Namespace: "ns"}

	m.RecordCall(ctx, meta, StatusMiss, time.Millisecond, nil)
	m.RecordCall(ctx, meta, StatusHit, time.Millisecond, nil)
	m.RecordCall(ctx, meta, StatusHit, time.Millisecond, nil)
	m.RecordCall(ctx, meta, StatusBypass, time.Millisecond, nil)
	m.RecordCall(ctx, meta, StatusError, time.Millisecond, errors.New("boom"))

	rm := collect(t, reader)
	want := map[string]int64{
		"memo.call.total":  5,
		"memo.call.hits":   2,
		"memo.call.misses": 1,
		"memo.call.errors": 1,
	}
	for name, n := range want {
		if got := counterTotal(rm, name); got != n {
			t.Errorf("%s = %d, want %d", name, got, n)
		}
	}
}

func TestMetrics_DurationHistogram(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordCall(context.Background(), CallMeta{Name: "f"}, StatusMiss, 250*time.Millisecond, nil)

	found := findMetric(collect(t, reader), "memo.call.duration_ms")
	if found == nil {
		t.Fatal("memo.call.duration_ms not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	dp := hist.DataPoints[0]
	if dp.Count != 1 || dp.Sum != 250 {
		t.Errorf("count=%d sum=%v, want 1 and 250", dp.Count, dp.Sum)
	}
}

func TestMetrics_Labels(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordCall(context.Background(), CallMeta{Name: "f", Namespace: "ns"}, StatusHit, 0, nil)

	found := findMetric(collect(t, reader), "memo.call.total")
	if found == nil {
		t.Fatal("memo.call.total not found")
	}
	attrs := found.Data.(metricdata.Sum[int64]).DataPoints[0].Attributes
	want := map[attribute.Key]string{
		"memo.name":      "f",
		"memo.namespace": "ns",
		"memo.status":    "hit",
	}
	for k, v := range want {
		got, ok := attrs.Value(k)
		if !ok || got.AsString() != v {
			t.Errorf("attribute %s = %v, want %q", k, got.Emit(), v)
		}
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)
	const n = 50

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCall(context.Background(), CallMeta{Name: "f"}, StatusHit, time.Microsecond, nil)
		}()
	}
	wg.Wait()

	if got := counterTotal(collect(t, reader), "memo.call.total"); got != n {
		t.Errorf("memo.call.total = %d, want %d", got, n)
	}
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}
