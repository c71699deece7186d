package observe

import (
	"context"
	"time"
)

// Instruments bundles the tracer, metrics and logger used around each
// memoized call. Nil fields are treated as no-ops.
type Instruments struct {
	Tracer  Tracer
	Metrics Metrics
	Logger  Logger
}

// NoopInstruments returns Instruments that record nothing.
func NoopInstruments() Instruments {
	return Instruments{
		Tracer:  NoopTracer(),
		Metrics: noopMetrics{},
		Logger:  NopLogger(),
	}
}

// InstrumentsFromObserver builds Instruments from an Observer.
func InstrumentsFromObserver(obs Observer) (Instruments, error) {
	if obs == nil {
		return Instruments{}, ErrNilObserver
	}
	m, err := NewMetrics(obs.Meter())
	if err != nil {
		return Instruments{}, err
	}
	return Instruments{
		Tracer:  NewTracer(obs.Tracer()),
		Metrics: m,
		Logger:  obs.Logger(),
	}, nil
}

// WithDefaults returns in with nil fields replaced by no-op implementations.
func (in Instruments) WithDefaults() Instruments {
	if in.Tracer == nil {
		in.Tracer = NoopTracer()
	}
	if in.Metrics == nil {
		in.Metrics = noopMetrics{}
	}
	if in.Logger == nil {
		in.Logger = NopLogger()
	}
	return in
}

// Run executes fn inside a span for meta and records its metrics and a
// debug log line. fn reports the call status; it is StatusError when fn
// fails without naming one.
func (in Instruments) Run(ctx context.Context, meta CallMeta, fn func(ctx context.Context) (string, error)) error {
	in = in.WithDefaults()
	logger := in.Logger.WithCall(meta)

	ctx, span := in.Tracer.StartSpan(ctx, meta)
	start := time.Now()

	status, err := fn(ctx)
	if err != nil && status == "" {
		status = StatusError
	}
	duration := time.Since(start)

	in.Tracer.EndSpan(span, status, err)
	in.Metrics.RecordCall(ctx, meta, status, duration, err)

	if err != nil {
		logger.Error(ctx, "memoized call failed",
			Field{Key: "memo.status", Value: status},
			Field{Key: "error", Value: err},
			Field{Key: "duration_ms", Value: duration.Milliseconds()},
		)
	} else {
		logger.Debug(ctx, "memoized call",
			Field{Key: "memo.status", Value: status},
			Field{Key: "duration_ms", Value: duration.Milliseconds()},
		)
	}
	return err
}
