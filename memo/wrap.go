package memo

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/cachefn/cache"
	"github.com/jonwraymond/cachefn/observe"
)

// Func is a function that can be memoized.
type Func[R any] func(ctx context.Context, args ...any) (R, error)

// ResultFunc is a memoized function returning the Result envelope.
type ResultFunc[R any] func(ctx context.Context, args ...any) (Result[R], error)

// Wrap memoizes fn and returns its raw values. A nil m uses Default.
// ReturnRawValue has no effect here.
func Wrap[R any](m *Memoizer, fn Func[R], opts ...Option) Func[R] {
	rf := WrapResult(m, fn, opts...)
	return func(ctx context.Context, args ...any) (R, error) {
		res, err := rf(ctx, args...)
		if err != nil {
			var zero R
			return zero, err
		}
		return res.Value, nil
	}
}

// WrapResult memoizes fn and returns the Result envelope. A nil m uses Default.
func WrapResult[R any](m *Memoizer, fn Func[R], opts ...Option) ResultFunc[R] {
	if m == nil {
		m = Default()
	}
	wrapOpts := NewOptions(opts...)
	return func(ctx context.Context, args ...any) (Result[R], error) {
		return invoke(ctx, m, fn, wrapOpts, args)
	}
}

// Call memoizes a single invocation of fn with args. It returns a
// Result[any], or the bare value when ReturnRawValue is in effect. A nil m
// uses Default. Values read back from stores that encode them (such as
// Redis) are decoded into generic maps and slices.
func (m *Memoizer) Call(ctx context.Context, fn Func[any], args []any, opts ...Option) (any, error) {
	if m == nil {
		m = Default()
	}
	res, err := invoke(ctx, m, fn, NewOptions(opts...), args)
	if err != nil {
		return nil, err
	}
	if res.Options.ReturnRawValue {
		return res.Value, nil
	}
	return res, nil
}

func invoke[R any](ctx context.Context, m *Memoizer, fn Func[R], wrapOpts Options, args []any) (Result[R], error) {
	var res Result[R]

	eff, err := m.resolve(ctx, wrapOpts)
	if err != nil {
		m.instruments.Logger.Error(ctx, "memo: resolving options", observe.Field{Key: "error", Value: err})
		return res, err
	}
	res.Options = eff

	meta := observe.CallMeta{
		Name:      eff.Name,
		Namespace: eff.Namespace,
		Selector:  eff.Selector.String(),
	}
	err = m.instruments.Run(ctx, meta, func(ctx context.Context) (string, error) {
		if eff.NoCache {
			v, err := fn(ctx, args...)
			if err != nil {
				return "", err
			}
			res.Value = v
			return observe.StatusBypass, nil
		}

		key, err := m.deriveKey(args, eff)
		if err != nil {
			return "", err
		}
		res.Key = key
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("memo.key", key))

		h, err := m.InitializeOrGet(ctx, eff.Init)
		if err != nil {
			return "", err
		}
		store := h.Store()

		if !eff.Force {
			stored, ok, err := store.Get(ctx, key)
			if err != nil {
				return "", err
			}
			if ok {
				v, err := cache.Decode[R](stored)
				if err != nil {
					return "", err
				}
				res.Status = StatusHit
				res.Value = v
				return observe.StatusHit, nil
			}
		}

		v, created, err := compute(ctx, m, store, key, eff, fn, args)
		if err != nil {
			return "", err
		}
		res.Status = StatusMiss
		res.Value = v
		res.Created = created
		return observe.StatusMiss, nil
	})
	if err != nil {
		return Result[R]{}, err
	}
	return res, nil
}

// compute invokes fn and stores its result. The bool reports whether this
// caller wrote to the store; with single-flight only the leader does.
func compute[R any](ctx context.Context, m *Memoizer, store cache.Store, key string, eff Options, fn Func[R], args []any) (R, bool, error) {
	var wrote bool
	run := func() (R, error) {
		v, err := fn(ctx, args...)
		if err != nil {
			return v, err
		}
		if err := ctx.Err(); err != nil {
			var zero R
			return zero, err
		}
		if err := store.Set(ctx, key, v, eff.TTL); err != nil {
			var zero R
			return zero, err
		}
		wrote = true
		return v, nil
	}

	if !m.singleFlight {
		v, err := run()
		return v, wrote, err
	}

	ch := m.group.DoChan(key, func() (any, error) {
		return run()
	})
	select {
	case <-ctx.Done():
		var zero R
		return zero, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			var zero R
			return zero, false, r.Err
		}
		v, err := cache.Decode[R](r.Val)
		return v, wrote, err
	}
}
