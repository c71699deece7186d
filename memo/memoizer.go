package memo

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/cachefn/cache"
	"github.com/jonwraymond/cachefn/cachekey"
	"github.com/jonwraymond/cachefn/observe"
)

// Memoizer owns the state shared by the functions it wraps: the cache
// handle, registered defaults, the key deriver and telemetry.
// It is safe for concurrent use.
type Memoizer struct {
	keyer        cachekey.Keyer
	instruments  observe.Instruments
	singleFlight bool
	group        singleflight.Group

	handle   handleSlot
	registry registry
}

// MemoizerOption configures a Memoizer.
type MemoizerOption func(*Memoizer)

// WithKeyer replaces the key deriver. The default digests keys longer than
// cache.MaxKeyLength.
func WithKeyer(k cachekey.Keyer) MemoizerOption {
	return func(m *Memoizer) {
		if k != nil {
			m.keyer = k
		}
	}
}

// WithSingleFlight coalesces concurrent misses on the same key into one
// invocation. Callers that join an in-flight computation share its result
// and error, including a cancellation of the first caller's context. A
// caller whose own context ends while waiting returns ctx.Err() at once.
func WithSingleFlight() MemoizerOption {
	return func(m *Memoizer) {
		m.singleFlight = true
	}
}

// WithInstruments sets the tracer, metrics and logger used around calls.
func WithInstruments(in observe.Instruments) MemoizerOption {
	return func(m *Memoizer) {
		m.instruments = in
	}
}

// WithLogger sets only the logger.
func WithLogger(l observe.Logger) MemoizerOption {
	return func(m *Memoizer) {
		m.instruments.Logger = l
	}
}

// WithStore initializes the handle with store up front.
func WithStore(store cache.Store) MemoizerOption {
	return func(m *Memoizer) {
		if store != nil {
			m.handle.handle = &Handle{store: store}
		}
	}
}

// New creates a Memoizer.
func New(opts ...MemoizerOption) *Memoizer {
	m := &Memoizer{
		keyer:       cachekey.NewDigestKeyer(cachekey.NewDefaultKeyer(), cache.MaxKeyLength),
		instruments: observe.NoopInstruments(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.instruments = m.instruments.WithDefaults()
	return m
}

// Key derives the key a call with args would use under opts, resolved the
// same way a wrapped call resolves them.
func (m *Memoizer) Key(ctx context.Context, args []any, opts ...Option) (string, error) {
	eff, err := m.resolve(ctx, NewOptions(opts...))
	if err != nil {
		return "", err
	}
	return m.deriveKey(args, eff)
}

// resolve layers registered defaults, wrap-time options and call-time
// options from ctx.
func (m *Memoizer) resolve(ctx context.Context, wrapOpts Options) (Options, error) {
	eff := merge(wrapOpts, NewOptions(CallOptions(ctx)...))
	if eff.Empty() {
		return Options{}, ErrConfiguration
	}
	if eff.has(fieldName) {
		base, ok := m.registry.lookup(eff.Name)
		if !ok {
			return Options{}, fmt.Errorf("%w: %q", ErrUnknownName, eff.Name)
		}
		eff = merge(base, eff)
	}
	return eff, nil
}

func (m *Memoizer) deriveKey(args []any, eff Options) (string, error) {
	key, err := m.keyer.Key(args, eff.Selector, eff.Namespace)
	if err != nil {
		return "", err
	}
	if err := cache.ValidateKey(key); err != nil {
		return "", fmt.Errorf("memo: derived key rejected: %w", err)
	}
	return key, nil
}
