package memo

import (
	"context"
	"time"

	"github.com/jonwraymond/cachefn/cachekey"
)

type field uint16

const (
	fieldSelector field = 1 << iota
	fieldTTL
	fieldForce
	fieldNoCache
	fieldNamespace
	fieldRawValue
	fieldInit
	fieldName
)

// Options is the effective configuration of one memoized call.
type Options struct {
	// Selector picks the arguments that form the key. Zero means all arguments.
	Selector cachekey.Selector

	// TTL for stored results. Zero defers to the store's default policy.
	TTL time.Duration

	// Force skips the store read, recomputes and overwrites value and TTL.
	Force bool

	// NoCache calls the function directly without touching the store.
	NoCache bool

	// Namespace partitions keys.
	Namespace string

	// ReturnRawValue makes Memoizer.Call return the value instead of a Result.
	ReturnRawValue bool

	// Init is used to create the cache handle on first use.
	Init *InitConfig

	// Name selects registered defaults and labels telemetry.
	Name string

	set field
}

// Option sets one field of Options and marks it as explicitly given.
type Option func(*Options)

// WithSelector sets the key selector.
func WithSelector(sel cachekey.Selector) Option {
	return func(o *Options) {
		o.Selector = sel
		o.set |= fieldSelector
	}
}

// WithPaths sets a path selector. With no paths the whole argument list is used.
func WithPaths(paths ...string) Option {
	return WithSelector(cachekey.Paths(paths...))
}

// WithTTL sets the time-to-live of stored results.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
		o.set |= fieldTTL
	}
}

// WithForce toggles forced recomputation.
func WithForce(force bool) Option {
	return func(o *Options) {
		o.Force = force
		o.set |= fieldForce
	}
}

// WithNoCache toggles bypass mode.
func WithNoCache(noCache bool) Option {
	return func(o *Options) {
		o.NoCache = noCache
		o.set |= fieldNoCache
	}
}

// WithNamespace sets the key namespace.
func WithNamespace(ns string) Option {
	return func(o *Options) {
		o.Namespace = ns
		o.set |= fieldNamespace
	}
}

// WithRawValue toggles returning the raw value from Memoizer.Call.
func WithRawValue(raw bool) Option {
	return func(o *Options) {
		o.ReturnRawValue = raw
		o.set |= fieldRawValue
	}
}

// WithInit supplies the store used to initialize the cache handle.
func WithInit(cfg *InitConfig) Option {
	return func(o *Options) {
		o.Init = cfg
		o.set |= fieldInit
	}
}

// WithName selects defaults registered with Memoizer.Register.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
		o.set |= fieldName
	}
}

// NewOptions applies opts to an empty Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Empty reports whether no option was given.
func (o Options) Empty() bool {
	return o.set == 0
}

func (o Options) has(f field) bool {
	return o.set&f != 0
}

// merge overlays layers left to right; only fields set in a layer override.
func merge(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		if l.has(fieldSelector) {
			out.Selector = l.Selector
		}
		if l.has(fieldTTL) {
			out.TTL = l.TTL
		}
		if l.has(fieldForce) {
			out.Force = l.Force
		}
		if l.has(fieldNoCache) {
			out.NoCache = l.NoCache
		}
		if l.has(fieldNamespace) {
			out.Namespace = l.Namespace
		}
		if l.has(fieldRawValue) {
			out.ReturnRawValue = l.ReturnRawValue
		}
		if l.has(fieldInit) {
			out.Init = l.Init
		}
		if l.has(fieldName) {
			out.Name = l.Name
		}
		out.set |= l.set
	}
	return out
}

type callOptionsKey struct{}

// WithCallOptions returns a context carrying call-time options. They take
// precedence over wrap-time options and registered defaults. Repeated calls
// accumulate, later options winning.
func WithCallOptions(ctx context.Context, opts ...Option) context.Context {
	prev := CallOptions(ctx)
	all := make([]Option, 0, len(prev)+len(opts))
	all = append(all, prev...)
	all = append(all, opts...)
	return context.WithValue(ctx, callOptionsKey{}, all)
}

// CallOptions returns the call-time options carried by ctx.
func CallOptions(ctx context.Context) []Option {
	opts, _ := ctx.Value(callOptionsKey{}).([]Option)
	return opts
}
