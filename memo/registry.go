package memo

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonwraymond/cachefn/cachekey"
)

// registry maps function names to their default options.
type registry struct {
	mu      sync.RWMutex
	entries map[string]Options
}

func (r *registry) register(name string, opts Options) error {
	if name == "" {
		return ErrInvalidName
	}
	if opts.Empty() {
		return fmt.Errorf("%w: %q registered without options", ErrConfiguration, name)
	}
	opts.Name = name
	opts.set |= fieldName

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Options)
	}
	r.entries[name] = opts
	return nil
}

func (r *registry) lookup(name string) (Options, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opts, ok := r.entries[name]
	return opts, ok
}

func (r *registry) remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Register associates default options with name. Wrapping or calling with
// WithName(name) applies them beneath wrap-time and call-time options.
// Registering a name again replaces its defaults.
func (m *Memoizer) Register(name string, opts ...Option) error {
	return m.registry.register(name, NewOptions(opts...))
}

// RegisterSelector registers a selector and TTL under name.
func (m *Memoizer) RegisterSelector(name string, sel cachekey.Selector, ttl time.Duration) error {
	return m.Register(name, WithSelector(sel), WithTTL(ttl))
}

// Registered returns the defaults registered under name.
func (m *Memoizer) Registered(name string) (Options, bool) {
	return m.registry.lookup(name)
}

// Unregister removes the defaults registered under name.
func (m *Memoizer) Unregister(name string) {
	m.registry.remove(name)
}
