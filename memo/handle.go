package memo

import (
	"context"
	"maps"
	"sync"

	"github.com/jonwraymond/cachefn/cache"
)

// InitConfig supplies the store used to create a Handle. StoreConfig is
// opaque passthrough configuration kept alongside the store.
type InitConfig struct {
	Store       cache.Store
	StoreConfig map[string]any
}

// Validate checks that a store is present.
func (c *InitConfig) Validate() error {
	if c == nil || c.Store == nil {
		return ErrStoreRequired
	}
	return nil
}

// Handle is the initialized cache a Memoizer reads and writes.
type Handle struct {
	store  cache.Store
	config map[string]any
}

// Store returns the underlying store.
func (h *Handle) Store() cache.Store {
	return h.store
}

// StoreConfig returns a copy of the passthrough configuration.
func (h *Handle) StoreConfig() map[string]any {
	return maps.Clone(h.config)
}

// Close releases the store if it implements cache.Closer. Reset never
// closes the store, so callers shutting down should call Close themselves.
func (h *Handle) Close() error {
	if c, ok := h.store.(cache.Closer); ok {
		return c.Close()
	}
	return nil
}

// handleSlot guards lazy handle creation. The first successful
// initialization wins and later configs are ignored until reset.
type handleSlot struct {
	mu     sync.Mutex
	handle *Handle
}

func (s *handleSlot) get(ctx context.Context, cfg *InitConfig) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		return s.handle, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrUninitialized
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.handle = &Handle{store: cfg.Store, config: maps.Clone(cfg.StoreConfig)}
	return s.handle, nil
}

func (s *handleSlot) current() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

func (s *handleSlot) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle = nil
}

// InitializeOrGet returns the Memoizer's handle, creating it from cfg if
// none exists. Once created the handle is reused whatever cfg is passed.
// It fails with ErrUninitialized when no handle exists and cfg is nil, and
// with ErrStoreRequired when cfg has no store.
func (m *Memoizer) InitializeOrGet(ctx context.Context, cfg *InitConfig) (*Handle, error) {
	return m.handle.get(ctx, cfg)
}

// Handle returns the current handle, or nil if uninitialized.
func (m *Memoizer) Handle() *Handle {
	return m.handle.current()
}

// Reset drops the handle without closing its store. The next call needs a
// fresh InitConfig.
func (m *Memoizer) Reset() {
	m.handle.reset()
}
