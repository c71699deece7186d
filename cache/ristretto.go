package cache

import (
	"context"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

// RistrettoConfig configures a RistrettoStore.
type RistrettoConfig struct {
	// NumCounters is the number of keys tracked for admission frequency.
	// Default: 1e6
	NumCounters int64

	// MaxCost bounds the total cost of stored entries.
	// Default: 1e5 (with the default cost of 1, the max entry count)
	MaxCost int64

	// BufferItems is the number of keys per Get buffer.
	// Default: 64
	BufferItems int64

	// Cost returns the cost of a value. Default: every entry costs 1.
	Cost func(value any) int64

	// Policy configures TTL defaults. Default: PersistentPolicy.
	Policy Policy
}

// RistrettoStore is a bounded in-process Store using ristretto's
// TinyLFU admission and sampled LFU eviction. Values are kept as-is.
type RistrettoStore struct {
	cache  *ristretto.Cache[string, any]
	cost   func(any) int64
	policy Policy
}

// NewRistrettoStore creates a ristretto-backed store.
func NewRistrettoStore(cfg RistrettoConfig) (*RistrettoStore, error) {
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 1e6
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 1e5
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	if cfg.Cost == nil {
		cfg.Cost = func(any) int64 { return 1 }
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		// Cost counts only what the Cost func reports, so MaxCost stays an
		// entry count under the default.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoStore{
		cache:  c,
		cost:   cfg.Cost,
		policy: cfg.Policy,
	}, nil
}

// Get retrieves a value. Returns (nil, false, nil) on miss or expiry.
func (s *RistrettoStore) Get(_ context.Context, key string) (any, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set stores a value and waits until it is visible to readers. The admission
// policy may still drop the entry when the cache is full; that is eviction,
// not an error.
func (s *RistrettoStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.cache.SetWithTTL(key, value, s.cost(value), s.policy.EffectiveTTL(ttl))
	s.cache.Wait()
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (s *RistrettoStore) Delete(_ context.Context, key string) error {
	s.cache.Del(key)
	return nil
}

// Close stops ristretto's background goroutines.
func (s *RistrettoStore) Close() error {
	s.cache.Close()
	return nil
}

var (
	_ Store  = (*RistrettoStore)(nil)
	_ Closer = (*RistrettoStore)(nil)
)
