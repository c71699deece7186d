package cache

import "time"

// Policy configures a store's TTL behavior.
type Policy struct {
	// DefaultTTL applies when Set is called with ttl <= 0.
	// If zero, such entries never expire.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Requested TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default store policy.
// DefaultTTL: 5 minutes, MaxTTL: 1 hour
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
	}
}

// PersistentPolicy returns a policy whose default entries never expire.
func PersistentPolicy() Policy {
	return Policy{}
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
// A zero result means the entry does not expire.
func (p Policy) EffectiveTTL(requested time.Duration) time.Duration {
	ttl := requested
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if p.MaxTTL > 0 && (ttl <= 0 || ttl > p.MaxTTL) {
		ttl = p.MaxTTL
	}

	return ttl
}
