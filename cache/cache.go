package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Store is the key-value capability a memoized function reads and writes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: Get returns (nil, false, nil) on miss; errors are reserved for
// backend failures and must not be swallowed.
type Store interface {
	// Get retrieves a stored value. Returns (nil, false, nil) on miss.
	Get(ctx context.Context, key string) (any, bool, error)

	// Set stores a value. A ttl <= 0 applies the store's default policy.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes a stored value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error
}

// Closer is implemented by stores holding resources that need releasing.
type Closer interface {
	Close() error
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
