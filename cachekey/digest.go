package cachekey

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DigestPrefix marks keys that were replaced by their digest.
const DigestPrefix = "xxh64:"

// Digest returns a fixed-length form of key: "xxh64:" followed by 16 hex chars.
func Digest(key string) string {
	return fmt.Sprintf("%s%016x", DigestPrefix, xxhash.Sum64String(key))
}

// DigestKeyer wraps another Keyer and digests keys longer than a threshold,
// for stores that limit key length.
type DigestKeyer struct {
	inner     Keyer
	threshold int
}

// NewDigestKeyer creates a DigestKeyer. A nil inner keyer means
// DefaultKeyer; a threshold <= 0 disables digesting.
func NewDigestKeyer(inner Keyer, threshold int) *DigestKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &DigestKeyer{inner: inner, threshold: threshold}
}

// Key implements Keyer.
func (k *DigestKeyer) Key(args []any, sel Selector, namespace string) (string, error) {
	key, err := k.inner.Key(args, sel, namespace)
	if err != nil {
		return "", err
	}
	if k.threshold > 0 && len(key) > k.threshold {
		return Digest(key), nil
	}
	return key, nil
}

var _ Keyer = (*DigestKeyer)(nil)
