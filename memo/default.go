package memo

import (
	"context"
	"time"

	"github.com/jonwraymond/cachefn/cachekey"
)

var defaultMemoizer = New()

// Default returns the package-level Memoizer.
func Default() *Memoizer {
	return defaultMemoizer
}

// InitializeOrGetCache initializes or returns the default Memoizer's handle.
func InitializeOrGetCache(ctx context.Context, cfg *InitConfig) (*Handle, error) {
	return defaultMemoizer.InitializeOrGet(ctx, cfg)
}

// ResetCache drops the default Memoizer's handle without closing its store.
func ResetCache() {
	defaultMemoizer.Reset()
}

// Register registers default options on the default Memoizer.
func Register(name string, opts ...Option) error {
	return defaultMemoizer.Register(name, opts...)
}

// RegisterSelector registers a selector and TTL on the default Memoizer.
func RegisterSelector(name string, sel cachekey.Selector, ttl time.Duration) error {
	return defaultMemoizer.RegisterSelector(name, sel, ttl)
}

// DeriveKey derives a key outside of any memoized call.
func DeriveKey(args []any, sel cachekey.Selector) (string, error) {
	return cachekey.Derive(args, sel)
}
