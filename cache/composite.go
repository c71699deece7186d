package cache

import (
	"context"
	"errors"
	"time"
)

// CompositeStore chains stores in tiers. Get returns the first hit checked
// left to right; Set and Delete apply to every tier.
type CompositeStore struct {
	stores []Store
}

// NewCompositeStore chains the given stores. Nil stores are rejected.
func NewCompositeStore(stores ...Store) (*CompositeStore, error) {
	if len(stores) == 0 {
		return nil, ErrNilStore
	}
	for _, s := range stores {
		if s == nil {
			return nil, ErrNilStore
		}
	}
	cp := make([]Store, len(stores))
	copy(cp, stores)
	return &CompositeStore{stores: cp}, nil
}

// Get returns the first hit. A tier error stops the lookup and is returned.
func (c *CompositeStore) Get(ctx context.Context, key string) (any, bool, error) {
	for _, s := range c.stores {
		v, found, err := s.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if found {
			return v, true, nil
		}
	}
	return nil, false, nil
}

// Set writes to every tier and returns the first error.
func (c *CompositeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	var firstErr error
	for _, s := range c.stores {
		if err := s.Set(ctx, key, value, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Delete removes the key from every tier and returns the first error.
func (c *CompositeStore) Delete(ctx context.Context, key string) error {
	var firstErr error
	for _, s := range c.stores {
		if err := s.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every tier that implements Closer.
func (c *CompositeStore) Close() error {
	var errs []error
	for _, s := range c.stores {
		if closer, ok := s.(Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

var (
	_ Store  = (*CompositeStore)(nil)
	_ Closer = (*CompositeStore)(nil)
)
