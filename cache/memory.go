package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Values are kept as-is, so mutating a
// stored pointer is visible to later readers.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	policy  Policy
	now     func() time.Time
}

type memoryEntry struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates a new in-memory store with the given policy.
func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		policy:  policy,
		now:     time.Now,
	}
}

// Get retrieves a value. Returns (nil, false, nil) on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) (any, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if entry.expired(s.now()) {
		// Expired - clean up lazily, unless a writer already replaced it
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a value. ttl <= 0 applies the policy's DefaultTTL.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	entry := &memoryEntry{value: value}
	if eff := s.policy.EffectiveTTL(ttl); eff > 0 {
		entry.expiresAt = s.now().Add(eff)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of entries, including expired ones not yet collected.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
