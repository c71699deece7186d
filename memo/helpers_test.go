package memo

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/cachefn/cache"
)

// spyStore records store traffic and can inject failures.
type spyStore struct {
	inner cache.Store

	mu      sync.Mutex
	gets    int
	sets    int
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newSpyStore() *spyStore {
	return &spyStore{inner: cache.NewMemoryStore(cache.DefaultPolicy())}
}

func (s *spyStore) Get(ctx context.Context, key string) (any, bool, error) {
	s.mu.Lock()
	s.gets++
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return s.inner.Get(ctx, key)
}

func (s *spyStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	s.lastTTL = ttl
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, value, ttl)
}

func (s *spyStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *spyStore) counts() (gets, sets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets
}

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// counter returns a Func echoing its first argument and the number of calls.
func counter() (Func[string], *atomic.Int64) {
	var n atomic.Int64
	fn := func(_ context.Context, args ...any) (string, error) {
		n.Add(1)
		u := args[0].(user)
		return "user-" + u.Name, nil
	}
	return fn, &n
}
