package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueryTimeout is the per-operation timeout for the Redis store.
const DefaultQueryTimeout = 5 * time.Second

type redisConfig struct {
	prefix       string
	queryTimeout time.Duration
	policy       Policy
}

// RedisOption configures a RedisStore.
type RedisOption func(*redisConfig)

// WithPrefix namespaces every key as "<prefix>:<key>".
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) { c.prefix = prefix }
}

// WithQueryTimeout bounds each Redis round trip. Defaults to DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) RedisOption {
	return func(c *redisConfig) { c.queryTimeout = d }
}

// WithRedisPolicy sets the TTL policy. Defaults to PersistentPolicy, leaving
// expiry to Redis configuration when no TTL is requested.
func WithRedisPolicy(p Policy) RedisOption {
	return func(c *redisConfig) { c.policy = p }
}

// RedisStore is a Store backed by Redis. Values are msgpack encoded and
// returned from Get as Encoded.
//
// The caller owns the client lifecycle; Close does not close it.
type RedisStore struct {
	client redis.UniversalClient
	cfg    redisConfig
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	cfg := redisConfig{
		queryTimeout: DefaultQueryTimeout,
		policy:       PersistentPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &RedisStore{client: client, cfg: cfg}
}

func (s *RedisStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.queryTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.cfg.queryTimeout)
}

func (s *RedisStore) prefixKey(key string) string {
	if s.cfg.prefix == "" {
		return key
	}
	return s.cfg.prefix + ":" + key
}

// Get retrieves an encoded value. Returns (nil, false, nil) when the key is absent.
func (s *RedisStore) Get(ctx context.Context, key string) (any, bool, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()

	data, err := s.client.Get(qctx, s.prefixKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return Encoded(data), true, nil
}

// Set encodes and stores a value. Values that are already Encoded are stored verbatim.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, ok := value.(Encoded)
	if !ok {
		var err error
		data, err = Encode(value)
		if err != nil {
			return err
		}
	}

	qctx, cancel := s.queryCtx(ctx)
	defer cancel()

	// zero expiration keeps the key until it is deleted
	return s.client.Set(qctx, s.prefixKey(key), []byte(data), s.cfg.policy.EffectiveTTL(ttl)).Err()
}

// Delete removes a value. Idempotent - no error on miss.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Del(qctx, s.prefixKey(key)).Err()
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Ping(qctx).Err()
}

// Close is a no-op; the caller owns the client.
func (s *RedisStore) Close() error {
	return nil
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Closer = (*RedisStore)(nil)
)
