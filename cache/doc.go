// Package cache defines the Store capability consumed by memoized functions
// and provides concrete stores.
//
// Stores:
//   - [MemoryStore]: in-process map with lazy expiry, values kept as-is.
//   - [RistrettoStore]: bounded admission cache backed by ristretto.
//   - [RedisStore]: shared store backed by go-redis; values are msgpack
//     encoded and come back as [Encoded].
//   - [CompositeStore]: tiers several stores (e.g. memory L1 over Redis L2).
//
// A TTL <= 0 passed to Set means "use the store's default policy". Use
// [Decode] to turn a stored value back into a typed value regardless of the
// store that produced it.
package cache
