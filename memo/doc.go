// Package memo memoizes functions over a pluggable cache.Store.
//
// A Memoizer owns the cache handle, a registry of per-function default
// options, the key deriver, and the telemetry instruments. Functions are
// wrapped with [Wrap] (returns the raw value) or [WrapResult] (returns a
// [Result] envelope with hit/miss status and the derived key):
//
//	m := memo.New(memo.WithStore(cache.NewMemoryStore(cache.DefaultPolicy())))
//	fetch := memo.Wrap(m, fetchUser, memo.WithPaths("0.id"), memo.WithTTL(time.Minute))
//	user, err := fetch(ctx, req)
//
// Each call resolves its options from three layers, lowest first: defaults
// registered under [WithName], options given at wrap time, and options
// attached to the context with [WithCallOptions]. Then it derives a key from
// the selected arguments, reads the store unless Force is set, invokes the
// function on a miss and writes the result with the effective TTL. Errors
// from the function or the store are returned unchanged and a failed or
// cancelled computation never writes.
//
// Concurrent misses on one key may each invoke the function unless the
// Memoizer is built with [WithSingleFlight].
//
// Package-level functions such as [InitializeOrGetCache], [ResetCache] and
// [Register] operate on [Default].
package memo
