// Package cachekey derives deterministic cache keys from function arguments.
//
// A Selector names the parts of a call's positional arguments that take part
// in the key. Paths use dotted/bracket notation ("0.user.id", "1[2].name",
// "0['a.b']") and walk maps, slices, arrays, structs (by field name or json
// tag), pointers and interfaces.
//
// The key is a compact JSON object mapping each path string to its resolved
// value, in selector order:
//
//	key, _ := cachekey.Derive([]any{user, opts}, cachekey.Paths("0.id", "1.value"))
//	// {"0.id":1,"1.value":"data"}
//
// An empty selector serializes the whole argument list. Keys depend only on
// their inputs, so they are stable across calls and processes.
package cachekey
