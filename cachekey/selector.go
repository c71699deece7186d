package cachekey

import (
	"encoding/json"
	"strings"
)

// ComputeFunc derives key material directly from the call arguments.
type ComputeFunc func(args []any) ([]any, error)

type selectorKind int

const (
	kindAll selectorKind = iota
	kindPaths
	kindComputed
)

// Selector declares which parts of a call's arguments form the cache key.
// The zero value selects the entire argument list.
type Selector struct {
	kind    selectorKind
	paths   []string
	compute ComputeFunc
}

// All selects the whole argument list.
func All() Selector {
	return Selector{}
}

// Path selects a single argument path.
func Path(path string) Selector {
	return Selector{kind: kindPaths, paths: []string{path}}
}

// Paths selects an ordered list of argument paths. With no paths it is
// equivalent to All.
func Paths(paths ...string) Selector {
	if len(paths) == 0 {
		return All()
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	return Selector{kind: kindPaths, paths: cp}
}

// Computed selects key material with a function over the arguments.
func Computed(fn ComputeFunc) Selector {
	return Selector{kind: kindComputed, compute: fn}
}

// IsAll reports whether the selector uses the entire argument list.
func (s Selector) IsAll() bool {
	return s.kind == kindAll
}

// IsComputed reports whether the selector is function based.
func (s Selector) IsComputed() bool {
	return s.kind == kindComputed
}

// PathList returns a copy of the selector's paths in declaration order.
func (s Selector) PathList() []string {
	if s.kind != kindPaths {
		return nil
	}
	cp := make([]string, len(s.paths))
	copy(cp, s.paths)
	return cp
}

// String renders the selector for logs.
func (s Selector) String() string {
	switch s.kind {
	case kindPaths:
		quoted := make([]string, len(s.paths))
		for i, p := range s.paths {
			b, _ := json.Marshal(p)
			quoted[i] = string(b)
		}
		return "[" + strings.Join(quoted, ",") + "]"
	case kindComputed:
		return "computed"
	default:
		return "*"
	}
}
