package cachekey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Keyer generates deterministic cache keys from call arguments.
//
// Contract:
// - Determinism: same inputs must produce the same key, in any process.
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: implementations must not mutate args.
type Keyer interface {
	// Key derives a key for args under sel, partitioned by namespace.
	Key(args []any, sel Selector, namespace string) (string, error)
}

// DefaultKeyer produces the JSON keys described in the package docs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key implements Keyer.
func (k *DefaultKeyer) Key(args []any, sel Selector, namespace string) (string, error) {
	return DeriveNamespaced(args, sel, namespace)
}

// Derive builds the cache key for args under sel.
func Derive(args []any, sel Selector) (string, error) {
	return DeriveNamespaced(args, sel, "")
}

// DeriveNamespaced builds the cache key for args under sel. A non-empty
// namespace is appended as a trailing "namespace" entry so identical
// arguments in different namespaces never share a key.
func DeriveNamespaced(args []any, sel Selector, namespace string) (string, error) {
	var entries []entry

	switch sel.kind {
	case kindAll:
		if len(args) == 0 && namespace == "" {
			return "{}", nil
		}
		raw, err := encodeValue(args)
		if err != nil {
			return "", &PathError{Path: "arguments", Err: fmt.Errorf("%w: %v", ErrNonSerializable, err)}
		}
		if namespace == "" {
			return string(raw), nil
		}
		entries = append(entries, entry{key: "arguments", raw: raw})

	case kindComputed:
		raw, err := computedValues(args, sel.compute)
		if err != nil {
			return "", err
		}
		if namespace == "" {
			return string(raw), nil
		}
		entries = append(entries, entry{key: "computed", raw: raw})

	case kindPaths:
		var err error
		entries, err = pathEntries(args, sel.paths)
		if err != nil {
			return "", err
		}
	}

	if namespace != "" {
		raw, err := encodeValue(namespace)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry{key: "namespace", raw: raw})
	}

	return string(writeObject(entries)), nil
}

type entry struct {
	key string
	raw []byte
}

func pathEntries(args []any, paths []string) ([]entry, error) {
	entries := make([]entry, 0, len(paths))
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		value, ok, err := Resolve(args, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &PathError{Path: path, Err: ErrPathNotFound}
		}
		if !serializable(value) {
			return nil, &PathError{Path: path, Err: ErrNonSerializable}
		}

		raw, err := encodeValue(value)
		if err != nil {
			return nil, &PathError{Path: path, Err: fmt.Errorf("%w: %v", ErrNonSerializable, err)}
		}
		entries = append(entries, entry{key: path, raw: raw})
	}

	return entries, nil
}

func computedValues(args []any, fn ComputeFunc) ([]byte, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: computed selector has no function", ErrInvalidSelector)
	}

	values, err := fn(args)
	if err != nil {
		return nil, fmt.Errorf("cachekey: computed selector: %w", err)
	}

	buf := []byte("[")
	for i, v := range values {
		path := "computed[" + strconv.Itoa(i) + "]"
		if !serializable(v) {
			return nil, &PathError{Path: path, Err: ErrNonSerializable}
		}
		raw, err := encodeValue(v)
		if err != nil {
			return nil, &PathError{Path: path, Err: fmt.Errorf("%w: %v", ErrNonSerializable, err)}
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, raw...)
	}
	buf = append(buf, ']')
	return buf, nil
}

// writeObject emits a JSON object with keys in the given order.
func writeObject(entries []entry) []byte {
	result := []byte("{")
	for i, e := range entries {
		if i > 0 {
			result = append(result, ',')
		}
		keyBytes, _ := encodeValue(e.key)
		result = append(result, keyBytes...)
		result = append(result, ':')
		result = append(result, e.raw...)
	}
	result = append(result, '}')
	return result
}

// encodeValue produces canonical JSON with sorted map keys: compact and
// without HTML escaping.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		var unsupported *json.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			return nil, fmt.Errorf("unsupported type %s", unsupported.Type)
		}
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
