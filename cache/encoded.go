package cache

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrTypeMismatch indicates a stored value cannot be converted to the requested type.
var ErrTypeMismatch = errors.New("cache: stored value has unexpected type")

// Encoded is a msgpack-serialized value returned by stores that cannot keep
// Go values as-is (for example Redis).
type Encoded []byte

// Encode serializes v for storage. Struct fields use their json tag names,
// matching the names used by argument paths.
func Encode(v any) (Encoded, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("cache: failed to encode value: %w", err)
	}
	return Encoded(buf.Bytes()), nil
}

// DecodeInto deserializes e into dst, which must be a non-nil pointer.
func (e Encoded) DecodeInto(dst any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(e))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("cache: failed to decode value: %w", err)
	}
	return nil
}

// Decode converts a value returned by Store.Get into T. Values kept as-is
// are type-asserted; Encoded values are deserialized.
func Decode[T any](v any) (T, error) {
	var zero T

	if enc, ok := v.(Encoded); ok {
		if _, wantEncoded := any(zero).(Encoded); wantEncoded {
			return any(enc).(T), nil
		}
		var out T
		if err := enc.DecodeInto(&out); err != nil {
			return zero, err
		}
		return out, nil
	}

	if v == nil {
		return zero, nil
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	return zero, fmt.Errorf("%w: cannot convert %T to %T", ErrTypeMismatch, v, zero)
}
