package memo

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates no usable cache options were supplied.
	ErrConfiguration = errors.New("memo: no cache options provided")

	// ErrUninitialized indicates the cache handle is needed but no store was ever supplied.
	ErrUninitialized = errors.New("memo: cache is not initialized")
)

var (
	// ErrStoreRequired indicates an InitConfig without a store.
	ErrStoreRequired = fmt.Errorf("%w: store is required", ErrUninitialized)

	// ErrUnknownName indicates WithName referenced a name that was never registered.
	ErrUnknownName = fmt.Errorf("%w: unknown function name", ErrConfiguration)

	// ErrInvalidName indicates an empty registration name.
	ErrInvalidName = fmt.Errorf("%w: name is empty", ErrConfiguration)
)
