package cachekey

import (
	"errors"
	"strconv"
)

// Sentinel errors for key derivation.
var (
	// ErrPathNotFound indicates a selector path does not resolve against the arguments.
	ErrPathNotFound = errors.New("cachekey: path does not exist in arguments")

	// ErrNonSerializable indicates a selected value cannot be part of a serialized key.
	ErrNonSerializable = errors.New("cachekey: value is not serializable")

	// ErrInvalidPath indicates a path is syntactically malformed.
	ErrInvalidPath = errors.New("cachekey: path is malformed")

	// ErrInvalidSelector indicates a selector cannot be evaluated.
	ErrInvalidSelector = errors.New("cachekey: selector is invalid")
)

// PathError records the selector path that failed and why.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Err.Error() + ": " + strconv.Quote(e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
