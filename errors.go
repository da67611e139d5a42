package mhash

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("value has no byte decomposition")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrUnknownEngine   = errors.New("unknown hash engine")
)

// HashError reports why a value could not be decomposed. The core Mixer and
// every Hashable path are total; only reflective decomposition can fail.
type HashError struct {
	Op    string
	Type  string
	Cause error
}

func (e *HashError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("mhash %s %s: %v", e.Op, e.Type, e.Cause)
	}
	return fmt.Sprintf("mhash %s: %v", e.Op, e.Cause)
}

func (e *HashError) Unwrap() error {
	return e.Cause
}

func newHashError(op string, v any, cause error) *HashError {
	return &HashError{
		Op:    op,
		Type:  fmt.Sprintf("%T", v),
		Cause: cause,
	}
}

func wrapError(op string, err error) *HashError {
	return &HashError{
		Op:    op,
		Cause: err,
	}
}
