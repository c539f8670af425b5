// Package value provides the tagged value type stored by Hoard.
package value

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLarge is wrapped by EncodingError when the wire form exceeds the limit.
	ErrTooLarge = errors.New("value: encoded form too large")

	// ErrTooDeep is wrapped when lists and maps nest deeper than MaxDepth.
	ErrTooDeep = errors.New("value: nesting too deep")

	// ErrInvalidKind is wrapped when a zero Value is encoded.
	ErrInvalidKind = errors.New("value: invalid kind")

	// ErrInvalidText is wrapped when a text payload or map key is not valid UTF-8.
	ErrInvalidText = errors.New("value: text is not valid UTF-8")
)

// EncodingError is returned by Encode.
type EncodingError struct {
	Size  int // wire size, when known
	Limit int
	Err   error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	if errors.Is(e.Err, ErrTooLarge) {
		return fmt.Sprintf("value: encoded size %d exceeds limit %d", e.Size, e.Limit)
	}
	return "value: encode: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// DecodingError is returned by Decode for input that is not a well-formed encoding.
type DecodingError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("value: decode: %s: %v", e.Reason, e.Err)
	}
	return "value: decode: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

func malformed(reason string) error {
	return &DecodingError{Reason: reason}
}
