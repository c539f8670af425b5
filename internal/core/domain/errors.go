// Package domain defines Hoard's domain rules and errors.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "HD-VALD-4130")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Request shape errors (PROT).
var (
	// ErrUnknownCommand indicates an empty request or an unrecognised command name.
	ErrUnknownCommand = NewDomainError("HD-PROT-4000", "unknown command")

	// ErrInvalidArgCount indicates the wrong number of arguments for a command.
	ErrInvalidArgCount = NewDomainError("HD-PROT-4001", "invalid number of arguments")
)

// Validation errors (VALD).
var (
	// ErrKeyTooLong indicates a key longer than the configured maximum.
	ErrKeyTooLong = NewDomainError("HD-VALD-4130", "key too long")

	// ErrValueTooLarge indicates a value whose encoded form exceeds the maximum.
	ErrValueTooLarge = NewDomainError("HD-VALD-4131", "value too large")

	// ErrUnsupportedType indicates a value of a kind the store does not accept.
	ErrUnsupportedType = NewDomainError("HD-VALD-4150", "unsupported data type")
)

// Codec errors (CODC).
var (
	// ErrInvalidDataFormat indicates a value token that is not a valid encoding.
	ErrInvalidDataFormat = NewDomainError("HD-CODC-4000", "invalid data format")
)

// Store errors (STOR).
var (
	// ErrKeyNotFound indicates the key is absent from the store.
	ErrKeyNotFound = NewDomainError("HD-STOR-4040", "key not found")
)
