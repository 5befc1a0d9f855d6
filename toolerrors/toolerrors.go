// Package toolerrors provides the structured-error chain behind the runtime
// MonadicError values of spec §7 (package vm's MonadicError cause chain).
// Chain links preserve message and causal context while still implementing
// the standard error interface, so errors.Is/As compose across the
// Go/monadic boundary. The compile-time SyntaxError records of package lexer
// do not use it.
package toolerrors

import (
	"errors"
	"fmt"
)

// Chained represents a structured failure that links to an underlying cause,
// enabling error chains with errors.Is/As while staying cheap to serialize
// (message + cause, no free-form wrapping).
type Chained struct {
	// Message is the human-readable summary of the failure.
	Message string
	// Cause links to the underlying chained error, if any.
	Cause *Chained
}

// New constructs a Chained error with the given message only.
func New(message string) *Chained {
	if message == "" {
		message = "error"
	}
	return &Chained{Message: message}
}

// NewWithCause constructs a Chained error that wraps an underlying error.
func NewWithCause(message string, cause error) *Chained {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &Chained{Message: message, Cause: FromError(cause)}
}

// FromError converts an arbitrary error into a Chained chain, collapsing an
// existing Chained value rather than double-wrapping it.
func FromError(err error) *Chained {
	if err == nil {
		return nil
	}
	var c *Chained
	if errors.As(err, &c) {
		return c
	}
	return &Chained{Message: err.Error(), Cause: FromError(errors.Unwrap(err))}
}

// Errorf formats according to a format specifier and returns a Chained error.
func Errorf(format string, args ...any) *Chained {
	return New(fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Chained) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the underlying cause to support errors.Is/As.
func (e *Chained) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}
