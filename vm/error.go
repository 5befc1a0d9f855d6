package vm

import (
	"github.com/tjs-lang/tjs/toolerrors"
)

// MonadicError is the `{$error:true, message, op, cause, stack}` value
// (spec §7) a procedure returns instead of throwing. It wraps
// toolerrors.Chained so callers can still walk the cause chain with
// errors.Is/errors.As while the VM hands callers back a plain value
// rather than an error the Go call stack would have to propagate.
type MonadicError struct {
	Op      string
	Message string
	Stack   string
	Cause   *toolerrors.Chained
}

// Error implements the error interface so a MonadicError can also be
// returned as a Go error from package-level helpers that need one.
func (e *MonadicError) Error() string {
	if e.Cause != nil {
		return e.Op + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Op + ": " + e.Message
}

// Unwrap exposes the cause chain to errors.Is/errors.As.
func (e *MonadicError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// ToValue renders the spec §7 wire shape for this error, suitable for
// returning as a procedure's result or embedding in a JSON response.
func (e *MonadicError) ToValue() map[string]any {
	v := map[string]any{
		"$error":  true,
		"message": e.Message,
		"op":      e.Op,
	}
	if e.Stack != "" {
		v["stack"] = e.Stack
	}
	if e.Cause != nil {
		v["cause"] = e.Cause.Error()
	}
	return v
}

// NewMonadicError builds a MonadicError tagged with op, wrapping cause
// (which may be nil).
func NewMonadicError(op, message string, cause error) *MonadicError {
	var chained *toolerrors.Chained
	if cause != nil {
		chained = toolerrors.FromError(cause)
	}
	return &MonadicError{Op: op, Message: message, Cause: chained}
}

// IsMonadicErrorValue reports whether v is a plain-value monadic error
// (e.g. one returned from a nested procedure call and passed through
// unchanged), per spec §7's `$error === true` discriminant.
func IsMonadicErrorValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	flag, ok := m["$error"]
	if !ok {
		return false
	}
	b, ok := flag.(bool)
	return ok && b
}
