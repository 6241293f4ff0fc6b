// Package domainerrors carries typed error codes from services to the HTTP
// boundary. Services create or wrap errors with a Code; the transport layer
// translates codes to status codes without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for boundary translation.
type Code string

const (
	// CodeInvalidInput marks input rejected at a trust boundary (bad UUID,
	// out-of-enumeration value). Maps to 400.
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation marks a well-formed but semantically invalid request
	// body (missing required fields). Maps to 422.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks a malformed request (bad body, bad filter).
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized marks missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks an authenticated caller lacking rights.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks an absent entity, including entities outside the
	// caller's tenant (the two must be indistinguishable).
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness or state conflict.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a broken domain invariant. Constructors
	// return these; services convert them to CodeValidation at the boundary.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks infrastructure failures surfaced as opaque 5xx.
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a classification code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is compare against a freshly constructed domain error by
// code and message, ignoring the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an existing error, preserving the
// cause for errors.Is/As chains.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that never passed through a service boundary.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
