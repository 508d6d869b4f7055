// Package domainerrors provides coded errors for the service's error taxonomy.
// Services translate store-level sentinel errors into coded errors here; the
// HTTP layer maps codes to status codes in exactly one place.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the kind of failure independent of transport.
type Code string

const (
	// CodeNotFound: a referenced match, item, or notification does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict: the operation lost to a prior or concurrent finalizer,
	// e.g. claiming a match that is already claimed.
	CodeConflict Code = "conflict"
	// CodeInvalidInput: the request payload or parameters failed validation.
	CodeInvalidInput Code = "invalid_input"
	// CodeInvalidTransition: a status change outside the allowed edges.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeUnauthorized: missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeTimeout: the operation's context expired or was cancelled.
	CodeTimeout Code = "timeout"
	// CodeInternal: everything the caller cannot fix.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. It optionally wraps a cause for errors.Is/As
// chains while keeping the user-visible message separate.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
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
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to the status the transport layer should emit.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeInvalidInput, CodeInvalidTransition:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
