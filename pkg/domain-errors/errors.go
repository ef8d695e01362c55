// Package domainerrors defines the coded error type shared by all services.
//
// Stores and infrastructure return sentinel errors (pkg/platform/sentinel);
// services translate those into coded domain errors; the HTTP layer maps codes
// onto status lines. Codes are stable, machine-readable strings and double as
// the "error" field of JSON error responses.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain error.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeConflict           Code = "conflict"
	CodeInvalidState       Code = "invalid_state"
	CodeNotFound           Code = "not_found"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeRateLimited        Code = "rate_limited"
	CodeClockUnavailable   Code = "clock_unavailable"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a value type so two errors with the same code and message satisfy
// errors.Is regardless of how they were constructed. The wrapped cause is kept
// for logs and errors.Unwrap but excluded from equality.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New returns a domain error with the given code and message.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Wrap returns a domain error that records cause for the error chain.
func Wrap(cause error, code Code, message string) Error {
	return Error{Code: code, Message: message, cause: cause}
}

func (e Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e Error) Unwrap() error {
	return e.cause
}

// Is matches on code and message, ignoring the cause. This is what makes
// errors.Is(err, domainerrors.New(code, msg)) work for wrapped errors.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HasCode reports whether any error in the chain is a domain error with the
// given code. Services use it to branch on error class without caring about
// the exact message.
func HasCode(err error, code Code) bool {
	var de Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// CodeOf extracts the code of the first domain error in the chain, or
// CodeInternal when the chain carries no domain error at all.
func CodeOf(err error) Code {
	var de Error
	if !errors.As(err, &de) {
		return CodeInternal
	}
	return de.Code
}
