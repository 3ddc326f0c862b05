package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure every lifecycle operation returns. Status is
// what the HTTP layer responds with, Code is a stable machine-readable tag.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

const (
	CodeValidation             = "validation_error"
	CodeInsufficientInventory  = "insufficient_inventory"
	CodeInvalidStateTransition = "invalid_state_transition"
	CodeNotFound               = "not_found"
	CodeForbidden              = "forbidden"
	CodeUnauthorized           = "unauthorized"
)

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func InsufficientInventory(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInsufficientInventory, fmt.Errorf(format, args...))
}

func InvalidStateTransition(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeInvalidStateTransition, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, CodeForbidden, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

// IsCode reports whether err (or anything it wraps) is an *Error with the
// given code.
func IsCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
