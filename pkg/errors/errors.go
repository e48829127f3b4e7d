// Package errors defines the coded errors shared by the solver, the CLI and
// the HTTP API.
//
// Every failure that crosses a package boundary carries a [Code]. Callers
// branch on the code, the CLI prints the message and the server maps the
// code to a status with [HTTPStatus]:
//
//	err := errors.New(errors.ErrCodeInvalidAspect, "unknown aspect %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidAspect) { ... }
//
// A search that finds no walk is not an error. It is reported as a
// solution without a path.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

// Caller contract violations.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidAspect     Code = "INVALID_ASPECT"
	ErrCodeInvalidDistance   Code = "INVALID_DISTANCE"
	ErrCodeInvalidRecipeData Code = "INVALID_RECIPE_DATA"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidStrategy   Code = "INVALID_STRATEGY"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
)

// Missing resources.
const (
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
)

// Remote dataset failures.
const (
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"
)

// Everything else.
const (
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// codeStatus holds the HTTP status for every code the API distinguishes.
var codeStatus = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidAspect:     http.StatusBadRequest,
	ErrCodeInvalidDistance:   http.StatusBadRequest,
	ErrCodeInvalidRecipeData: http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidStrategy:   http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeFileNotFound:      http.StatusNotFound,
	ErrCodeSessionNotFound:   http.StatusNotFound,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeNetwork:           http.StatusBadGateway,
	ErrCodeUnsupported:       http.StatusNotImplemented,
}

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func asError(err error) (*Error, bool) {
	var e *Error
	return e, errors.As(err, &e)
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err's outermost *Error has the given code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// UserMessage returns the message without the code prefix, or err.Error()
// for uncoded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalidInput reports whether err rejects a solver request: an invalid
// input, aspect, distance, format or strategy. Bad recipe data and config
// are reported separately.
func IsInvalidInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidAspect, ErrCodeInvalidDistance,
		ErrCodeInvalidFormat, ErrCodeInvalidStrategy:
		return true
	}
	return false
}

// HTTPStatus maps err to the status the API answers with. Uncoded errors
// and codes without a mapping yield 500.
func HTTPStatus(err error) int {
	if s, ok := codeStatus[GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
