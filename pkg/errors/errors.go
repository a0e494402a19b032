// Package errors defines the coded errors shared by the geometry core, the
// CLI and the HTTP API.
//
// Every failure a caller can act on carries a [Code]. Codes fall into a few
// [Kind]s: invalid input, missing resources, advisory geometry conditions and
// internal faults. The API maps kinds to status codes and the CLI maps them to
// exit statuses, so a new code only needs a kind to be handled everywhere.
//
//	err := errors.New(errors.ErrCodeInvalidSpecification, "column weight %d is not positive", i)
//	if errors.Is(err, errors.ErrCodeInvalidSpecification) { ... }
//
//	return errors.Wrap(errors.ErrCodeInvalidProject, err, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidSpecification Code = "INVALID_SPECIFICATION"
	ErrCodeInvalidState         Code = "INVALID_STATE"
	ErrCodeInvalidProject       Code = "INVALID_PROJECT"
	ErrCodeInvalidItem          Code = "INVALID_ITEM"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidPath          Code = "INVALID_PATH"

	// ErrCodeDegenerateGeometry accompanies a usable result computed from a
	// container too small to hold the padding.
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeItemNotFound    Code = "ITEM_NOT_FOUND"
	ErrCodeProjectNotFound Code = "PROJECT_NOT_FOUND"
	ErrCodePresetNotFound  Code = "PRESET_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind groups codes by how a caller should react.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindAdvisory
	KindUnsupported
)

// Kind classifies c from its name. Unknown codes are internal.
func (c Code) Kind() Kind {
	s := string(c)
	switch {
	case c == ErrCodeUnsupported:
		return KindUnsupported
	case strings.HasPrefix(s, "INVALID_"):
		return KindInvalid
	case s == "NOT_FOUND" || strings.HasSuffix(s, "_NOT_FOUND"):
		return KindNotFound
	case strings.HasPrefix(s, "DEGENERATE_"):
		return KindAdvisory
	}
	return KindInternal
}

// Error pairs a Code with a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// Message returns the message of a coded error without its code prefix or
// cause, and err.Error() for anything else.
func Message(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsAdvisory reports whether err only describes a condition worth a warning;
// the result returned alongside it is still usable.
func IsAdvisory(err error) bool {
	e, ok := as(err)
	return ok && e.Code.Kind() == KindAdvisory
}

// ExitCode maps err to a process exit status: 0 for nil and advisory errors,
// 2 for invalid input, 3 for missing resources and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	e, ok := as(err)
	if !ok {
		return 1
	}
	switch e.Code.Kind() {
	case KindAdvisory:
		return 0
	case KindInvalid:
		return 2
	case KindNotFound:
		return 3
	}
	return 1
}
