// Package errors provides coded errors for xctinstall.
//
// Codes are stable identifiers that tests and the CLI can match on without
// depending on message text. The CLI logs the code and details of a failed
// command. Error() carries only the message and cause, since it is what the
// user sees after "Error: ".
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Loading and validating .xctinstall.toml / XCTINSTALL_* settings
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Installing a template: each is fatal for the run
	ErrTemplateRemove ErrorCode = "TEMPLATE_REMOVE"
	ErrTemplateCopy   ErrorCode = "TEMPLATE_COPY"

	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrHomeDir    ErrorCode = "HOME_DIR"
)

// Error is a coded error with optional structured details and cause
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return e.Message
	}
	return e.Message + ": " + e.Wrapped.Error()
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code, so errors.Is(err,
// errors.New(ErrTemplateCopy, "")) works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates an Error
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: map[string]any{}}
}

// Newf creates an Error with a formatted message
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail records a key/value for logging and tests, returning e
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsErrorCode reports whether err, or anything it wraps, is an *Error with code
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// CodeOf returns the code of the outermost *Error in err's chain, or ErrUnknown
func CodeOf(err error) ErrorCode {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// DetailsOf returns the details of the outermost *Error in err's chain
func DetailsOf(err error) map[string]any {
	if e, ok := as(err); ok {
		return e.Details
	}
	return nil
}
