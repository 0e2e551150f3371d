// Package apperr defines the error categories used across the application
// and maps each category to a distinct process exit code.
package apperr

import (
	"errors"
	"fmt"
)

// Category sentinels. Callers classify errors with errors.Is against these.
var (
	ErrAuthentication  = errors.New("authentication failed")
	ErrNotFound        = errors.New("resource not found")
	ErrRateLimit       = errors.New("rate limit exceeded")
	ErrMalformedRecord = errors.New("malformed record")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrIO              = errors.New("i/o failure")
	ErrFileNotFound    = errors.New("file not found")
)

// Exit codes, one per category. 0 is success, 1 is any uncategorized error.
const (
	codeGeneric         = 1
	codeAuthentication  = 2
	codeNotFound        = 3
	codeRateLimit       = 4
	codeMalformedRecord = 5
	codeSchemaMismatch  = 6
	codeIO              = 7
	codeFileNotFound    = 8
)

var exitCodes = map[error]int{
	ErrAuthentication:  codeAuthentication,
	ErrNotFound:        codeNotFound,
	ErrRateLimit:       codeRateLimit,
	ErrMalformedRecord: codeMalformedRecord,
	ErrSchemaMismatch:  codeSchemaMismatch,
	ErrIO:              codeIO,
	ErrFileNotFound:    codeFileNotFound,
}

// Error is a categorized error. It matches its category sentinel through
// errors.Is and exposes the underlying cause through errors.Unwrap.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// Is reports whether target is this error's category sentinel.
func (e *Error) Is(target error) bool { return target == e.kind }

// Unwrap lets errors.Is/As traverse the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

// ExitCode returns the process exit code for this error's category.
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.kind]; ok {
		return code
	}
	return codeGeneric
}

// New creates a categorized error with a formatted message.
func New(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error that records cause for unwrapping.
func Wrap(kind error, cause error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// ExitCodeOf extracts the exit code from any error, defaulting to 1.
// Keeps main() dumb: no errors.As logic duplicated at call sites.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return codeGeneric
}
