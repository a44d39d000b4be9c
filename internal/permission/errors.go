package permission

import (
	"errors"
	"fmt"
)

// ErrorCode classifies permission operation failures.
type ErrorCode string

const (
	ErrCodeDenied     ErrorCode = "denied"
	ErrCodeRestricted ErrorCode = "restricted"
	ErrCodeSystem     ErrorCode = "system_error"
	ErrCodePlatform   ErrorCode = "platform_error"
	ErrCodeUnknown    ErrorCode = "unknown"
	ErrCodeCancelled  ErrorCode = "cancelled"
)

// Error is the error type returned by permission operations. Platform
// adapter errors are reported verbatim; the manager never converts one
// code into another.
type Error struct {
	Code   ErrorCode
	Detail string
	Err    error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeDenied:
		return "permission denied"
	case ErrCodeRestricted:
		return "permission restricted"
	case ErrCodeSystem:
		return fmt.Sprintf("system error: %s", e.Detail)
	case ErrCodePlatform:
		return fmt.Sprintf("platform error: %s", e.Detail)
	case ErrCodeCancelled:
		return "operation cancelled"
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two permission errors by code, so callers can use
// errors.Is(err, &Error{Code: ErrCodeDenied}).
func (e *Error) Is(target error) bool {
	var pe *Error
	if !errors.As(target, &pe) {
		return false
	}
	return e.Code == pe.Code
}

// ErrDenied reports that the permission is denied.
func ErrDenied() *Error {
	return &Error{Code: ErrCodeDenied}
}

// ErrRestricted reports that system policy forbids the permission.
func ErrRestricted() *Error {
	return &Error{Code: ErrCodeRestricted}
}

// ErrSystem reports an OS-level failure with detail.
func ErrSystem(format string, args ...any) *Error {
	return &Error{Code: ErrCodeSystem, Detail: fmt.Sprintf(format, args...)}
}

// ErrSystemWrap reports an OS-level failure wrapping its cause.
func ErrSystemWrap(err error, format string, args ...any) *Error {
	return &Error{Code: ErrCodeSystem, Detail: fmt.Sprintf(format, args...), Err: err}
}

// ErrPlatform reports a platform adapter failure with detail.
func ErrPlatform(format string, args ...any) *Error {
	return &Error{Code: ErrCodePlatform, Detail: fmt.Sprintf(format, args...)}
}

// ErrUnknown reports an unclassified failure.
func ErrUnknown() *Error {
	return &Error{Code: ErrCodeUnknown}
}

// ErrCancelled reports that the operation was cancelled before a result
// was delivered.
func ErrCancelled() *Error {
	return &Error{Code: ErrCodeCancelled}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeUnknown when err is
// not a permission error.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeUnknown
}

// IsCancelled reports whether err is a cancellation.
func IsCancelled(err error) bool {
	return CodeOf(err) == ErrCodeCancelled
}
