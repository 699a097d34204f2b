// Package errors provides structured error types for dashgrid.
//
// Error codes give the HTTP API and the CLI a machine-readable category for
// every failure while keeping a human-readable message:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND: unknown widgets or layouts
//   - GESTURE_*: drag/resize lifecycle misuse
//   - DASHBOARD_FULL: no room for a widget (a normal outcome, shown as a warning)
//   - INTERNAL_ERROR: broken invariants
//
// # Usage
//
//	err := errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
//	if errors.Is(err, errors.ErrCodeWidgetNotFound) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeStorage, cause, "write layout %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidRect   Code = "INVALID_RECT"
	ErrCodeInvalidID     Code = "INVALID_ID"

	// Resource errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeWidgetNotFound   Code = "WIDGET_NOT_FOUND"
	ErrCodeDuplicateWidget  Code = "DUPLICATE_WIDGET"
	ErrCodePositionOccupied Code = "POSITION_OCCUPIED"
	ErrCodeDashboardFull    Code = "DASHBOARD_FULL"

	// Gesture lifecycle errors
	ErrCodeGestureActive   Code = "GESTURE_ACTIVE"
	ErrCodeNoGesture       Code = "NO_GESTURE"
	ErrCodeGestureFinished Code = "GESTURE_FINISHED"

	// Infrastructure errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
