// Package errors provides structured error handling for the columnstore engine.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeBounds represents an index outside [0, length)
	ErrorTypeBounds ErrorType = "bounds"
	// ErrorTypeLengthMismatch represents paired index slices of unequal length
	ErrorTypeLengthMismatch ErrorType = "length_mismatch"
	// ErrorTypeIncompatibleType represents a value whose type does not match the array's element type
	ErrorTypeIncompatibleType ErrorType = "incompatible_type"
	// ErrorTypeUnsupported represents an operation or type the chosen backend has no strategy for
	ErrorTypeUnsupported ErrorType = "unsupported"
	// ErrorTypeResource represents a backing-resource failure (file, mapping, directory)
	ErrorTypeResource ErrorType = "resource"
	// ErrorTypeCoding represents a value outside a coding table's representable universe
	ErrorTypeCoding ErrorType = "coding"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents snapshot/serialization errors
	ErrorTypeData ErrorType = "data"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// Bounds builds the error raised for an index outside [0, length).
func Bounds(index, length int) *Error {
	return Newf(ErrorTypeBounds, "index %d out of bounds for length %d", index, length).
		WithDetail("index", index).
		WithDetail("length", length)
}

// LengthMismatch builds the error raised for paired index slices of
// unequal length, reported before any mutation occurs.
func LengthMismatch(fromLen, toLen int) *Error {
	return Newf(ErrorTypeLengthMismatch, "source indexes length %d != target indexes length %d", fromLen, toLen).
		WithDetail("from_length", fromLen).
		WithDetail("to_length", toLen)
}

// IncompatibleType builds the error raised when a stored value's runtime
// type is not assignable to the array's declared element type.
func IncompatibleType(expected, actual interface{}) *Error {
	return Newf(ErrorTypeIncompatibleType, "expected element of type %T, got %T", expected, actual).
		WithDetail("expected", fmt.Sprintf("%T", expected)).
		WithDetail("actual", fmt.Sprintf("%T", actual))
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// As is a convenience wrapper over the standard errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
