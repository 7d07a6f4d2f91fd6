package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

var (
	// ErrInvalidInput marks a configuration or argument value that can
	// never be valid, as opposed to data that merely failed to parse.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableEntry indicates a malformed static lookup-table entry
	// (currency/frequency tables). It marks a code defect, never a data
	// issue, and must not be swallowed by degrade-silently paths.
	ErrTableEntry = errors.New("malformed table entry")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// TableError builds the typed error for a broken static-table entry.
func TableError(table, entry, reason string) error {
	return NewAppError("TABLE_ERROR", fmt.Sprintf("%s table entry %q: %s", table, entry, reason), ErrTableEntry)
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func NotFoundError(message string) error {
	return status.Error(codes.NotFound, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return InvalidArgumentError(fmt.Sprintf(format, args...))
}

func InternalErrorf(format string, args ...interface{}) error {
	return InternalError(fmt.Sprintf(format, args...))
}
