// Package errors provides error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidFilter indicates a malformed filter specification
	TypeInvalidFilter Type = "INVALID_FILTER"

	// TypeNoMatches indicates that no segments matched the filter
	TypeNoMatches Type = "NO_MATCHES"

	// TypeOverCapacity indicates the generated set exceeded the configured ceiling
	TypeOverCapacity Type = "OVER_CAPACITY"

	// TypeWriteFailed indicates an artifact could not be written
	TypeWriteFailed Type = "WRITE_FAILED"

	// TypeSourceUnreadable indicates an artifact could not be read back
	TypeSourceUnreadable Type = "SOURCE_UNREADABLE"

	// TypeArtifactExpired indicates a requested artifact has been removed
	TypeArtifactExpired Type = "ARTIFACT_EXPIRED"

	// TypeDatabase indicates a segment lookup failure
	TypeDatabase Type = "DATABASE_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeUnauthorized indicates a failed or missing login
	TypeUnauthorized Type = "UNAUTHORIZED"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error (or anything it wraps) is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// GetType returns the type of a domain error, or TypeInternal for foreign errors
func GetType(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// InvalidFilter creates an invalid filter error
func InvalidFilter(message string) *Error {
	return New(TypeInvalidFilter, message)
}

// OverCapacity creates an over-capacity error carrying the offending counts
func OverCapacity(count, limit int) *Error {
	return Newf(TypeOverCapacity, "generated %d identifiers, limit is %d", count, limit).
		WithContext("count", count).
		WithContext("limit", limit)
}

// WriteFailed creates an artifact write error
func WriteFailed(message string, cause error) *Error {
	return Wrap(TypeWriteFailed, message, cause)
}

// SourceUnreadable creates a partition read error
func SourceUnreadable(name string, cause error) *Error {
	return Wrapf(TypeSourceUnreadable, cause, "cannot read artifact %s", name)
}

// ArtifactExpired creates an expired artifact error
func ArtifactExpired(name string) *Error {
	return Newf(TypeArtifactExpired, "artifact not found or expired: %s", name)
}

// Database creates a lookup failure error
func Database(message string, cause error) *Error {
	return Wrap(TypeDatabase, message, cause)
}
