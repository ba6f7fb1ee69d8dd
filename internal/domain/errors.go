package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies domain errors for transport-layer mapping.
type ErrorCode string

const (
	CodeValidation ErrorCode = "validation_error"
	CodeConflict   ErrorCode = "conflict"
	CodeNotFound   ErrorCode = "not_found"
	CodeInternal   ErrorCode = "internal_error"
)

// Error is the common error type for all domain-level failures.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates an error for malformed or rejected input.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewConflictError creates an error for a booking that clashes with an existing one.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewInternalError creates an error for unexpected infrastructure failures.
func NewInternalError(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// CodeOf extracts the error code, defaulting to CodeInternal for unknown errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsConflict reports whether err is a booking conflict.
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }
