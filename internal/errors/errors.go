package errors

import (
	"errors"
	"fmt"
)

// Generic messages returned to callers for failures they cannot act on.
const (
	MsgInternal   = "Internal server error"
	MsgStoreError = "A store error occurred. Please try again."
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error. The identifier is kept in
// the error context and left out of the message.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewStoreError creates a new persistence error. message is what callers see,
// so it must not carry anything from cause.
func NewStoreError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStore,
		Message: message,
		Code:    "STORE_ERROR",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewStoreOperationError creates a persistence error for a named low level
// operation, as raised by the repositories.
func NewStoreOperationError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStore,
		Message: fmt.Sprintf("store operation failed: %s", operation),
		Code:    "STORE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInternalError creates a new error for unexpected failures
func NewInternalError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: MsgInternal,
		Code:    "INTERNAL_ERROR",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// GetUserMessage returns a user-friendly error message. Errors that are not
// AppErrors are treated as internal and never leak their text.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeStore:
			if _, isOperation := appErr.GetContext("operation"); isOperation || appErr.Message == "" {
				return MsgStoreError
			}
			return appErr.Message
		default:
			return MsgInternal
		}
	}
	return MsgInternal
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return false // These are user errors, not system errors
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
