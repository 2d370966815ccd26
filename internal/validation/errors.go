package validation

import (
	"strings"
)

// ValidationErrorType classifies a failed rule
type ValidationErrorType string

const (
	ErrorTypeRequired     ValidationErrorType = "required"
	ErrorTypeInvalidValue ValidationErrorType = "invalid_value"
)

// FieldError is one failed rule on one input field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// ValidationError collects the rules an input failed, in the order they were checked
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Required records a missing or blank field and returns ve.
func (ve *ValidationError) Required(field, message string) *ValidationError {
	if message == "" {
		message = field + " is required"
	}
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: ErrorTypeRequired, Message: message})
	return ve
}

// Invalid records a field whose value breaks a rule and returns ve.
// message is shown to the user as is.
func (ve *ValidationError) Invalid(field string, value interface{}, message string) *ValidationError {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: ErrorTypeInvalidValue, Message: message, Value: value})
	return ve
}

// GetUserFriendlyMessage returns the message of the first failed rule.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	return ve.Errors[0].Message
}
