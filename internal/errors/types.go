package errors

import (
	"fmt"
	"sort"
)

// ErrorType is the failure class of an AppError. It decides the HTTP status
// and whether the failure is logged.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStore
	ErrorTypeInternal
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation: "validation",
	ErrorTypeNotFound:   "not_found",
	ErrorTypeStore:      "store",
	ErrorTypeInternal:   "internal",
}

func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets json and logfmt log output carry the name instead of the number.
func (et ErrorType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// AppError is the error every layer below the HTTP handlers returns.
// Message is safe to show to a caller; Cause never is.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so a bare
// &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"} works as a target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext attaches a key/value pair and returns e.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}

// LogFields flattens the error into key/value pairs for a structured logger:
// type, code, the context keys in sorted order, then the cause if any.
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{"type", e.Type, "code", e.Code}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, e.Context[k])
	}

	if e.Cause != nil {
		fields = append(fields, "cause", e.Cause)
	}
	return fields
}
