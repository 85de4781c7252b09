package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Generation errors
	ErrCodeConfig      ErrorCode = "CONFIG_ERROR"
	ErrCodeInvalidType ErrorCode = "INVALID_TYPE"

	// Project configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Descriptor catalog errors
	ErrCodeDescriptorInvalid  ErrorCode = "DESCRIPTOR_INVALID"
	ErrCodeSerializerNotFound ErrorCode = "SERIALIZER_NOT_FOUND"

	// Output errors
	ErrCodeSchemaInvalid ErrorCode = "SCHEMA_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// SchemaError represents a structured error with context
type SchemaError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SchemaError) WithDetail(key string, value interface{}) *SchemaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SchemaError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SchemaError
func New(code ErrorCode, message string) *SchemaError {
	return &SchemaError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SchemaError
func Wrap(err error, code ErrorCode, message string) *SchemaError {
	return &SchemaError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific SchemaError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// As returns the first SchemaError in err's chain.
func As(err error) (*SchemaError, bool) {
	for err != nil {
		if schemaErr, ok := err.(*SchemaError); ok {
			return schemaErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	schemaErr, ok := As(err)
	if !ok {
		return ""
	}
	return schemaErr.Code
}

// IsConfigError reports whether err is a generation configuration error,
// such as an unknown view or a cyclic association graph.
func IsConfigError(err error) bool {
	return Is(err, ErrCodeConfig)
}

// IsInvalidTypeError reports whether err was caused by an explicit field type
// outside the JSON Schema primitive vocabulary.
func IsInvalidTypeError(err error) bool {
	return Is(err, ErrCodeInvalidType)
}
