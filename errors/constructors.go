package errors

import (
	"fmt"
	"strings"
)

// ViewNotFound creates a configuration error for a view the serializer does not declare
func ViewNotFound(serializer, view string) *SchemaError {
	return New(ErrCodeConfig, fmt.Sprintf("serializer '%s' has no view '%s'", serializer, view)).
		WithDetail("serializer", serializer).
		WithDetail("view", view)
}

// CyclicAssociation creates a configuration error for a self-referential association chain
func CyclicAssociation(path []string) *SchemaError {
	return New(ErrCodeConfig, fmt.Sprintf("cyclic association: %s", strings.Join(path, " -> "))).
		WithDetail("cycle", path)
}

// DepthExceeded creates a configuration error for association nesting beyond the limit
func DepthExceeded(maxDepth int, path []string) *SchemaError {
	return New(ErrCodeConfig, fmt.Sprintf("association nesting exceeds max depth %d", maxDepth)).
		WithDetail("maxDepth", maxDepth).
		WithDetail("path", path)
}

// InvalidType creates an error for an explicit type outside the JSON Schema vocabulary
func InvalidType(field string, value interface{}) *SchemaError {
	return New(ErrCodeInvalidType, fmt.Sprintf("invalid JSON Schema type %v for field '%s'", value, field)).
		WithDetail("field", field).
		WithDetail("value", value)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SchemaError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SchemaError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DescriptorInvalid creates an invalid descriptor catalog error
func DescriptorInvalid(reason string) *SchemaError {
	return New(ErrCodeDescriptorInvalid, fmt.Sprintf("invalid descriptor catalog: %s", reason))
}

// SerializerNotFound creates a serializer lookup error
func SerializerNotFound(name string) *SchemaError {
	return New(ErrCodeSerializerNotFound, fmt.Sprintf("serializer '%s' not found", name)).
		WithDetail("serializer", name)
}
