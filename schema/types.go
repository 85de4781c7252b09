package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Primitive JSON Schema type names.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNull    = "null"
)

var primitiveTypes = map[string]bool{
	TypeString:  true,
	TypeInteger: true,
	TypeNumber:  true,
	TypeBoolean: true,
	TypeObject:  true,
	TypeArray:   true,
	TypeNull:    true,
}

// IsPrimitiveType reports whether name is one of the seven JSON Schema type names.
func IsPrimitiveType(name string) bool {
	return primitiveTypes[name]
}

// TypeSet is the value of a "type" keyword. A single member encodes as a
// plain string, anything else as an array.
type TypeSet []string

// Single returns a TypeSet holding one type.
func Single(name string) TypeSet {
	return TypeSet{name}
}

// Nullable returns [name, "null"] when nullable is set, name alone otherwise.
func Nullable(name string, nullable bool) TypeSet {
	if nullable {
		return TypeSet{name, TypeNull}
	}
	return TypeSet{name}
}

// MarshalJSON implements json.Marshaler.
func (t TypeSet) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// String renders the set the way it appears in error messages.
func (t TypeSet) String() string {
	if len(t) == 1 {
		return t[0]
	}
	return "[" + strings.Join(t, ", ") + "]"
}

// ParseTypeSet converts a loosely typed "type" value (a string, a list of
// strings, or a TypeSet) into a TypeSet. Every member must be a primitive
// JSON Schema type name and lists must not be empty.
func ParseTypeSet(v any) (TypeSet, error) {
	var names []string
	switch val := v.(type) {
	case string:
		names = []string{val}
	case TypeSet:
		names = val
	case []string:
		names = val
	case []any:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("type list member %v is not a string", item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("type must be a string or a list of strings, got %T", v)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("type list is empty")
	}
	for _, name := range names {
		if !IsPrimitiveType(name) {
			return nil, fmt.Errorf("%q is not a JSON Schema type", name)
		}
	}

	out := make(TypeSet, len(names))
	copy(out, names)
	return out, nil
}
