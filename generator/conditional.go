package generator

import (
	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/descriptor"
)

// Excluded reports whether field is left out of the schema entirely. Only the
// declared presence of an if/unless predicate is checked, never its result.
func Excluded(field *descriptor.Field, cfg config.Generation) bool {
	return cfg.SkipConditionalFields && field.Options.Conditional()
}

// Required reports whether an emitted field belongs in the required list.
func Required(field *descriptor.Field, cfg config.Generation) bool {
	return !Excluded(field, cfg) && !field.Options.ExcludeIfNil
}
