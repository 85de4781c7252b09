package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON Schema for the core bpschema.yml
// properties. Extension sections such as logging are composed in by
// tools/schema-generator.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	// Config without Extensions and its unexported path
	type BaseConfig struct {
		Version    string       `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
		Catalog    string       `yaml:"catalog,omitempty" jsonschema:"description=Path to the descriptor catalog relative to this file"`
		Generation Generation   `yaml:"generation,omitempty" jsonschema:"description=Schema generation settings"`
		Output     OutputConfig `yaml:"output,omitempty" jsonschema:"description=Output settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "bpschema Configuration"
	schema.Description = "Schema for bpschema.yml project files."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
