package config

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/schema"
)

// DefaultMaxDepth bounds association nesting when no limit is configured.
const DefaultMaxDepth = 64

// Generation controls one schema generation run. The same value is used at
// every level of association nesting.
type Generation struct {
	// View selects the serializer view to read fields and associations from.
	View string `yaml:"view,omitempty" toml:"view,omitempty" jsonschema:"description=Serializer view to generate (default: default)"`

	// SkipConditionalFields omits fields that declare an if/unless predicate.
	// When false, conditional fields are emitted like any other field.
	SkipConditionalFields bool `yaml:"skip_conditional_fields,omitempty" toml:"skip_conditional_fields,omitempty" jsonschema:"description=Omit fields declaring an if or unless predicate"`

	// FallbackDefinition is the fragment used for fields whose type cannot be
	// resolved. Defaults to {}.
	FallbackDefinition map[string]interface{} `yaml:"fallback_definition,omitempty" toml:"fallback_definition,omitempty" jsonschema:"description=JSON Schema fragment used when no type can be inferred"`

	// MaxDepth limits association nesting. Zero means DefaultMaxDepth and a
	// negative value disables the limit. Cycles are always rejected.
	MaxDepth int `yaml:"max_depth,omitempty" toml:"max_depth,omitempty" jsonschema:"description=Maximum association nesting depth (0 = default of 64; negative = unlimited)"`
}

// DefaultGeneration returns a Generation with all defaults applied.
func DefaultGeneration() Generation {
	g := Generation{}
	g.SetDefaults()
	return g
}

// SetDefaults fills unset fields.
func (g *Generation) SetDefaults() {
	if g.View == "" {
		g.View = descriptor.DefaultView
	}
	if g.FallbackDefinition == nil {
		g.FallbackDefinition = map[string]interface{}{}
	}
	if g.MaxDepth == 0 {
		g.MaxDepth = DefaultMaxDepth
	}
}

// Fallback decodes FallbackDefinition into a schema fragment.
func (g Generation) Fallback() (*schema.Schema, error) {
	return schema.FromMap(g.FallbackDefinition)
}

// OutputConfig controls how generated schemas are written.
type OutputConfig struct {
	// Dir is where one <serializer>.schema.json file per serializer is written.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty" jsonschema:"description=Directory for generated schema files"`
	// Indent is the JSON indentation string. Empty means two spaces.
	Indent string `yaml:"indent,omitempty" toml:"indent,omitempty" jsonschema:"description=JSON indentation (default: two spaces)"`
}

// Config is the bpschema.yml project file.
type Config struct {
	Version    string       `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Catalog    string       `yaml:"catalog,omitempty" toml:"catalog,omitempty" jsonschema:"description=Path to the descriptor catalog, relative to this file"`
	Generation Generation   `yaml:"generation,omitempty" toml:"generation,omitempty" jsonschema:"description=Schema generation settings"`
	Output     OutputConfig `yaml:"output,omitempty" toml:"output,omitempty" jsonschema:"description=Output settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:"-" toml:"-" jsonschema:"-"`

	// path is the file the config was loaded from, if any.
	path string
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Output.Indent == "" {
		c.Output.Indent = "  "
	}
	c.Generation.SetDefaults()
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded bpschema.yml into the provided target struct. The target must be a
// pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
