// Package schema holds the JSON Schema value produced by the generator.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties maps property names to schemas in insertion order.
type Properties = orderedmap.OrderedMap[string, *Schema]

// Schema is a JSON Schema document or fragment. The zero value encodes as {}.
type Schema struct {
	Type                 TypeSet        `json:"type,omitempty"`
	Format               string         `json:"format,omitempty"`
	Title                string         `json:"title,omitempty"`
	Description          string         `json:"description,omitempty"`
	Properties           *Properties    `json:"properties,omitempty"`
	Required             []string       `json:"required,omitempty"`
	AdditionalProperties *bool          `json:"additionalProperties,omitempty"`
	Items                *Schema        `json:"items,omitempty"`
	Extras               map[string]any `json:"-"`
}

// NewObject returns a closed object envelope with empty properties and an
// empty (but present) required list.
func NewObject() *Schema {
	closed := false
	return &Schema{
		Type:                 Single(TypeObject),
		Properties:           orderedmap.New[string, *Schema](),
		Required:             []string{},
		AdditionalProperties: &closed,
	}
}

// ArrayOf wraps items in an array schema.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: Single(TypeArray), Items: items}
}

// SetProperty adds or replaces a property, keeping first-insertion order.
func (s *Schema) SetProperty(name string, prop *Schema) {
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *Schema]()
	}
	s.Properties.Set(name, prop)
}

// Property looks up a property by name.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// PropertyNames returns the property names in insertion order.
func (s *Schema) PropertyNames() []string {
	if s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Clone returns a copy of s that can be modified without touching s.
// Extras values are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		Format:      s.Format,
		Title:       s.Title,
		Description: s.Description,
		Items:       s.Items.Clone(),
	}
	if s.Type != nil {
		out.Type = append(TypeSet{}, s.Type...)
	}
	if s.Required != nil {
		out.Required = append([]string{}, s.Required...)
	}
	if s.AdditionalProperties != nil {
		v := *s.AdditionalProperties
		out.AdditionalProperties = &v
	}
	if s.Properties != nil {
		out.Properties = orderedmap.New[string, *Schema]()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties.Set(pair.Key, pair.Value.Clone())
		}
	}
	if s.Extras != nil {
		out.Extras = make(map[string]any, len(s.Extras))
		for k, v := range s.Extras {
			out.Extras[k] = v
		}
	}
	return out
}

// MarshalJSON emits keywords in a fixed order followed by extras sorted by key.
// required is written whenever it is non-nil, so object envelopes keep an
// explicit empty list.
func (s Schema) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	if len(s.Type) > 0 {
		out.Set("type", s.Type)
	}
	if s.Format != "" {
		out.Set("format", s.Format)
	}
	if s.Title != "" {
		out.Set("title", s.Title)
	}
	if s.Description != "" {
		out.Set("description", s.Description)
	}
	if s.Properties != nil {
		out.Set("properties", s.Properties)
	}
	if s.Required != nil {
		out.Set("required", s.Required)
	}
	if s.AdditionalProperties != nil {
		out.Set("additionalProperties", *s.AdditionalProperties)
	}
	if s.Items != nil {
		out.Set("items", s.Items)
	}

	keys := make([]string, 0, len(s.Extras))
	for k := range s.Extras {
		if _, taken := out.Get(k); !taken {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Set(k, s.Extras[k])
	}

	return json.Marshal(out)
}

// rawSchema is the loosely typed shape FromMap decodes before conversion.
type rawSchema struct {
	Type                 any            `mapstructure:"type"`
	Format               string         `mapstructure:"format"`
	Title                string         `mapstructure:"title"`
	Description          string         `mapstructure:"description"`
	Properties           map[string]any `mapstructure:"properties"`
	Required             []string       `mapstructure:"required"`
	AdditionalProperties *bool          `mapstructure:"additionalProperties"`
	Items                map[string]any `mapstructure:"items"`
	Extras               map[string]any `mapstructure:",remain"`
}

// FromMap builds a Schema from a generic map such as one decoded from YAML,
// TOML or JSON. Unknown keywords are kept in Extras, as are modelled keywords
// whose value has a shape the Schema fields cannot hold, such as a schema
// valued additionalProperties or a tuple items list. Nested properties are
// ordered by name since generic maps carry no order.
func FromMap(m map[string]any) (*Schema, error) {
	if m == nil {
		return &Schema{}, nil
	}

	typed, verbatim := splitVerbatim(m)

	var raw rawSchema
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(typed); err != nil {
		return nil, fmt.Errorf("failed to decode schema fragment: %w", err)
	}

	out := &Schema{
		Format:               raw.Format,
		Title:                raw.Title,
		Description:          raw.Description,
		Required:             raw.Required,
		AdditionalProperties: raw.AdditionalProperties,
	}
	for k, v := range raw.Extras {
		verbatim[k] = v
	}
	if len(verbatim) > 0 {
		out.Extras = verbatim
	}

	if raw.Type != nil {
		types, err := ParseTypeSet(raw.Type)
		if err != nil {
			return nil, err
		}
		out.Type = types
	}

	if raw.Items != nil {
		items, err := FromMap(raw.Items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out.Items = items
	}

	if raw.Properties != nil {
		names := make([]string, 0, len(raw.Properties))
		for name := range raw.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		out.Properties = orderedmap.New[string, *Schema]()
		for _, name := range names {
			prop, err := FromMap(raw.Properties[name].(map[string]any))
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			out.Properties.Set(name, prop)
		}
	}

	return out, nil
}

// splitVerbatim separates keywords FromMap decodes into Schema fields from
// those whose value must pass through untouched.
func splitVerbatim(m map[string]any) (typed, verbatim map[string]any) {
	typed = make(map[string]any, len(m))
	verbatim = make(map[string]any)
	for k, v := range m {
		if modelledShape(k, v) {
			typed[k] = v
		} else {
			verbatim[k] = v
		}
	}
	return typed, verbatim
}

func modelledShape(keyword string, v any) bool {
	if v == nil {
		return true
	}
	switch keyword {
	case "additionalProperties":
		_, ok := v.(bool)
		return ok
	case "items":
		_, ok := v.(map[string]any)
		return ok
	case "properties":
		props, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for _, prop := range props {
			if _, ok := prop.(map[string]any); !ok {
				return false
			}
		}
		return true
	default:
		return true
	}
}
