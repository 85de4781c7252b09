// Package descriptor defines the serializer and model descriptions the
// generator reads. All values are treated as read-only snapshots.
package descriptor

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DefaultView is the view used when none is requested.
const DefaultView = "default"

// Serializer describes the output shape of one serializer across its views.
type Serializer struct {
	Name  string
	Views map[string]*View
}

// NewSerializer creates a serializer with an empty default view.
func NewSerializer(name string) *Serializer {
	return &Serializer{
		Name:  name,
		Views: map[string]*View{DefaultView: {}},
	}
}

// View returns the named view.
func (s *Serializer) View(name string) (*View, bool) {
	if s == nil || s.Views == nil {
		return nil, false
	}
	v, ok := s.Views[name]
	return v, ok && v != nil
}

// Default returns the default view, creating it if needed.
func (s *Serializer) Default() *View {
	return s.EnsureView(DefaultView)
}

// EnsureView returns the named view, creating it if needed.
func (s *Serializer) EnsureView(name string) *View {
	if s.Views == nil {
		s.Views = make(map[string]*View)
	}
	v, ok := s.Views[name]
	if !ok || v == nil {
		v = &View{}
		s.Views[name] = v
	}
	return v
}

// View is one named variant of a serializer. Slices keep declaration order.
type View struct {
	Fields       []*Field
	Associations []*Association
}

// Field looks up a field by name.
func (v *View) Field(name string) (*Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Association looks up an association by name.
func (v *View) Association(name string) (*Association, bool) {
	for _, a := range v.Associations {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// AddField appends a field and returns the view for chaining.
func (v *View) AddField(f *Field) *View {
	v.Fields = append(v.Fields, f)
	return v
}

// AddAssociation appends an association and returns the view for chaining.
func (v *View) AddAssociation(a *Association) *View {
	v.Associations = append(v.Associations, a)
	return v
}

// Field is one declared output field.
type Field struct {
	Name        string
	DisplayName string
	Options     FieldOptions
}

// Key is the property name the field is emitted under.
func (f *Field) Key() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.Name
}

// FieldOptions is the typed form of a field's option bag.
type FieldOptions struct {
	// Type is an explicit JSON Schema type: a string or a list of strings.
	// It is validated during generation, not here.
	Type        any    `mapstructure:"type"`
	Format      string `mapstructure:"format"`
	Description string `mapstructure:"description"`
	// If and Unless hold serialization-time predicates. Only their presence
	// matters to schema generation.
	If           any  `mapstructure:"if"`
	Unless       any  `mapstructure:"unless"`
	ExcludeIfNil bool `mapstructure:"exclude_if_nil"`
}

// Conditional reports whether the field declares an if or unless predicate.
func (o FieldOptions) Conditional() bool {
	return declared(o.If) || declared(o.Unless)
}

func declared(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	default:
		return true
	}
}

// Association is one declared nested association.
type Association struct {
	Name        string
	DisplayName string
	Options     AssociationOptions
}

// Key is the property name the association is emitted under.
func (a *Association) Key() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// AssociationOptions is the typed form of an association's option bag.
// Collection is only consulted when no model reflection is available.
type AssociationOptions struct {
	Blueprint  *Serializer
	Collection bool
}

// DecodeFieldOptions decodes a generic option bag into FieldOptions. Keys
// outside the recognized set are rejected.
func DecodeFieldOptions(bag map[string]any) (FieldOptions, error) {
	var opts FieldOptions
	if len(bag) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(bag); err != nil {
		return opts, fmt.Errorf("failed to decode field options: %w", err)
	}
	return opts, nil
}
