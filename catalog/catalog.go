package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/errors"
)

// Catalog holds linked serializer descriptors and models loaded from a file.
type Catalog struct {
	serializers map[string]*descriptor.Serializer
	models      map[string]*descriptor.Table
	// bindings maps serializer name to the name of its backing model.
	bindings map[string]string
	path     string
}

// Load reads a catalog file. The syntax is picked from the extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to read catalog").
			WithDetail("path", path)
	}

	c, err := Parse(data, config.FormatFromPath(path))
	if err != nil {
		if schemaErr, ok := errors.As(err); ok {
			return nil, schemaErr.WithDetail("path", path)
		}
		return nil, err
	}
	c.path = path
	return c, nil
}

// Parse decodes, validates and links a catalog document.
func Parse(data []byte, format config.Format) (*Catalog, error) {
	doc, err := config.ParseDocument(data, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to parse catalog")
	}

	normalized, err := normalize(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to normalize catalog")
	}

	if err := validateDocument(normalized); err != nil {
		return nil, err
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &file,
		TagName:     "yaml",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "failed to decode catalog")
	}

	return link(&file)
}

// normalize turns YAML and TOML decoder output into the plain JSON value
// shapes the validator expects.
func normalize(doc map[string]interface{}) (interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func link(file *File) (*Catalog, error) {
	c := &Catalog{
		serializers: make(map[string]*descriptor.Serializer, len(file.Serializers)),
		models:      make(map[string]*descriptor.Table, len(file.Models)),
		bindings:    make(map[string]string),
	}

	// Tables first so associations can point at any model
	for name := range file.Models {
		c.models[name] = descriptor.NewTable(name)
	}
	for _, name := range sortedKeys(file.Models) {
		spec := file.Models[name]
		table := c.models[name]

		for _, column := range sortedKeys(spec.Columns) {
			col := spec.Columns[column]
			typ := descriptor.ColumnType(col.Type)
			if !typ.Known() {
				return nil, errors.DescriptorInvalid(
					fmt.Sprintf("model '%s' column '%s' has unknown type '%s'", name, column, col.Type)).
					WithDetail("model", name).
					WithDetail("column", column)
			}
			table.WithColumn(column, typ, col.Nullable)
		}

		for _, assoc := range sortedKeys(spec.Associations) {
			ref := spec.Associations[assoc]
			var related descriptor.Model
			if ref.Model != "" {
				target, ok := c.models[ref.Model]
				if !ok {
					return nil, errors.DescriptorInvalid(
						fmt.Sprintf("model '%s' association '%s' refers to unknown model '%s'", name, assoc, ref.Model)).
						WithDetail("model", name)
				}
				related = target
			}
			table.WithAssociation(assoc, ref.Collection, related)
		}
	}

	for name := range file.Serializers {
		c.serializers[name] = descriptor.NewSerializer(name)
	}
	for _, name := range sortedKeys(file.Serializers) {
		spec := file.Serializers[name]
		s := c.serializers[name]

		if spec.Model != "" {
			if _, ok := c.models[spec.Model]; !ok {
				return nil, errors.DescriptorInvalid(
					fmt.Sprintf("serializer '%s' refers to unknown model '%s'", name, spec.Model)).
					WithDetail("serializer", name)
			}
			c.bindings[name] = spec.Model
		}

		for _, viewName := range sortedKeys(spec.Views) {
			if err := c.linkView(s, viewName, spec.Views[viewName]); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

func (c *Catalog) linkView(s *descriptor.Serializer, viewName string, spec ViewSpec) error {
	view := s.EnsureView(viewName)
	seen := make(map[string]bool)

	claim := func(key string) error {
		if seen[key] {
			return errors.DescriptorInvalid(
				fmt.Sprintf("serializer '%s' view '%s' declares '%s' more than once", s.Name, viewName, key)).
				WithDetail("serializer", s.Name).
				WithDetail("view", viewName)
		}
		seen[key] = true
		return nil
	}

	for _, fs := range spec.Fields {
		opts, err := descriptor.DecodeFieldOptions(fs.Options)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDescriptorInvalid,
				fmt.Sprintf("serializer '%s' field '%s' has invalid options", s.Name, fs.Name))
		}
		f := &descriptor.Field{Name: fs.Name, DisplayName: fs.DisplayName, Options: opts}
		if err := claim(f.Key()); err != nil {
			return err
		}
		view.AddField(f)
	}

	for _, as := range spec.Associations {
		a := &descriptor.Association{
			Name:        as.Name,
			DisplayName: as.DisplayName,
			Options:     descriptor.AssociationOptions{Collection: as.Options.Collection},
		}
		if as.Options.Blueprint != "" {
			blueprint, ok := c.serializers[as.Options.Blueprint]
			if !ok {
				return errors.DescriptorInvalid(
					fmt.Sprintf("serializer '%s' association '%s' refers to unknown blueprint '%s'",
						s.Name, as.Name, as.Options.Blueprint)).
					WithDetail("serializer", s.Name)
			}
			a.Options.Blueprint = blueprint
		}
		if err := claim(a.Key()); err != nil {
			return err
		}
		view.AddAssociation(a)
	}

	return nil
}

// Path returns the file the catalog was loaded from, if any.
func (c *Catalog) Path() string {
	return c.path
}

// Names returns all serializer names, sorted.
func (c *Catalog) Names() []string {
	return sortedKeys(c.serializers)
}

// Len returns the number of serializers.
func (c *Catalog) Len() int {
	return len(c.serializers)
}

// Serializer looks up a serializer by name.
func (c *Catalog) Serializer(name string) (*descriptor.Serializer, error) {
	s, ok := c.serializers[name]
	if !ok {
		return nil, errors.SerializerNotFound(name)
	}
	return s, nil
}

// Model looks up a model by name.
func (c *Catalog) Model(name string) (descriptor.Model, bool) {
	m, ok := c.models[name]
	if !ok {
		return nil, false
	}
	return m, true
}

// SerializerModel returns the model a serializer is bound to, or nil.
func (c *Catalog) SerializerModel(name string) descriptor.Model {
	modelName, ok := c.bindings[name]
	if !ok {
		return nil
	}
	m, _ := c.Model(modelName)
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
