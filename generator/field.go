package generator

import (
	"github.com/sirupsen/logrus"

	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/schema"
)

// FieldResolver is one source of field type information. Resolve returns
// ok=false to defer to the next resolver in the chain. A returned fragment
// must be fresh, since format and description are merged into it.
type FieldResolver interface {
	Name() string
	Resolve(field *descriptor.Field, model descriptor.Model) (fragment *schema.Schema, ok bool, err error)
}

// columnFormat is the inference table entry for a column type.
type columnFormat struct {
	primitive string
	format    string
}

var columnTypeTable = map[descriptor.ColumnType]columnFormat{
	descriptor.ColumnString:    {primitive: schema.TypeString},
	descriptor.ColumnText:      {primitive: schema.TypeString},
	descriptor.ColumnInteger:   {primitive: schema.TypeInteger},
	descriptor.ColumnFloat:     {primitive: schema.TypeNumber},
	descriptor.ColumnDecimal:   {primitive: schema.TypeNumber},
	descriptor.ColumnBoolean:   {primitive: schema.TypeBoolean},
	descriptor.ColumnDate:      {primitive: schema.TypeString, format: "date"},
	descriptor.ColumnDatetime:  {primitive: schema.TypeString, format: "date-time"},
	descriptor.ColumnTimestamp: {primitive: schema.TypeString, format: "date-time"},
	descriptor.ColumnUUID:      {primitive: schema.TypeString, format: "uuid"},
}

// ColumnSchema infers a fragment from a column. Unknown column types are not
// inferred.
func ColumnSchema(col descriptor.Column) (*schema.Schema, bool) {
	entry, ok := columnTypeTable[col.Type]
	if !ok {
		return nil, false
	}
	return &schema.Schema{
		Type:   schema.Nullable(entry.primitive, col.Nullable),
		Format: entry.format,
	}, true
}

// explicitTypeResolver honors the field's own type option.
type explicitTypeResolver struct{}

func (explicitTypeResolver) Name() string { return "explicit" }

func (explicitTypeResolver) Resolve(field *descriptor.Field, _ descriptor.Model) (*schema.Schema, bool, error) {
	if field.Options.Type == nil {
		return nil, false, nil
	}
	types, err := schema.ParseTypeSet(field.Options.Type)
	if err != nil {
		invalid := errors.InvalidType(field.Name, field.Options.Type)
		invalid.Cause = err
		return nil, false, invalid
	}
	return &schema.Schema{Type: types}, true, nil
}

// columnResolver infers from the backing model's column of the same name.
type columnResolver struct{}

func (columnResolver) Name() string { return "column" }

func (columnResolver) Resolve(field *descriptor.Field, model descriptor.Model) (*schema.Schema, bool, error) {
	if model == nil {
		return nil, false, nil
	}
	col, ok := model.Column(field.Name)
	if !ok {
		return nil, false, nil
	}
	fragment, ok := ColumnSchema(col)
	return fragment, ok, nil
}

// fallbackResolver always answers with a copy of the configured fallback.
type fallbackResolver struct {
	fallback *schema.Schema
}

func (fallbackResolver) Name() string { return "fallback" }

func (r fallbackResolver) Resolve(*descriptor.Field, descriptor.Model) (*schema.Schema, bool, error) {
	if r.fallback == nil {
		return &schema.Schema{}, true, nil
	}
	return r.fallback.Clone(), true, nil
}

// resolveField runs the resolver chain, then applies the field's own format
// and description over whatever the resolver produced.
func (g *Generator) resolveField(field *descriptor.Field, model descriptor.Model) (*schema.Schema, error) {
	for _, resolver := range g.resolvers {
		fragment, ok, err := resolver.Resolve(field, model)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if field.Options.Format != "" {
			fragment.Format = field.Options.Format
		}
		if field.Options.Description != "" {
			fragment.Description = field.Options.Description
		}

		g.logger.WithFields(logrus.Fields{
			"field":  field.Name,
			"source": resolver.Name(),
		}).Debug("resolved field")
		return fragment, nil
	}

	// Unreachable while the fallback resolver terminates the chain
	return g.fallback.Clone(), nil
}
