package catalog

// File is the on-disk shape of a descriptor catalog. Models and serializers
// refer to each other by name and are linked after decoding.
type File struct {
	Models      map[string]ModelSpec      `yaml:"models,omitempty" jsonschema:"description=Backing models keyed by name"`
	Serializers map[string]SerializerSpec `yaml:"serializers" jsonschema:"description=Serializer descriptors keyed by name"`
}

// ModelSpec declares the column and association metadata of one model.
type ModelSpec struct {
	Columns      map[string]ColumnSpec     `yaml:"columns,omitempty" jsonschema:"description=Columns keyed by attribute name"`
	Associations map[string]ModelAssocSpec `yaml:"associations,omitempty" jsonschema:"description=Associations keyed by name"`
}

// ColumnSpec is one backing column.
type ColumnSpec struct {
	Type     string `yaml:"type" jsonschema:"description=Column storage type such as string or datetime"`
	Nullable bool   `yaml:"nullable,omitempty" jsonschema:"description=Whether the column accepts NULL"`
}

// ModelAssocSpec is a model's reflection of one association.
type ModelAssocSpec struct {
	Collection bool   `yaml:"collection,omitempty" jsonschema:"description=True for has-many associations"`
	Model      string `yaml:"model,omitempty" jsonschema:"description=Name of the related model"`
}

// SerializerSpec declares one serializer.
type SerializerSpec struct {
	Model string              `yaml:"model,omitempty" jsonschema:"description=Model backing this serializer"`
	Views map[string]ViewSpec `yaml:"views" jsonschema:"description=Views keyed by name"`
}

// ViewSpec lists the fields and associations of one view in declaration order.
type ViewSpec struct {
	Fields       []FieldSpec       `yaml:"fields,omitempty" jsonschema:"description=Fields in declaration order"`
	Associations []AssociationSpec `yaml:"associations,omitempty" jsonschema:"description=Associations in declaration order"`
}

// FieldSpec is one serializer field. Options is the raw option bag.
type FieldSpec struct {
	Name        string                 `yaml:"name" jsonschema:"minLength=1,description=Source attribute name"`
	DisplayName string                 `yaml:"display_name,omitempty" jsonschema:"description=Output key when it differs from name"`
	Options     map[string]interface{} `yaml:"options,omitempty" jsonschema:"description=Field options: type/format/description/if/unless/exclude_if_nil"`
}

// AssociationSpec is one serializer association.
type AssociationSpec struct {
	Name        string             `yaml:"name" jsonschema:"minLength=1,description=Association name"`
	DisplayName string             `yaml:"display_name,omitempty" jsonschema:"description=Output key when it differs from name"`
	Options     AssociationOptions `yaml:"options,omitempty" jsonschema:"description=Association options"`
}

// AssociationOptions names the nested serializer.
type AssociationOptions struct {
	Blueprint  string `yaml:"blueprint,omitempty" jsonschema:"description=Nested serializer name; omitted for opaque objects"`
	Collection bool   `yaml:"collection,omitempty" jsonschema:"description=Collection flag used when no model reflection exists"`
}
