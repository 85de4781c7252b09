// Package generator converts serializer descriptors into JSON Schema documents.
//
// # Basic Usage
//
//	user := descriptor.NewSerializer("UserBlueprint")
//	user.Default().
//	    AddField(&descriptor.Field{Name: "id"}).
//	    AddField(&descriptor.Field{Name: "email", Options: descriptor.FieldOptions{Type: "string", Format: "email"}})
//
//	model := descriptor.NewTable("User").WithColumn("id", descriptor.ColumnInteger, false)
//
//	s, err := generator.Generate(user, model, config.DefaultGeneration())
//
// # Field Types
//
// Each field's fragment comes from the first resolver that answers:
//
//   - an explicit type option, validated against the seven JSON Schema type names
//   - the backing model column, through the column type table
//   - the configured fallback definition ({} by default)
//
// A field's own format and description always win over inferred values.
// Nullable columns produce a [type, "null"] pair.
//
// # Associations
//
// Associations with a blueprint are expanded by generating the nested
// serializer against the related model. Collection associations are wrapped
// in an array schema. Associations without a blueprint become {"type": "object"}.
// An association chain that revisits a serializer fails with a configuration
// error instead of recursing forever.
//
// # Required Fields
//
// Every emitted field is required unless it declares exclude_if_nil.
// Associations are never required.
package generator
