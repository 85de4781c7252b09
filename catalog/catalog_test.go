package catalog

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/generator"
	"github.com/grovetools/bpschema/testutil"
)

const expectedUserSchema = `{
	"type": "object",
	"title": "User",
	"properties": {
		"id": {"type": "integer"},
		"first_name": {"type": ["string", "null"]},
		"last_name": {"type": ["string", "null"]},
		"email": {"type": "string"},
		"created_at": {"type": "string", "format": "date-time"},
		"full_name": {
			"type": ["string", "null"],
			"description": "The concatenated first and last name of the user"
		},
		"addresses": {
			"type": "array",
			"items": {
				"type": "object",
				"title": "Address",
				"properties": {
					"id": {"type": "integer"},
					"address": {"type": "string"}
				},
				"required": ["id", "address"],
				"additionalProperties": false
			}
		}
	},
	"required": ["id", "first_name", "last_name", "email", "created_at", "full_name"],
	"additionalProperties": false
}`

func generateJSON(t *testing.T, c *Catalog, name string) string {
	t.Helper()

	s, err := c.Serializer(name)
	require.NoError(t, err)

	out, err := generator.Generate(s, c.SerializerModel(name), config.DefaultGeneration())
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	return string(data)
}

func TestParseYAML(t *testing.T) {
	c, err := Parse([]byte(testutil.UserCatalogYAML), config.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"AddressBlueprint", "UserBlueprint"}, c.Names())
	assert.Equal(t, 2, c.Len())
	assert.JSONEq(t, expectedUserSchema, generateJSON(t, c, "UserBlueprint"))

	user, err := c.Serializer("UserBlueprint")
	require.NoError(t, err)
	view := user.Default()
	assert.Len(t, view.Fields, 6)
	assert.Equal(t, "id", view.Fields[0].Name)
	assert.Equal(t, "full_name", view.Fields[5].Name)

	assoc, ok := view.Association("addresses")
	require.True(t, ok)
	address, _ := c.Serializer("AddressBlueprint")
	assert.Same(t, address, assoc.Options.Blueprint)
}

func TestParseTOMLMatchesYAML(t *testing.T) {
	fromYAML, err := Parse([]byte(testutil.UserCatalogYAML), config.FormatYAML)
	require.NoError(t, err)
	fromTOML, err := Parse([]byte(testutil.UserCatalogTOML), config.FormatTOML)
	require.NoError(t, err)

	for _, name := range fromYAML.Names() {
		assert.Equal(t, generateJSON(t, fromYAML, name), generateJSON(t, fromTOML, name), name)
	}
}

func TestModelLookups(t *testing.T) {
	c, err := Parse([]byte(testutil.UserCatalogYAML), config.FormatYAML)
	require.NoError(t, err)

	m, ok := c.Model("User")
	require.True(t, ok)
	col, ok := m.Column("created_at")
	require.True(t, ok)
	assert.Equal(t, descriptor.ColumnDatetime, col.Type)

	info, ok := m.Association("addresses")
	require.True(t, ok)
	assert.True(t, info.Collection)
	require.NotNil(t, info.Related)
	assert.Equal(t, "Address", info.Related.Name())

	_, ok = c.Model("Missing")
	assert.False(t, ok)

	assert.Nil(t, c.SerializerModel("Unknown"))
}

func TestSerializerNotFound(t *testing.T) {
	c, err := Parse([]byte(testutil.UserCatalogYAML), config.FormatYAML)
	require.NoError(t, err)

	_, err = c.Serializer("PostBlueprint")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSerializerNotFound, errors.GetCode(err))
}

func TestSerializerWithoutModel(t *testing.T) {
	doc := `serializers:
  Summary:
    views:
      default:
        fields:
          - name: total
          - name: label
            display_name: caption
            options: {type: string, exclude_if_nil: true}
      compact:
        fields:
          - name: total
`
	c, err := Parse([]byte(doc), config.FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, c.SerializerModel("Summary"))

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"total": {}, "caption": {"type": "string"}},
		"required": ["total"],
		"additionalProperties": false
	}`, generateJSON(t, c, "Summary"))

	s, _ := c.Serializer("Summary")
	compact, ok := s.View("compact")
	require.True(t, ok)
	assert.Len(t, compact.Fields, 1)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing serializers",
			doc:  "models: {}\n",
		},
		{
			name: "unknown top-level key",
			doc:  "serializers: {}\nblueprints: {}\n",
		},
		{
			name: "field without name",
			doc: `serializers:
  S:
    views:
      default:
        fields:
          - display_name: x
`,
		},
		{
			name: "column without type",
			doc: `models:
  M:
    columns:
      id: {nullable: true}
serializers: {}
`,
		},
		{
			name: "unknown column type",
			doc: `models:
  M:
    columns:
      payload: {type: jsonb}
serializers: {}
`,
		},
		{
			name: "dangling blueprint",
			doc: `serializers:
  S:
    views:
      default:
        associations:
          - name: owner
            options: {blueprint: Missing}
`,
		},
		{
			name: "dangling serializer model",
			doc: `serializers:
  S:
    model: Missing
    views: {default: {}}
`,
		},
		{
			name: "dangling association model",
			doc: `models:
  M:
    associations:
      owner: {model: Missing}
serializers: {}
`,
		},
		{
			name: "duplicate display name",
			doc: `serializers:
  S:
    views:
      default:
        fields:
          - name: email
          - name: contact
            display_name: email
`,
		},
		{
			name: "field and association share a key",
			doc: `serializers:
  S:
    views:
      default:
        fields:
          - name: owner
        associations:
          - name: owner
`,
		},
		{
			name: "unknown field option",
			doc: `serializers:
  S:
    views:
      default:
        fields:
          - name: email
            options: {typ: string}
`,
		},
		{
			name: "malformed yaml",
			doc:  "serializers: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.doc), config.FormatYAML)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeDescriptorInvalid, errors.GetCode(err))
		})
	}
}

func TestInvalidTypeSurfacesAtGeneration(t *testing.T) {
	doc := `serializers:
  S:
    views:
      default:
        fields:
          - name: email
            options: {type: invalid}
`
	c, err := Parse([]byte(doc), config.FormatYAML)
	require.NoError(t, err, "type values are checked by the generator, not the loader")

	s, _ := c.Serializer("S")
	_, err = generator.Generate(s, nil, config.DefaultGeneration())
	assert.True(t, errors.IsInvalidTypeError(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := testutil.WriteFile(t, dir, "catalog.yml", testutil.UserCatalogYAML)
	tomlPath := testutil.WriteFile(t, dir, "catalog.toml", testutil.UserCatalogTOML)

	c, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, c.Path())

	c, err = Load(tomlPath)
	require.NoError(t, err)
	assert.JSONEq(t, expectedUserSchema, generateJSON(t, c, "UserBlueprint"))

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDescriptorInvalid, errors.GetCode(err))

	bad := testutil.WriteFile(t, dir, "bad.yml", "serializers: {S: {model: Nope, views: {}}}\n")
	_, err = Load(bad)
	schemaErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, bad, schemaErr.Details["path"])
}

func TestParseExpandsEnvVars(t *testing.T) {
	t.Setenv("BPSCHEMA_TEST_FORMAT", "email")

	doc := `serializers:
  S:
    views:
      default:
        fields:
          - name: email
            options: {type: string, format: "${BPSCHEMA_TEST_FORMAT}", description: "${BPSCHEMA_TEST_UNSET:-Contact address}"}
`
	c, err := Parse([]byte(doc), config.FormatYAML)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"email": {"type": "string", "format": "email", "description": "Contact address"}},
		"required": ["email"],
		"additionalProperties": false
	}`, generateJSON(t, c, "S"))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, "bpschema Descriptor Catalog", doc["title"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "models")
	assert.Contains(t, props, "serializers")
	assert.Equal(t, []interface{}{"serializers"}, doc["required"])
}
