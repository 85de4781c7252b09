package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/schema"
)

const schemaResource = "catalog.schema.json"

// GenerateSchema reflects the JSON Schema of the catalog file format.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	s := r.Reflect(&File{})
	s.Title = "bpschema Descriptor Catalog"
	s.Description = "Serializers and models consumed by bpschema generate."
	s.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(s, "", "  ")
}

var (
	compileOnce    sync.Once
	compiledSchema *santhosh.Schema
	compileErr     error
)

func fileSchema() (*santhosh.Schema, error) {
	compileOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			compileErr = fmt.Errorf("failed to generate catalog schema: %w", err)
			return
		}

		compiler := santhosh.NewCompiler()
		compiler.Draft = santhosh.Draft7
		if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("failed to add catalog schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a JSON-normalized document against the catalog
// file schema.
func validateDocument(doc interface{}) error {
	sch, err := fileSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "catalog schema unavailable")
	}

	if err := sch.Validate(doc); err != nil {
		validationErr, ok := err.(*santhosh.ValidationError)
		if !ok {
			return errors.Wrap(err, errors.ErrCodeDescriptorInvalid, "catalog validation failed")
		}
		var messages []string
		schema.CollectErrors(validationErr, &messages)
		return errors.Wrap(err, errors.ErrCodeDescriptorInvalid,
			fmt.Sprintf("catalog does not match the file format:\n%s", strings.Join(messages, "\n")))
	}
	return nil
}
