package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	bperrors "github.com/grovetools/bpschema/errors"
)

const generatedResource = "generated.schema.json"

// MetaValidate checks that a generated schema is itself a well-formed
// draft-07 JSON Schema by compiling it against the meta-schema.
func MetaValidate(s *Schema) error {
	data, err := json.Marshal(s)
	if err != nil {
		return bperrors.Wrap(err, bperrors.ErrCodeInternal, "failed to marshal generated schema")
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(generatedResource, bytes.NewReader(data)); err != nil {
		return bperrors.Wrap(err, bperrors.ErrCodeSchemaInvalid, "generated schema is not valid JSON")
	}

	if _, err := compiler.Compile(generatedResource); err != nil {
		var messages []string
		if schemaErr, ok := err.(*jsonschema.SchemaError); ok {
			if validationErr, ok := schemaErr.Err.(*jsonschema.ValidationError); ok {
				CollectErrors(validationErr, &messages)
			}
		}
		if len(messages) == 0 {
			return bperrors.Wrap(err, bperrors.ErrCodeSchemaInvalid, "generated schema failed meta-validation")
		}
		return bperrors.Wrap(err, bperrors.ErrCodeSchemaInvalid,
			fmt.Sprintf("generated schema failed meta-validation:\n%s", strings.Join(messages, "\n")))
	}

	return nil
}

// CollectErrors recursively collects all validation errors into a slice
func CollectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.Message != "" && len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		CollectErrors(cause, messages)
	}
}
