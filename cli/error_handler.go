package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/bpschema/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message tailored to the error code and returns err unchanged
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	schemaErr, _ := errors.As(err)
	detail := func(key string) interface{} {
		if schemaErr == nil {
			return nil
		}
		return schemaErr.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found. Create bpschema.yml or pass --config.\n")

	case errors.ErrCodeSerializerNotFound:
		fmt.Fprintf(h.Out, "❌ Serializer '%v' not found in the catalog\n", detail("serializer"))
		fmt.Fprintf(h.Out, "Run 'bpschema check' to list the serializers the catalog declares.\n")

	case errors.ErrCodeInvalidType:
		fmt.Fprintf(h.Out, "❌ Field '%v' declares an invalid type: %v\n", detail("field"), detail("value"))
		fmt.Fprintf(h.Out, "Allowed types: string, integer, number, boolean, object, array, null\n")

	case errors.ErrCodeConfig:
		fmt.Fprintf(h.Out, "❌ %s\n", messageOf(err, schemaErr))
		if cycle := detail("cycle"); cycle != nil {
			fmt.Fprintf(h.Out, "Break the cycle by removing one association or giving it no blueprint.\n")
		}

	case errors.ErrCodeDescriptorInvalid:
		fmt.Fprintf(h.Out, "❌ Invalid catalog: %s\n", messageOf(err, schemaErr))
		if path := detail("path"); path != nil {
			fmt.Fprintf(h.Out, "File: %v\n", path)
		}
		fmt.Fprintf(h.Out, "Run 'bpschema catalog-schema' to see the expected file format.\n")

	case errors.ErrCodeSchemaInvalid:
		fmt.Fprintf(h.Out, "❌ Generated schema failed validation: %s\n", messageOf(err, schemaErr))

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && schemaErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", schemaErr.ToJSON())
	}
	return err
}

func messageOf(err error, schemaErr *errors.SchemaError) string {
	if schemaErr != nil {
		return schemaErr.Message
	}
	return err.Error()
}
