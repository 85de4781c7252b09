package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/bpschema/catalog"
	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/logging"
)

const outputDir = "schema/definitions"

func main() {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	catalogSchema, err := catalog.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating catalog schema: %v", err)
	}
	write("catalog.schema.json", catalogSchema)

	configSchema, err := composeConfigSchema()
	if err != nil {
		log.Fatalf("Error generating config schema: %v", err)
	}
	write("bpschema.schema.json", configSchema)
}

// composeConfigSchema adds the logging extension to the core config schema.
func composeConfigSchema() ([]byte, error) {
	base, err := config.GenerateSchema()
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, err
	}

	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	loggingSchema := r.Reflect(&logging.Config{})
	loggingSchema.Description = "Logging extension section."
	// Extension sections never require fields
	loggingSchema.Required = nil
	loggingSchema.Version = ""

	properties, _ := doc["properties"].(map[string]interface{})
	if properties == nil {
		properties = make(map[string]interface{})
		doc["properties"] = properties
	}
	properties["logging"] = loggingSchema

	return json.MarshalIndent(doc, "", "  ")
}

func write(name string, data []byte) {
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.Printf("Successfully generated %s", path)
}
