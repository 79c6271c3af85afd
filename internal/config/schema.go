package config

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/vncard.v1.schema.json
var schemaFS embed.FS

const schemaPath = "schema/vncard.v1.schema.json"

// SchemaError is one schema violation.
type SchemaError struct {
	Field       string
	Type        string
	Description string
}

func (e SchemaError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// Schema returns the embedded JSON schema.
func Schema() ([]byte, error) {
	data, err := schemaFS.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load JSON schema: %w", err)
	}
	return data, nil
}

// ValidateSchema checks a YAML document against the embedded schema. It
// returns the violations found; the error is reserved for unreadable input.
func ValidateSchema(data []byte) ([]SchemaError, error) {
	schemaBytes, err := Schema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]SchemaError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, SchemaError{
			Field:       desc.Field(),
			Type:        desc.Type(),
			Description: desc.Description(),
		})
	}
	return errs, nil
}
