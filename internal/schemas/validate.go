// Package schemas provides JSON Schema validation for structured-generation
// responses. Generator output is validated against an explicit schema before
// any field is trusted; anything outside the accepted shapes is rejected
// rather than probed heuristically.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("schema %s: validation failed", e.Schema)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("schema %s: %s", e.Schema, strings.Join(parts, "; "))
}

// ValidatePersonaResponse validates a raw persona generation response.
func ValidatePersonaResponse(jsonText string) error {
	return validate("persona.schema.json", jsonText)
}

// ValidateLocationsResponse validates a raw locations generation response.
func ValidateLocationsResponse(jsonText string) error {
	return validate("locations.schema.json", jsonText)
}

func validate(schemaFile, jsonText string) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Document is not parsable JSON at all
		return &ValidationError{
			Schema: schemaFile,
			Errors: []FieldError{{Field: "(document)", Message: err.Error()}},
		}
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: schemaFile}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
