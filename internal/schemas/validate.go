// Package schemas provides JSON Schema validation for structured payloads
// received from external systems, chiefly LLM responses. Schemas are
// embedded at compile time so validation never depends on the working
// directory.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError reports schema violations with field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
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

// ValidateAnalysisResponse checks a raw model reply against the analysis
// response schema. A non-nil error means the reply cannot be trusted and the
// caller should fall back to defaults.
func ValidateAnalysisResponse(jsonText string) error {
	return validate("analysis_response.schema.json", jsonText)
}

func validate(schemaName, jsonText string) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return &ValidationError{
			Schema: schemaName,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: schemaName}
	for _, re := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return verr
}
