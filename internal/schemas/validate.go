// Package schemas checks configuration documents against the embedded JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigSchema is the JSON Schema for ad_agent configuration files.
//
//go:embed config.schema.json
var ConfigSchema []byte

// configSchema compiles ConfigSchema once.
var configSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(ConfigSchema))
})

// ValidationError lists every place where a document breaks the schema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one schema violation. Field is a dotted path, "(root)" for the document itself.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "config validation failed: " + strings.Join(parts, "; ")
}

// DocumentError is returned when the schema or the document cannot be read as JSON.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// ValidateConfig validates a JSON configuration document against ConfigSchema.
func ValidateConfig(document []byte) error {
	schema, err := configSchema()
	if err != nil {
		return &DocumentError{Message: "failed to compile config schema", Cause: err}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &DocumentError{Message: "failed to read config document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := result.Errors()
	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(violations))}
	for _, desc := range violations {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
