// pkg/schemas/validate.go
package schemas

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var (
	requestSchema  = mustCompile(PitchRequestSchema)
	responseSchema = mustCompile(PitchResponseSchema)
	healthSchema   = mustCompile(HealthResponseSchema)
)

func mustCompile(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// ValidateRequest checks a raw request body against the request schema
// and returns one human-readable issue per violation.
func ValidateRequest(body []byte) ([]string, error) {
	return validate(requestSchema, body)
}

// ValidateResponse checks a serialized response envelope.
func ValidateResponse(body []byte) ([]string, error) {
	return validate(responseSchema, body)
}

// ValidateHealth checks a serialized health report.
func ValidateHealth(body []byte) ([]string, error) {
	return validate(healthSchema, body)
}

func validate(schema *gojsonschema.Schema, body []byte) ([]string, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		issues[i] = desc.String()
	}
	return issues, nil
}
