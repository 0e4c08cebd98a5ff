// internal/api/schema.go
package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const coordinateSchema = `{
	"type": "object",
	"properties": {
		"latitude":  {"type": "number", "minimum": -90, "maximum": 90},
		"longitude": {"type": "number", "minimum": -180, "maximum": 180}
	},
	"required": ["latitude", "longitude"],
	"additionalProperties": false
}`

const optionsSchema = `{
	"type": "object",
	"properties": {
		"vehicleType":    {"type": "string", "enum": ["light", "medium", "heavy"]},
		"fuelType":       {"type": "string", "enum": ["standard", "hybrid", "electric"]},
		"cargoWeightKg":  {"type": "number"},
		"includeTraffic": {"type": "boolean"},
		"timeOfDay":      {"type": "string"}
	},
	"additionalProperties": false
}`

var optimizeRequestSchema = fmt.Sprintf(`{
	"type": "object",
	"properties": {
		"id":       {"type": "string"},
		"pickup":   %s,
		"delivery": %s,
		"options":  %s
	},
	"required": ["pickup", "delivery"],
	"additionalProperties": false
}`, coordinateSchema, coordinateSchema, optionsSchema)

var batchRequestSchema = fmt.Sprintf(`{
	"type": "object",
	"properties": {
		"requests": {
			"type": "array",
			"minItems": 1,
			"items": %s
		}
	},
	"required": ["requests"],
	"additionalProperties": false
}`, optimizeRequestSchema)

// validatePayload checks a raw JSON body against a schema and returns a
// flat list of field errors, nil when valid.
func validatePayload(schema string, body []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, e := range result.Errors() {
		errs[i] = strings.TrimSpace(fmt.Sprintf("%s %s", e.Field(), e.Description()))
	}
	return errs, nil
}
