package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Request schemas (draft 2020-12 subset) validated before decoding, so the
// handlers only ever see well-shaped payloads.

func buildCalculateSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"principal":  decimalProp(),
			"rate":       decimalProp(),
			"start_date": dateProp(),
			"end_date":   dateProp(),
		},
		"required": []string{"principal", "rate", "start_date", "end_date"},
	}
}

func buildReconcileSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"record": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"principal_amount":       decimalProp(),
					"interest_rate":          decimalProp(),
					"start_date":             dateProp(),
					"end_date":               dateProp(),
					"notice_interest_amount": decimalProp(),
					"confidence": map[string]any{
						"type": "object",
						"additionalProperties": map[string]any{
							"type": "number", "minimum": 0.0, "maximum": 1.0,
						},
					},
				},
			},
			"calculation": map[string]any{
				"type":                 "object",
				"additionalProperties": true,
				"properties": map[string]any{
					"expected_interest": decimalProp(),
					"days_calculated":   map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []string{"expected_interest"},
			},
		},
		"required": []string{"record", "calculation"},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

func dateProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
