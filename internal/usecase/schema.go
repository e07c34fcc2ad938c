package usecase

import "gift-suggest-core/internal/domain/entity"

const suggestionSchemaName = "gift_suggestions"

// suggestionFields are the required string properties of every suggestion, in schema order.
var suggestionFields = []string{"title", "reason", "category", "priceHint"}

// SuggestionSchema returns the strict JSON schema the backend must answer with.
// A new map is built on every call so adapters may mutate their copy.
func SuggestionSchema() map[string]any {
	properties := make(map[string]any, len(suggestionFields))
	required := make([]any, 0, len(suggestionFields))
	for _, f := range suggestionFields {
		properties[f] = map[string]any{"type": "string"}
		required = append(required, f)
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":     "array",
				"minItems": entity.SuggestionCount,
				"maxItems": entity.SuggestionCount,
				"items": map[string]any{
					"type":                 "object",
					"properties":           properties,
					"required":             required,
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	}
}
