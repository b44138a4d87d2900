package llm

import (
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// BuildCircularJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every field is required and exactly typed; "Not Provided" is an ordinary string,
// so absent information still validates while absent keys do not.
func BuildCircularJSONSchema() map[string]any {
	props := make(map[string]any, len(entity.CircularFields))
	for _, f := range entity.CircularFields {
		if _, ok := entity.ListFields[f]; ok {
			props[f] = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
			continue
		}
		props[f] = map[string]any{"type": "string"}
	}

	required := make([]string, len(entity.CircularFields))
	copy(required, entity.CircularFields)

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
