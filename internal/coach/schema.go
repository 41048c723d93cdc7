package coach

import "github.com/abhisek/examlens/internal/llm"

// PlanSchema defines the JSON schema for a weekly study plan.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A short study plan built from an aspirant's dashboard metrics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One sentence naming the single most important change (8-20 words)",
			},
			"focus_areas": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area": map[string]any{
							"type":        "string",
							"description": "Subject, question pattern or habit to work on",
						},
						"action": map[string]any{
							"type":        "string",
							"description": "Concrete practice instruction (1-2 sentences)",
						},
					},
					"required":             []any{"area", "action"},
					"additionalProperties": false,
				},
			},
			"daily_drill": map[string]any{
				"type":        "array",
				"minItems":    1,
				"maxItems":    5,
				"items":       map[string]any{"type": "string"},
				"description": "Short daily routine steps (5-15 words each)",
			},
		},
		"required":             []any{"headline", "focus_areas", "daily_drill"},
		"additionalProperties": false,
	},
}
