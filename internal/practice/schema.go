package practice

import "github.com/abhisek/chemtutor/internal/llm"

// QuestionSetSchema defines the JSON schema for generated drill sets.
// The root is an object rather than a bare array: strict-mode structured
// output on some providers only accepts object roots.
var QuestionSetSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "A set of chemistry multiple-choice practice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuestionCount,
				"maxItems": QuestionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Unique question identifier",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The question stem",
						},
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"A": map[string]any{"type": "string"},
								"B": map[string]any{"type": "string"},
								"C": map[string]any{"type": "string"},
								"D": map[string]any{"type": "string"},
							},
							"required":             []any{"A", "B", "C", "D"},
							"additionalProperties": false,
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Label of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Detailed worked explanation of the correct answer",
						},
					},
					"required":             []any{"id", "text", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
