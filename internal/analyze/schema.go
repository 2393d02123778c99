package analyze

import "github.com/abhisek/chemtutor/internal/llm"

// ReportSchema defines the JSON schema for exam analysis responses.
var ReportSchema = &llm.Schema{
	Name:        "chemistry-report",
	Description: "Structured grading of a photographed chemistry exam paper",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overallScore": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     100,
				"description": "Estimated overall score out of 100",
			},
			"weakPoints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Knowledge areas the student is weak in, as short topic names",
			},
			"analyzedQuestions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Question identifier, e.g. its number on the paper",
						},
						"originalText": map[string]any{
							"type":        "string",
							"description": "The question as written on the paper",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "The chemistry topic this question tests",
						},
						"isCorrect": map[string]any{
							"type": "boolean",
						},
						"studentAnswer": map[string]any{
							"type":        "string",
							"description": "What the student wrote, empty if unanswered",
						},
						"correctAnswer": map[string]any{
							"type": "string",
						},
						"explanation": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"principle": map[string]any{
									"type":        "string",
									"description": "The underlying chemistry principle",
								},
								"logic": map[string]any{
									"type":        "string",
									"description": "Step-by-step reasoning to the correct answer",
								},
								"precautions": map[string]any{
									"type":        "string",
									"description": "What to watch out for in this problem type",
								},
								"commonMistakes": map[string]any{
									"type":        "string",
									"description": "Typical errors students make here",
								},
							},
							"required":             []any{"principle", "logic", "precautions", "commonMistakes"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"id", "originalText", "topic", "isCorrect", "studentAnswer", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"overallScore", "weakPoints", "analyzedQuestions"},
		"additionalProperties": false,
	},
}
