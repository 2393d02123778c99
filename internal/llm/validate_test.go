package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-analysis",
		Description: "A test analysis object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":     map[string]any{"type": "string"},
				"score":     map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				"isCorrect": map[string]any{"type": "boolean"},
				"verdict":   map[string]any{"type": "string", "enum": []any{"correct", "incorrect", "partial"}},
			},
			"required": []any{"topic", "score"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"topic":"redox","score":78,"isCorrect":true,"verdict":"correct"}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"topic":"equilibrium","score":55}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"topic":"ionization"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"topic":"stoichiometry","score":"high"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"topic":"redox","score":40,"verdict":"unsure"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"principle": map[string]any{"type": "string"},
					},
					"required": []any{"principle"},
				},
				"weakPoints": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"explanation"},
		},
	}

	valid := json.RawMessage(`{"explanation":{"principle":"Le Chatelier"},"weakPoints":["equilibrium"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"explanation":{},"weakPoints":["equilibrium"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for missing nested required field")
	}
}
