package llm

import (
	"encoding/base64"
	"testing"

	"google.golang.org/genai"
)

func TestResolveModel_Gemini(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
		{"some-future-model", "some-future-model"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildGeminiContents_Roles(t *testing.T) {
	contents, err := buildGeminiContents(Request{
		Messages: []Message{
			{Role: RoleUser, Content: "What is a mole?"},
			{Role: RoleAssistant, Content: "A mole is 6.022e23 particles."},
			{Role: RoleUser, Content: "And molarity?"},
		},
	})
	if err != nil {
		t.Fatalf("buildGeminiContents: %v", err)
	}
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("expected role user, got %q", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("expected role model, got %q", contents[1].Role)
	}
	if contents[2].Parts[0].Text != "And molarity?" {
		t.Errorf("unexpected text: %q", contents[2].Parts[0].Text)
	}
}

func TestBuildGeminiContents_Images(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4e, 0x47}
	req := Request{
		Messages: []Message{
			{Role: RoleUser, Content: "Grade this exam page."},
		},
		Images: []Image{
			{Data: base64.StdEncoding.EncodeToString(png), MIMEType: "image/png"},
			{Data: base64.StdEncoding.EncodeToString([]byte("jpegdata")), MIMEType: "image/jpeg"},
		},
	}

	contents, err := buildGeminiContents(req)
	if err != nil {
		t.Fatalf("buildGeminiContents: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}

	parts := contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected text part plus 2 image parts, got %d", len(parts))
	}
	if parts[0].Text != "Grade this exam page." {
		t.Errorf("text part should come first, got %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/png" {
		t.Errorf("expected first image part png, got %+v", parts[1].InlineData)
	}
	if string(parts[1].InlineData.Data) != string(png) {
		t.Errorf("image bytes not decoded correctly")
	}
	if parts[2].InlineData == nil || parts[2].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("expected second image part jpeg, got %+v", parts[2].InlineData)
	}
}

func TestBuildGeminiContents_ImagesRequireMessage(t *testing.T) {
	_, err := buildGeminiContents(Request{
		Images: []Image{{Data: "aGk=", MIMEType: "image/png"}},
	})
	if err == nil {
		t.Fatal("expected error when images have no user message to attach to")
	}
}

func TestBuildGeminiContents_BadBase64(t *testing.T) {
	_, err := buildGeminiContents(Request{
		Messages: []Message{{Role: RoleUser, Content: "grade"}},
		Images:   []Image{{Data: "not base64!!!", MIMEType: "image/png"}},
	})
	if err == nil {
		t.Fatal("expected error for invalid base64 image data")
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "An exam report",
		"properties": map[string]any{
			"overallScore": map[string]any{"type": "number"},
			"weakPoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"verdict": map[string]any{
				"type": "string",
				"enum": []any{"pass", "fail"},
			},
		},
		"required": []any{"overallScore", "weakPoints"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Errorf("expected object type, got %v", schema.Type)
	}
	if schema.Description != "An exam report" {
		t.Errorf("unexpected description: %q", schema.Description)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["overallScore"].Type != genai.TypeNumber {
		t.Errorf("expected number type for overallScore")
	}
	wp := schema.Properties["weakPoints"]
	if wp.Type != genai.TypeArray || wp.Items == nil || wp.Items.Type != genai.TypeString {
		t.Errorf("weakPoints array schema not built: %+v", wp)
	}
	if len(schema.Properties["verdict"].Enum) != 2 {
		t.Errorf("enum values not carried over")
	}
	if len(schema.Required) != 2 {
		t.Errorf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapGeminiType(t *testing.T) {
	tests := []struct {
		in   string
		want genai.Type
	}{
		{"string", genai.TypeString},
		{"number", genai.TypeNumber},
		{"integer", genai.TypeInteger},
		{"boolean", genai.TypeBoolean},
		{"array", genai.TypeArray},
		{"object", genai.TypeObject},
		{"weird", genai.TypeString},
	}
	for _, tt := range tests {
		if got := mapGeminiType(tt.in); got != tt.want {
			t.Errorf("mapGeminiType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}
