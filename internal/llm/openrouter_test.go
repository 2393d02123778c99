package llm

import "testing"

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewOpenRouterProvider_ModelPassthrough(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "test-key",
		Model:  "google/gemini-2.5-flash",
	})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	// OpenRouter model IDs are already fully qualified and pass through
	// the friendly-name map unchanged.
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("unexpected model id: %q", p.ModelID())
	}
}
