package practice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/chemtutor/internal/llm"
)

// Generator produces practice question sets from weak points.
type Generator interface {
	Generate(ctx context.Context, weakPoints []string) ([]Question, error)
}

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// SchemaError indicates the LLM reply could not be parsed into a
// question set.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("practice response did not match the expected format: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionSetOutput is the raw LLM response before validation.
type questionSetOutput struct {
	Questions []Question `json:"questions"`
}

// Generate produces a validated drill set for the given weak points.
func (g *LLMGenerator) Generate(ctx context.Context, weakPoints []string) ([]Question, error) {
	if len(weakPoints) == 0 {
		return nil, fmt.Errorf("no weak points to target")
	}

	ctx = llm.WithPurpose(ctx, "practice-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(weakPoints)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			return nil, &SchemaError{Err: err}
		}
		return nil, fmt.Errorf("practice generation failed: %w", err)
	}

	var raw questionSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &SchemaError{Err: err}
	}

	questions := raw.Questions
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
	}

	if err := validateQuestions(questions); err != nil {
		return nil, &SchemaError{Err: err}
	}

	return questions, nil
}
