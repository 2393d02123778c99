package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/chemtutor/internal/llm"
	"github.com/abhisek/chemtutor/internal/upload"
)

// Config controls the behavior of the Analyzer.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended analysis settings. Grading wants
// low temperature: the report must be reproducible, not creative.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.2,
	}
}

// SchemaError indicates the LLM reply could not be parsed into a report.
// It is distinct from transport errors so the UI can tell the student
// "the reply was garbled" rather than "the service is down".
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("analysis response did not match the expected format: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Analyzer grades exam papers using an LLM provider.
type Analyzer struct {
	provider llm.Provider
	config   Config
}

// New creates an Analyzer with the given provider and config.
func New(provider llm.Provider, cfg Config) *Analyzer {
	return &Analyzer{provider: provider, config: cfg}
}

// Analyze grades the given exam pages and returns a structured report.
func (a *Analyzer) Analyze(ctx context.Context, pages []upload.Payload) (*Report, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to analyze")
	}

	ctx = llm.WithPurpose(ctx, "exam-analysis")

	names := make([]string, len(pages))
	images := make([]llm.Image, len(pages))
	for i, p := range pages {
		names[i] = p.Name
		images[i] = llm.Image{Data: p.Base64, MIMEType: p.MIMEType}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(names)},
		},
		Images:      images,
		Schema:      ReportSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			return nil, &SchemaError{Err: err}
		}
		return nil, fmt.Errorf("exam analysis failed: %w", err)
	}

	var report Report
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, &SchemaError{Err: err}
	}

	// The model sometimes leaves IDs blank despite the schema asking
	// for them. Every question needs a stable ID for the UI.
	for i := range report.AnalyzedQuestions {
		if report.AnalyzedQuestions[i].ID == "" {
			report.AnalyzedQuestions[i].ID = uuid.NewString()
		}
	}

	return &report, nil
}
