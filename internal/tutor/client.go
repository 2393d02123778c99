// Package tutor provides the AI chemistry tutor chat.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/chemtutor/internal/llm"
)

const systemPrompt = `You are an extremely patient, expert chemistry teacher. Your job is to help students understand chemistry principles. Answer in a way that is easy to follow yet logically rigorous. Answer in the language the student writes in.`

// Config controls the tutor chat.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended chat settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.6,
	}
}

// Client answers one question at a time. Each question is an independent
// exchange: the tutor does not carry conversation history between turns.
type Client struct {
	provider llm.Provider
	config   Config
}

// NewClient creates a tutor client with the given provider and config.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// Reply answers a single student question.
func (c *Client) Reply(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	ctx = llm.WithPurpose(ctx, "chat")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tutor reply failed: %w", err)
	}

	return strings.TrimSpace(string(resp.Content)), nil
}
