package cmd

import (
	"fmt"

	"github.com/abhisek/chemtutor/internal/app"
	"github.com/abhisek/chemtutor/internal/llm"
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the provider, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w\n\nSet GEMINI_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY or OPENROUTER_API_KEY", err)
	}

	return app.Run(app.Options{
		Provider: provider,
		Store:    st,
	})
}
