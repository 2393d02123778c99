package cmd

import (
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chemtutor",
	Short: "AI chemistry exam tutor",
	Long:  "ChemTutor — AI-native terminal app that grades chemistry exam photos, pinpoints weak topics, and drills them with targeted practice.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHEMTUTOR_DB env var)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CHEMTUTOR_DB env var, then the default user config path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}
