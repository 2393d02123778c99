package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/chemtutor/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved exam analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		records, err := s.ListAnalyses(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list analyses: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No analyses saved yet. Run `chemtutor analyze <image>...` first.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %5s  %5s  %s\n",
			"ID", "Date", "Score", "Pages", "Weak Points")
		fmt.Println(strings.Repeat("─", 100))

		for _, rec := range records {
			weak := truncate(strings.Join(rec.WeakPoints, ", "), 40)
			fmt.Printf("%-36s  %-19s  %5.0f  %5d  %s\n",
				rec.ID,
				rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				rec.OverallScore,
				rec.PageCount,
				weak,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of analyses to show")
}
