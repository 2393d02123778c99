package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/llm"
	"github.com/abhisek/chemtutor/internal/practice"
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/abhisek/chemtutor/internal/upload"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>...",
	Short: "Grade exam photos without the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		withPractice, _ := cmd.Flags().GetBool("practice")
		exportPath, _ := cmd.Flags().GetString("export")

		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(ctx, st)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		pages, err := upload.EncodeFiles(ctx, args)
		if err != nil {
			return fmt.Errorf("read exam pages: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Analyzing %d page(s) with %s...\n", len(pages), provider.ModelID())

		analyzer := analyze.New(provider, analyze.DefaultConfig())
		rep, err := analyzer.Analyze(ctx, pages)
		if err != nil {
			return fmt.Errorf("analyze exam: %w", err)
		}

		if err := saveReport(ctx, st, rep, len(pages)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save analysis: %v\n", err)
		}

		if asJSON {
			out, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printReport(rep)
		}

		if !withPractice {
			return nil
		}

		fmt.Fprintln(os.Stderr, "Generating practice questions...")
		gen := practice.New(provider, practice.DefaultConfig())
		questions, err := gen.Generate(ctx, rep.WeakPoints)
		if err != nil {
			return fmt.Errorf("generate practice: %w", err)
		}

		if asJSON {
			out, err := json.MarshalIndent(questions, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			fmt.Println()
			if err := practice.WriteText(os.Stdout, questions); err != nil {
				return err
			}
		}

		if exportPath != "" {
			if err := practice.ExportFile(exportPath, questions); err != nil {
				return fmt.Errorf("export practice file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Saved practice set to %s\n", exportPath)
		}

		return nil
	},
}

func saveReport(ctx context.Context, st *store.Store, rep *analyze.Report, pageCount int) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return st.SaveAnalysis(ctx, store.AnalysisRecord{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		OverallScore: rep.OverallScore,
		WeakPoints:   rep.WeakPoints,
		PageCount:    pageCount,
		Report:       data,
	})
}

func printReport(rep *analyze.Report) {
	sep := strings.Repeat("─", 72)

	fmt.Println(sep)
	fmt.Printf("Overall score: %.0f / 100\n", rep.OverallScore)
	if len(rep.WeakPoints) > 0 {
		fmt.Printf("Weak points:   %s\n", strings.Join(rep.WeakPoints, " · "))
	}
	fmt.Printf("Questions:     %d of %d correct\n", rep.CorrectCount(), len(rep.AnalyzedQuestions))
	fmt.Println(sep)

	for i, q := range rep.AnalyzedQuestions {
		mark := "✓"
		if !q.IsCorrect {
			mark = "✗"
		}
		fmt.Printf("%s [%s] %s\n", mark, q.Topic, q.OriginalText)
		if !q.IsCorrect {
			fmt.Printf("  Your answer:    %s\n", q.StudentAnswer)
			fmt.Printf("  Correct answer: %s\n", q.CorrectAnswer)
			fmt.Printf("  原理讲解: %s\n", q.Explanation.Principle)
			fmt.Printf("  逻辑推导: %s\n", q.Explanation.Logic)
			fmt.Printf("  注意事项: %s\n", q.Explanation.Precautions)
			fmt.Printf("  易错点:   %s\n", q.Explanation.CommonMistakes)
		}
		if i < len(rep.AnalyzedQuestions)-1 {
			fmt.Println()
		}
	}
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the raw report as JSON")
	analyzeCmd.Flags().Bool("practice", false, "Also generate practice questions for the weak points")
	analyzeCmd.Flags().String("export", "", "Write the practice set to a text file (requires --practice)")
}
