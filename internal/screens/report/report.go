package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/ui/components"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

// ReportScreen shows the graded exam: score, weak points, and the
// per-question breakdown with expandable explanations.
type ReportScreen struct {
	report     *analyze.Report
	selected   int
	expanded   map[int]bool
	generating bool
	notice     string
}

var _ screen.Screen = (*ReportScreen)(nil)

// New creates the report screen. generating marks an in-flight practice
// request; notice carries a failure line from the last one.
func New(rep *analyze.Report, notice string, generating bool) *ReportScreen {
	return &ReportScreen{
		report:     rep,
		expanded:   make(map[int]bool),
		generating: generating,
		notice:     notice,
	}
}

func (r *ReportScreen) Init() tea.Cmd {
	return nil
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	if r.generating {
		return r, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if r.selected > 0 {
			r.selected--
		}
	case "down", "j":
		if r.selected < len(r.report.AnalyzedQuestions)-1 {
			r.selected++
		}
	case "enter":
		r.expanded[r.selected] = !r.expanded[r.selected]
	case "p":
		if len(r.report.WeakPoints) == 0 {
			return r, nil
		}
		r.generating = true
		return r, func() tea.Msg { return flow.PracticeRequested{} }
	case "esc", "h":
		return r, func() tea.Msg { return flow.GoHome{} }
	}

	return r, nil
}

func (r *ReportScreen) View(width, height int) string {
	innerWidth := width - 8
	if innerWidth < 20 {
		innerWidth = 20
	}

	var b strings.Builder

	bar := components.NewScoreBar("Overall", r.report.OverallScore, innerWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Render("Weak points: "))
	if len(r.report.WeakPoints) == 0 {
		b.WriteString(theme.Hint.Render("none found"))
	} else {
		b.WriteString(theme.Notice.Render(strings.Join(r.report.WeakPoints, " · ")))
	}
	b.WriteString("\n\n")

	correct := r.report.CorrectCount()
	total := len(r.report.AnalyzedQuestions)
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d questions correct", correct, total)))
	b.WriteString("\n\n")

	for i, q := range r.report.AnalyzedQuestions {
		b.WriteString(r.renderQuestion(i, q, innerWidth))
	}

	switch {
	case r.generating:
		b.WriteString("\n" + theme.Notice.Render("Generating practice questions..."))
	case r.notice != "":
		b.WriteString("\n" + theme.Incorrect.Render(r.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(b.String())
}

func (r *ReportScreen) renderQuestion(i int, q analyze.QuestionAnalysis, width int) string {
	mark := theme.Correct.Render("✓")
	if !q.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}

	prefix := "  "
	style := theme.Unselected
	if i == r.selected {
		prefix = "▸ "
		style = theme.Selected
	}

	head := fmt.Sprintf("%s%s [%s] %s", prefix, mark, q.Topic, truncate(q.OriginalText, width-20))
	out := style.Render(head) + "\n"

	if r.expanded[i] {
		detail := fmt.Sprintf(
			"    Your answer: %s\n    Correct answer: %s\n\n    原理讲解: %s\n    逻辑推导: %s\n    注意事项: %s\n    易错点: %s\n",
			q.StudentAnswer, q.CorrectAnswer,
			q.Explanation.Principle, q.Explanation.Logic,
			q.Explanation.Precautions, q.Explanation.CommonMistakes,
		)
		out += theme.Body.Render(detail) + "\n"
	}

	return out
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func (r *ReportScreen) Title() string {
	return "Report"
}

// KeyHints implements screen.KeyHintProvider.
func (r *ReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
	}
	if len(r.report.WeakPoints) > 0 {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Practice"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}
