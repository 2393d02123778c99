package drill

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/practice"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/ui/components"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

const exportName = "高考化学强化训练题.txt"

// DrillScreen runs the generated practice questions one at a time.
type DrillScreen struct {
	questions []practice.Question
	choices   []components.MultiChoice
	current   int
	status    string
}

var _ screen.Screen = (*DrillScreen)(nil)

// New creates the drill screen for a generated question set.
func New(questions []practice.Question) *DrillScreen {
	choices := make([]components.MultiChoice, len(questions))
	for i, q := range questions {
		opts := make([]components.ChoiceOption, 0, len(practice.OptionLabels))
		for _, label := range practice.OptionLabels {
			opts = append(opts, components.ChoiceOption{Label: label, Text: q.Options[label]})
		}
		choices[i] = components.NewMultiChoice(q.Text, opts, q.CorrectAnswer)
	}
	return &DrillScreen{
		questions: questions,
		choices:   choices,
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	return nil
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch kmsg.String() {
	case "left", "p":
		if d.current > 0 {
			d.current--
			d.status = ""
		}
		return d, nil
	case "right", "n":
		if d.current < len(d.questions)-1 {
			d.current++
			d.status = ""
		}
		return d, nil
	case "x":
		if err := practice.ExportFile(exportName, d.questions); err != nil {
			d.status = err.Error()
		} else {
			d.status = "Saved to " + exportName
		}
		return d, nil
	case "esc", "b":
		return d, func() tea.Msg { return flow.BackToReport{} }
	}

	var cmd tea.Cmd
	d.choices[d.current], cmd = d.choices[d.current].Update(kmsg)
	return d, cmd
}

func (d *DrillScreen) View(width, height int) string {
	if len(d.questions) == 0 {
		return theme.Hint.Render("No questions to practice.")
	}

	var b strings.Builder

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d / %d", d.current+1, len(d.questions))))
	b.WriteString("\n\n")

	choice := d.choices[d.current]
	b.WriteString(choice.View())

	if choice.Submitted {
		b.WriteByte('\n')
		if choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("答对了！"))
		} else {
			b.WriteString(theme.Incorrect.Render("答案：" + d.questions[d.current].CorrectAnswer))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("解析：" + d.questions[d.current].Explanation))
		b.WriteByte('\n')
	}

	if d.status != "" {
		b.WriteString("\n" + theme.Notice.Render(d.status))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(b.String())
}

func (d *DrillScreen) Title() string {
	return "Practice"
}

// KeyHints implements screen.KeyHintProvider.
func (d *DrillScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "X", Description: "Export"},
		{Key: "Esc", Description: "Report"},
	}
}
