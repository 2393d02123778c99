package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/ui/theme"
)

// ChoiceOption is one labeled answer option.
type ChoiceOption struct {
	Label string
	Text  string
}

// MultiChoice is a multiple-choice selector keyed by option labels
// (A through D) rather than positions.
type MultiChoice struct {
	Question     string
	Options      []ChoiceOption
	CorrectLabel string
	Selected     int
	Submitted    bool
	ChosenLabel  string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []ChoiceOption, correctLabel string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectLabel: correctLabel,
		Selected:     0,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Options) {
			m.Submitted = true
			m.ChosenLabel = m.Options[m.Selected].Label
		}
	}

	return m, nil
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s.  %s", prefix, opt.Label, opt.Text)

		if m.Submitted {
			switch {
			case opt.Label == m.CorrectLabel:
				s += theme.Correct.Render(line) + "\n"
			case opt.Label == m.ChosenLabel:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	return s
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenLabel == m.CorrectLabel
}
