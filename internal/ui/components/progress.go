package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a horizontal bar colored by grade.
type ScoreBar struct {
	Label string
	Score float64
	Width int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, score float64, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Score: score,
		Width: width,
	}
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	scoreWidth := 7 // "  100分"

	barWidth := p.Width - labelWidth - scoreWidth
	if barWidth < 4 {
		barWidth = 4
	}

	frac := p.Score / 100
	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.ScoreColor(p.Score)).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	result += lipgloss.NewStyle().
		Foreground(theme.ScoreColor(p.Score)).
		Bold(true).
		Render(fmt.Sprintf("  %d分", int(p.Score)))

	return result
}
