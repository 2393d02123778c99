package analyzing

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg advances the spinner animation.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// AnalyzingScreen shows progress while the exam paper is being graded.
type AnalyzingScreen struct {
	pageCount int
	frame     int
	started   time.Time
}

var _ screen.Screen = (*AnalyzingScreen)(nil)

// New creates the analyzing screen for a run over pageCount pages.
func New(pageCount int) *AnalyzingScreen {
	return &AnalyzingScreen{
		pageCount: pageCount,
		started:   time.Now(),
	}
}

func (a *AnalyzingScreen) Init() tea.Cmd {
	return tick()
}

func (a *AnalyzingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		a.frame = (a.frame + 1) % len(spinnerFrames)
		return a, tick()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return a, func() tea.Msg { return flow.GoHome{} }
		}
	}
	return a, nil
}

func (a *AnalyzingScreen) View(width, height int) string {
	spinner := theme.Selected.Render(spinnerFrames[a.frame])
	elapsed := time.Since(a.started).Round(time.Second)

	lines := fmt.Sprintf("%s  Analyzing your exam paper...\n\n%s",
		spinner,
		theme.Hint.Render(fmt.Sprintf("%d page(s) · %s elapsed", a.pageCount, elapsed)),
	)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(lines)
}

func (a *AnalyzingScreen) Title() string {
	return "Analyzing"
}

// KeyHints implements screen.KeyHintProvider.
func (a *AnalyzingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
