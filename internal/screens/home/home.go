package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/router"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/screens/history"
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/abhisek/chemtutor/internal/ui/components"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

// HomeScreen is the entry screen: start an analysis or browse history.
type HomeScreen struct {
	menu     components.Menu
	input    components.TextInput
	entering bool
	notice   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. notice carries a failure message from an
// abandoned analysis run, empty otherwise.
func New(st *store.Store, notice string) *HomeScreen {
	h := &HomeScreen{notice: notice}

	items := []components.MenuItem{
		{Label: "ANALYZE EXAM PAPER", Action: func() tea.Cmd {
			return func() tea.Msg { return startEntryMsg{} }
		}},
		{Label: "HISTORY", Disabled: st == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.input = components.NewTextInput("photos of your exam paper, e.g. page1.jpg page2.jpg", 0)
	return h
}

// startEntryMsg switches the home screen into path entry mode.
type startEntryMsg struct{}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startEntryMsg:
		h.entering = true
		h.notice = ""
		return h, h.input.Init()

	case tea.KeyMsg:
		if !h.entering {
			var cmd tea.Cmd
			h.menu, cmd = h.menu.Update(msg)
			return h, cmd
		}

		switch msg.String() {
		case "esc":
			h.entering = false
			h.input.Reset()
			return h, nil
		case "enter":
			paths := strings.Fields(h.input.Value())
			if len(paths) == 0 {
				return h, nil
			}
			h.entering = false
			h.input.Reset()
			return h, func() tea.Msg {
				return flow.FilesSelected{Paths: paths}
			}
		}

		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("ChemTutor")
	subtitle := theme.Subtitle.Width(width).Render("AI analysis for chemistry exam papers")

	var body string
	if h.entering {
		prompt := theme.Body.Render("Paths to exam page images, separated by spaces:")
		body = prompt + "\n\n" + h.input.View() + "\n\n" +
			theme.Hint.Render("Enter to analyze, Esc to cancel")
	} else {
		body = h.menu.View()
	}

	sections := []string{title, subtitle, "", body}
	if h.notice != "" {
		sections = append(sections, "", theme.Notice.Render(h.notice))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Padding(0, 4).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints implements screen.KeyHintProvider.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.entering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Analyze"},
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
