// Package chat renders the tutor chat as an overlay panel available
// from any screen.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/tutor"
	"github.com/abhisek/chemtutor/internal/ui/components"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

// answerMsg delivers the tutor's reply to the overlay.
type answerMsg struct {
	answer string
	err    error
}

// Model is the chat overlay.
type Model struct {
	session *tutor.Session
	input   components.TextInput
}

// New creates the chat overlay around a tutor session.
func New(session *tutor.Session) Model {
	return Model{
		session: session,
		input:   components.NewTextInput("输入你的化学疑问，如：为什么苯不褪色高锰酸钾？", 0),
	}
}

// Init focuses the input.
func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

// Update handles overlay input and reply delivery.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		m.session.Finish(msg.answer, msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			question := m.input.Value()
			if !m.session.Begin(question) {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg {
				answer, err := m.session.Ask(context.Background(), question)
				return answerMsg{answer: answer, err: err}
			}
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the chat panel.
func (m Model) View(width, height int) string {
	innerWidth := width - 8
	if innerWidth < 24 {
		innerWidth = 24
	}

	header := theme.Title.Render("特级教师 AI") + "  " +
		theme.Correct.Render("● 在线答疑中")

	userStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.Primary).
		Padding(0, 1)
	tutorStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.BgCard).
		Padding(0, 1)

	var b strings.Builder
	for _, msg := range m.session.Messages() {
		wrapped := lipgloss.NewStyle().Width(innerWidth - 4).Render(msg.Content)
		if msg.Role == tutor.RoleUser {
			b.WriteString(lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Right).Render(userStyle.Render(wrapped)))
		} else {
			b.WriteString(tutorStyle.Render(wrapped))
		}
		b.WriteString("\n\n")
	}

	if m.session.Pending() {
		b.WriteString(theme.Hint.Render("AI老师正在思考…"))
		b.WriteString("\n\n")
	}

	transcript := b.String()

	// Keep the latest messages in view when the transcript outgrows
	// the panel.
	maxLines := height - 8
	if maxLines < 3 {
		maxLines = 3
	}
	lines := strings.Split(strings.TrimRight(transcript, "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	transcript = strings.Join(lines, "\n")

	panel := header + "\n\n" + transcript + "\n\n" + m.input.View() + "\n" +
		theme.Hint.Render("Enter to ask, Esc to close")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(panel)
}
