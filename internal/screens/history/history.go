package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/ui/theme"
)

const maxListed = 20

// HistoryScreen lists saved analyses and reopens their reports.
type HistoryScreen struct {
	records  []store.AnalysisRecord
	selected int
	loadErr  error
}

var _ screen.Screen = (*HistoryScreen)(nil)

// New creates the history screen, loading recent analyses.
func New(st *store.Store) *HistoryScreen {
	h := &HistoryScreen{}
	if st == nil {
		return h
	}
	h.records, h.loadErr = st.ListAnalyses(context.Background(), maxListed)
	return h
}

func (h *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < len(h.records)-1 {
			h.selected++
		}
	case "enter":
		if h.selected >= 0 && h.selected < len(h.records) {
			rec := h.records[h.selected]
			var report analyze.Report
			if err := json.Unmarshal(rec.Report, &report); err != nil {
				h.loadErr = fmt.Errorf("saved report is unreadable: %w", err)
				return h, nil
			}
			return h, func() tea.Msg {
				return flow.OpenReport{Report: &report}
			}
		}
	}

	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("Past Analyses")

	var body string
	switch {
	case h.loadErr != nil:
		body = theme.Incorrect.Render(h.loadErr.Error())
	case len(h.records) == 0:
		body = theme.Hint.Render("No saved analyses yet. Analyze an exam paper first.")
	default:
		var b strings.Builder
		for i, rec := range h.records {
			line := fmt.Sprintf("%s  %3d分  %d page(s)  %s",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				int(rec.OverallScore),
				rec.PageCount,
				strings.Join(rec.WeakPoints, ", "),
			)
			if i == h.selected {
				b.WriteString(theme.Selected.Render("  ▸ " + line))
			} else {
				b.WriteString(theme.Unselected.Render("    " + line))
			}
			b.WriteByte('\n')
		}
		body = b.String()
	}

	content := title + "\n\n" + body

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(content)
}

func (h *HistoryScreen) Title() string {
	return "History"
}

// KeyHints implements screen.KeyHintProvider.
func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open report"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
