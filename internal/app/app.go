package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/flow"
	"github.com/abhisek/chemtutor/internal/llm"
	"github.com/abhisek/chemtutor/internal/practice"
	"github.com/abhisek/chemtutor/internal/router"
	"github.com/abhisek/chemtutor/internal/screen"
	"github.com/abhisek/chemtutor/internal/screens/analyzing"
	"github.com/abhisek/chemtutor/internal/screens/chat"
	"github.com/abhisek/chemtutor/internal/screens/drill"
	"github.com/abhisek/chemtutor/internal/screens/home"
	"github.com/abhisek/chemtutor/internal/screens/report"
	"github.com/abhisek/chemtutor/internal/store"
	"github.com/abhisek/chemtutor/internal/tutor"
	"github.com/abhisek/chemtutor/internal/ui/layout"
	"github.com/abhisek/chemtutor/internal/upload"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Provider llm.Provider
	Store    *store.Store
}

// AppModel is the root Bubble Tea model. It owns the view state machine
// and reconciles the screen stack with whatever state comes out of it.
type AppModel struct {
	provider  llm.Provider
	st        *store.Store
	analyzer  *analyze.Analyzer
	generator practice.Generator

	state     flow.State
	router    *router.Router
	pageCount int

	chat     chat.Model
	chatOpen bool

	width  int
	height int
}

// newAppModel creates the root model with the home screen active.
func newAppModel(opts Options) AppModel {
	return AppModel{
		provider:  opts.Provider,
		st:        opts.Store,
		analyzer:  analyze.New(opts.Provider, analyze.DefaultConfig()),
		generator: practice.New(opts.Provider, practice.DefaultConfig()),
		state:     flow.NewState(),
		router:    router.New(home.New(opts.Store, "")),
		chat:      chat.New(tutor.NewSession(tutor.NewClient(opts.Provider, tutor.DefaultConfig()))),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flow.Event:
		return m.applyEvent(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.chatOpen = !m.chatOpen
			if m.chatOpen {
				return m, m.chat.Init()
			}
			return m, nil
		case "esc":
			if m.chatOpen {
				m.chatOpen = false
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

		if m.chatOpen {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}

		cmd := m.router.Update(msg)
		return m, cmd
	}

	// Non-key messages reach the overlay even when it is closed, so a
	// tutor reply still lands after the user hides the panel.
	var chatCmd tea.Cmd
	m.chat, chatCmd = m.chat.Update(msg)
	routerCmd := m.router.Update(msg)
	return m, tea.Batch(chatCmd, routerCmd)
}

// applyEvent runs the reducer, fires side effects for accepted
// transitions, and reconciles the screen stack.
func (m AppModel) applyEvent(ev flow.Event) (tea.Model, tea.Cmd) {
	prev := m.state
	m.state = flow.Apply(m.state, ev)

	var cmds []tea.Cmd

	switch ev := ev.(type) {
	case flow.FilesSelected:
		if m.state.Busy && !prev.Busy {
			m.pageCount = len(ev.Paths)
			cmds = append(cmds, m.runAnalysis(m.state.Generation, ev.Paths))
		}
	case flow.PracticeRequested:
		if m.state.Busy && !prev.Busy {
			cmds = append(cmds, m.runPractice(m.state.Generation, m.state.Report.WeakPoints))
		}
	}

	if cmd := m.syncScreens(prev); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// runAnalysis encodes the pages, grades them, and persists the report.
func (m AppModel) runAnalysis(generation uint64, paths []string) tea.Cmd {
	analyzer := m.analyzer
	st := m.st
	return func() tea.Msg {
		ctx := context.Background()

		pages, err := upload.EncodeFiles(ctx, paths)
		if err != nil {
			return flow.AnalysisDone{Generation: generation, Err: analysisFailure(err)}
		}

		rep, err := analyzer.Analyze(ctx, pages)
		if err != nil {
			return flow.AnalysisDone{Generation: generation, Err: analysisFailure(err)}
		}

		if st != nil {
			rec := store.AnalysisRecord{
				ID:           uuid.NewString(),
				CreatedAt:    time.Now(),
				OverallScore: rep.OverallScore,
				WeakPoints:   rep.WeakPoints,
				PageCount:    len(pages),
			}
			if data, merr := json.Marshal(rep); merr == nil {
				rec.Report = data
				if serr := st.SaveAnalysis(ctx, rec); serr != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to save analysis: %v\n", serr)
				}
			}
		}

		return flow.AnalysisDone{Generation: generation, Report: rep}
	}
}

// analysisFailure converts an internal error into the notice shown on
// the home screen.
func analysisFailure(err error) error {
	var decodeErr *upload.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("读取文件失败: %v", decodeErr.Err)
	}
	var schemaErr *analyze.SchemaError
	if errors.As(err, &schemaErr) {
		return errors.New("AI返回的数据格式有误，请重新拍摄更清晰的试卷照片后重试")
	}
	return fmt.Errorf("分析失败: %v。请确保上传了清晰且多页内容连贯的试卷", err)
}

// runPractice generates a drill set for the report's weak points.
func (m AppModel) runPractice(generation uint64, weakPoints []string) tea.Cmd {
	generator := m.generator
	return func() tea.Msg {
		questions, err := generator.Generate(context.Background(), weakPoints)
		if err != nil {
			err = fmt.Errorf("题目生成失败，请稍后重试 (%v)", err)
		}
		return flow.PracticeDone{Generation: generation, Questions: questions, Err: err}
	}
}

// syncScreens rebuilds the active screen when the state machine moved.
func (m *AppModel) syncScreens(prev flow.State) tea.Cmd {
	if m.state.View == prev.View && m.state.Busy == prev.Busy && m.state.Notice == prev.Notice {
		return nil
	}

	switch m.state.View {
	case flow.ViewHome:
		return m.router.Reset(home.New(m.st, m.state.Notice))
	case flow.ViewAnalyzing:
		return m.router.Reset(analyzing.New(m.pageCount))
	case flow.ViewReport:
		return m.router.Reset(report.New(m.state.Report, m.state.Notice, m.state.Busy))
	case flow.ViewPractice:
		return m.router.Reset(drill.New(m.state.Questions))
	}
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	if m.chatOpen {
		title = "AI Tutor"
	}

	status := ""
	if m.provider != nil {
		status = m.provider.ModelID() + "  "
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	var content string
	if m.chatOpen {
		content = m.chat.View(m.width, contentHeight)
	} else {
		content = m.router.View(m.width, contentHeight)
	}

	frame := layout.RenderFrame(header, content, footer, m.width, m.height)
	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if m.chatOpen {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Close"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	if provider, ok := active.(screen.KeyHintProvider); ok {
		hints := provider.KeyHints()
		return append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Tutor"})
	}

	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+T", Description: "Tutor"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
