// Package flow holds the application's view state machine as a pure
// reducer. The TUI feeds it events and renders whatever state comes
// back; all transition rules live here, testable without a terminal.
package flow

import (
	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/practice"
)

// View is the screen the user is on.
type View int

const (
	ViewHome View = iota
	ViewAnalyzing
	ViewReport
	ViewPractice
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAnalyzing:
		return "analyzing"
	case ViewReport:
		return "report"
	case ViewPractice:
		return "practice"
	default:
		return "unknown"
	}
}

// State is the whole view state. Generation tags each async request so
// a response that arrives after the user moved on is discarded instead
// of clobbering newer state.
type State struct {
	View       View
	Busy       bool
	Generation uint64

	Report    *analyze.Report
	Questions []practice.Question

	// Notice is a user-facing error or status line, empty when clear.
	Notice string
}

// NewState returns the initial state: home screen, idle.
func NewState() State {
	return State{View: ViewHome}
}

// Event is a state machine input.
type Event interface{ isEvent() }

// FilesSelected starts an analysis run. Paths is carried for the side
// effect runner; the transition itself doesn't read it.
type FilesSelected struct {
	Paths []string
}

// AnalysisDone delivers the analysis result for a given generation.
type AnalysisDone struct {
	Generation uint64
	Report     *analyze.Report
	Err        error
}

// PracticeRequested starts drill generation from the current report.
type PracticeRequested struct{}

// PracticeDone delivers generated questions for a given generation.
type PracticeDone struct {
	Generation uint64
	Questions  []practice.Question
	Err        error
}

// OpenReport shows a previously saved report.
type OpenReport struct {
	Report *analyze.Report
}

// BackToReport returns from the practice view to the report.
type BackToReport struct{}

// GoHome abandons the current report and returns to the start screen.
type GoHome struct{}

func (FilesSelected) isEvent()     {}
func (OpenReport) isEvent()        {}
func (AnalysisDone) isEvent()      {}
func (PracticeRequested) isEvent() {}
func (PracticeDone) isEvent()      {}
func (BackToReport) isEvent()      {}
func (GoHome) isEvent()            {}

// Apply computes the next state for an event. Events that don't apply
// in the current state are ignored and return the state unchanged.
func Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case FilesSelected:
		if s.Busy {
			return s
		}
		s.View = ViewAnalyzing
		s.Busy = true
		s.Generation++
		s.Notice = ""
		return s

	case AnalysisDone:
		if ev.Generation != s.Generation {
			// Stale response from an abandoned run.
			return s
		}
		s.Busy = false
		if ev.Err != nil {
			s.View = ViewHome
			s.Notice = ev.Err.Error()
			return s
		}
		// A new analysis replaces the report wholesale, including any
		// drills generated from the previous one.
		s.View = ViewReport
		s.Report = ev.Report
		s.Questions = nil
		s.Notice = ""
		return s

	case OpenReport:
		if s.Busy || ev.Report == nil {
			return s
		}
		s.View = ViewReport
		s.Report = ev.Report
		s.Questions = nil
		s.Notice = ""
		return s

	case PracticeRequested:
		if s.Busy || s.View != ViewReport || s.Report == nil {
			return s
		}
		if len(s.Report.WeakPoints) == 0 {
			s.Notice = "no weak points to practice"
			return s
		}
		s.Busy = true
		s.Generation++
		s.Notice = ""
		return s

	case PracticeDone:
		if ev.Generation != s.Generation {
			return s
		}
		s.Busy = false
		if ev.Err != nil {
			s.Notice = ev.Err.Error()
			return s
		}
		s.View = ViewPractice
		s.Questions = ev.Questions
		s.Notice = ""
		return s

	case BackToReport:
		if s.Busy || s.View != ViewPractice {
			return s
		}
		s.View = ViewReport
		return s

	case GoHome:
		// Leaving mid-call abandons the run: the generation bump makes
		// the in-flight result stale so it is discarded on arrival.
		if s.Busy {
			s.Busy = false
			s.Generation++
		}
		// Report and drills stay in memory; they are just no longer shown.
		s.View = ViewHome
		s.Notice = ""
		return s
	}

	return s
}
