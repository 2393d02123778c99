package analyzing

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemtutor/internal/flow"
)

func TestAnalyzingScreen_Display(t *testing.T) {
	a := New(2)
	view := a.View(80, 24)
	if view == "" {
		t.Error("expected non-empty analyzing view")
	}
}

func TestAnalyzingScreen_EscAbandonsRun(t *testing.T) {
	a := New(2)
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(flow.GoHome); !ok {
		t.Error("Esc must request the home view")
	}
}

func TestAnalyzingScreen_TickAdvancesSpinner(t *testing.T) {
	a := New(1)
	updated, cmd := a.Update(tickMsg{})
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
	if updated.(*AnalyzingScreen).frame != 1 {
		t.Errorf("frame = %d, want 1", updated.(*AnalyzingScreen).frame)
	}
}
