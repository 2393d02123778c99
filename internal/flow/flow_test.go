package flow

import (
	"errors"
	"testing"

	"github.com/abhisek/chemtutor/internal/analyze"
	"github.com/abhisek/chemtutor/internal/practice"
)

func sampleReport() *analyze.Report {
	return &analyze.Report{
		OverallScore: 78,
		WeakPoints:   []string{"化学平衡"},
		AnalyzedQuestions: []analyze.QuestionAnalysis{
			{ID: "1", Topic: "化学平衡", IsCorrect: false},
		},
	}
}

func sampleQuestions() []practice.Question {
	return []practice.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}
}

func TestFilesSelectedStartsAnalysis(t *testing.T) {
	s := NewState()
	s = Apply(s, FilesSelected{})

	if s.View != ViewAnalyzing {
		t.Errorf("expected analyzing view, got %v", s.View)
	}
	if !s.Busy {
		t.Error("expected busy")
	}
	if s.Generation != 1 {
		t.Errorf("expected generation 1, got %d", s.Generation)
	}
}

func TestFilesSelectedIgnoredWhileBusy(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	again := Apply(s, FilesSelected{})
	if again.Generation != s.Generation || again.View != s.View {
		t.Error("second selection while busy should be a no-op")
	}
}

func TestAnalysisDoneShowsReport(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})

	if s.View != ViewReport {
		t.Errorf("expected report view, got %v", s.View)
	}
	if s.Busy {
		t.Error("expected idle")
	}
	if s.Report == nil || s.Report.OverallScore != 78 {
		t.Error("report not stored")
	}
}

func TestAnalysisDoneErrorReturnsHome(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Err: errors.New("provider down")})

	if s.View != ViewHome {
		t.Errorf("expected home view, got %v", s.View)
	}
	if s.Busy {
		t.Error("expected idle")
	}
	if s.Notice == "" {
		t.Error("expected a notice explaining the failure")
	}
}

func TestStaleAnalysisIsDiscarded(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	stale := s.Generation

	// User abandons the run and starts another.
	s = Apply(s, AnalysisDone{Generation: stale, Err: errors.New("canceled")})
	s = Apply(s, FilesSelected{})

	// The first run's response arrives late.
	s2 := Apply(s, AnalysisDone{Generation: stale, Report: sampleReport()})
	if s2.Report != nil {
		t.Error("stale response should not change state")
	}
	if s2.View != ViewAnalyzing {
		t.Errorf("expected analyzing view to survive, got %v", s2.View)
	}
}

func TestNewAnalysisReplacesReportWholesale(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	s = Apply(s, PracticeRequested{})
	s = Apply(s, PracticeDone{Generation: s.Generation, Questions: sampleQuestions()})
	s = Apply(s, BackToReport{})

	// Second paper.
	s = Apply(s, FilesSelected{})
	second := &analyze.Report{OverallScore: 91}
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: second})

	if s.Report.OverallScore != 91 {
		t.Error("new report should replace the old one")
	}
	if s.Questions != nil {
		t.Error("old drills must not survive a new analysis")
	}
}

func TestPracticeFlow(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})

	s = Apply(s, PracticeRequested{})
	if !s.Busy {
		t.Fatal("expected busy while generating")
	}
	if s.View != ViewReport {
		t.Errorf("generation happens on the report view, got %v", s.View)
	}

	s = Apply(s, PracticeDone{Generation: s.Generation, Questions: sampleQuestions()})
	if s.View != ViewPractice {
		t.Errorf("expected practice view, got %v", s.View)
	}
	if len(s.Questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(s.Questions))
	}
}

func TestPracticeRequestedGuards(t *testing.T) {
	// Not on report view.
	s := NewState()
	if got := Apply(s, PracticeRequested{}); got.Busy {
		t.Error("practice must not start from home")
	}

	// No weak points.
	s = Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: &analyze.Report{OverallScore: 100}})
	s = Apply(s, PracticeRequested{})
	if s.Busy {
		t.Error("practice must not start without weak points")
	}
	if s.Notice == "" {
		t.Error("expected a notice about missing weak points")
	}
}

func TestPracticeDoneErrorStaysOnReport(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	s = Apply(s, PracticeRequested{})
	s = Apply(s, PracticeDone{Generation: s.Generation, Err: errors.New("rate limited")})

	if s.View != ViewReport {
		t.Errorf("expected to stay on report, got %v", s.View)
	}
	if s.Busy {
		t.Error("expected idle")
	}
	if s.Notice == "" {
		t.Error("expected a failure notice")
	}
}

func TestStalePracticeIsDiscarded(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	s = Apply(s, PracticeRequested{})
	stale := s.Generation
	s = Apply(s, PracticeDone{Generation: stale, Err: errors.New("canceled")})

	// A fresh analysis bumps the generation.
	s = Apply(s, FilesSelected{})
	s2 := Apply(s, PracticeDone{Generation: stale, Questions: sampleQuestions()})
	if s2.View == ViewPractice {
		t.Error("stale practice response must not switch views")
	}
}

func TestOpenReport(t *testing.T) {
	s := Apply(NewState(), OpenReport{Report: sampleReport()})
	if s.View != ViewReport || s.Report == nil {
		t.Error("opening a saved report should show it")
	}

	// Ignored while busy.
	busy := Apply(NewState(), FilesSelected{})
	if got := Apply(busy, OpenReport{Report: sampleReport()}); got.View != ViewAnalyzing {
		t.Error("OpenReport must not interrupt a running analysis")
	}

	// Nil report is a no-op.
	if got := Apply(NewState(), OpenReport{}); got.View != ViewHome {
		t.Error("nil report should be ignored")
	}
}

func TestBackToReport(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	s = Apply(s, PracticeRequested{})
	s = Apply(s, PracticeDone{Generation: s.Generation, Questions: sampleQuestions()})

	s = Apply(s, BackToReport{})
	if s.View != ViewReport {
		t.Errorf("expected report view, got %v", s.View)
	}
	// Questions survive so the user can come back to them.
	if len(s.Questions) != 3 {
		t.Error("questions should survive going back")
	}

	// Idempotent: back again is a no-op.
	if got := Apply(s, BackToReport{}); got.View != ViewReport {
		t.Error("back from report should be a no-op")
	}
}

func TestGoHomeKeepsDataInMemory(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	gen := s.Generation

	s = Apply(s, GoHome{})
	if s.View != ViewHome {
		t.Errorf("expected home, got %v", s.View)
	}
	// The report stays loaded; it is simply no longer displayed.
	if s.Report == nil {
		t.Error("home must not discard the report")
	}
	if s.Notice != "" {
		t.Errorf("notice should be cleared, got %q", s.Notice)
	}
	if s.Generation != gen {
		t.Errorf("generation must survive GoHome, got %d want %d", s.Generation, gen)
	}
}

func TestGoHomeAbandonsRunningAnalysis(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	gen := s.Generation

	s = Apply(s, GoHome{})
	if s.View != ViewHome {
		t.Errorf("expected home, got %v", s.View)
	}
	if s.Busy {
		t.Error("leaving must clear the busy flag")
	}

	// The abandoned run's result arrives late and must be discarded.
	s2 := Apply(s, AnalysisDone{Generation: gen, Report: sampleReport()})
	if s2.Report != nil {
		t.Error("stale analysis result must be discarded after leaving")
	}
	if s2.View != ViewHome {
		t.Errorf("stale result must not change the view, got %v", s2.View)
	}
}

func TestGoHomeAbandonsRunningPractice(t *testing.T) {
	s := Apply(NewState(), FilesSelected{})
	s = Apply(s, AnalysisDone{Generation: s.Generation, Report: sampleReport()})
	s = Apply(s, PracticeRequested{})
	gen := s.Generation

	s = Apply(s, GoHome{})
	if s.View != ViewHome || s.Busy {
		t.Fatalf("expected idle home, got view %v busy %v", s.View, s.Busy)
	}

	s2 := Apply(s, PracticeDone{Generation: gen, Questions: sampleQuestions()})
	if s2.Questions != nil || s2.View != ViewHome {
		t.Error("stale practice result must be discarded after leaving")
	}
}
