package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/chemtutor/internal/llm"
	"github.com/abhisek/chemtutor/internal/upload"
)

var testPages = []upload.Payload{
	{Name: "page1.jpg", MIMEType: "image/jpeg", Base64: "cGFnZTE="},
	{Name: "page2.jpg", MIMEType: "image/jpeg", Base64: "cGFnZTI="},
}

const validReportJSON = `{
	"overallScore": 78,
	"weakPoints": ["化学平衡", "电离"],
	"analyzedQuestions": [
		{
			"id": "7",
			"originalText": "下列反应达到平衡后，增大压强平衡正向移动的是……",
			"topic": "化学平衡",
			"isCorrect": false,
			"studentAnswer": "B",
			"correctAnswer": "C",
			"explanation": {
				"principle": "勒夏特列原理",
				"logic": "增大压强，平衡向气体分子数减小的方向移动。",
				"precautions": "先数清两侧气体分子数。",
				"commonMistakes": "忽略固体和纯液体不计入分子数。"
			}
		},
		{
			"id": "",
			"originalText": "写出乙烯与溴水反应的化学方程式。",
			"topic": "有机化学",
			"isCorrect": true,
			"studentAnswer": "CH2=CH2 + Br2 -> CH2BrCH2Br",
			"correctAnswer": "CH2=CH2 + Br2 -> CH2BrCH2Br",
			"explanation": {
				"principle": "加成反应",
				"logic": "碳碳双键打开，溴原子加在两个碳上。",
				"precautions": "注意条件是溴水而非溴蒸气。",
				"commonMistakes": "误写成取代反应。"
			}
		}
	]
}`

func TestAnalyze(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReportJSON)})
	a := New(mock, DefaultConfig())

	report, err := a.Analyze(context.Background(), testPages)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.OverallScore != 78 {
		t.Errorf("expected score 78, got %v", report.OverallScore)
	}
	if len(report.WeakPoints) != 2 || report.WeakPoints[0] != "化学平衡" {
		t.Errorf("unexpected weak points: %v", report.WeakPoints)
	}
	if len(report.AnalyzedQuestions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(report.AnalyzedQuestions))
	}

	q := report.AnalyzedQuestions[0]
	if q.IsCorrect {
		t.Error("first question should be marked incorrect")
	}
	if q.Explanation.Principle == "" || q.Explanation.CommonMistakes == "" {
		t.Error("explanation sections should be populated")
	}

	if report.CorrectCount() != 1 {
		t.Errorf("expected 1 correct, got %d", report.CorrectCount())
	}
	if len(report.WrongQuestions()) != 1 {
		t.Errorf("expected 1 wrong question")
	}
}

func TestAnalyze_FillsMissingIDs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReportJSON)})
	a := New(mock, DefaultConfig())

	report, err := a.Analyze(context.Background(), testPages)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for i, q := range report.AnalyzedQuestions {
		if q.ID == "" {
			t.Errorf("question %d has empty ID", i)
		}
	}
}

func TestAnalyze_SendsPagesAsImages(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReportJSON)})
	a := New(mock, DefaultConfig())

	if _, err := a.Analyze(context.Background(), testPages); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if len(req.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(req.Images))
	}
	if req.Images[0].Data != "cGFnZTE=" || req.Images[1].Data != "cGFnZTI=" {
		t.Error("images should follow page order")
	}
	if req.Schema == nil || req.Schema.Name != "chemistry-report" {
		t.Errorf("expected chemistry-report schema, got %+v", req.Schema)
	}
	if req.System == "" {
		t.Error("expected a system prompt")
	}
}

func TestAnalyze_NoPages(t *testing.T) {
	a := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := a.Analyze(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty page set")
	}
}

func TestAnalyze_SchemaMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Err: errors.New("missing overallScore")},
	})
	a := New(mock, DefaultConfig())

	_, err := a.Analyze(context.Background(), testPages)
	if err == nil {
		t.Fatal("expected error")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T (%v)", err, err)
	}
}

func TestAnalyze_UnparseableContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"just a string"`)})
	a := New(mock, DefaultConfig())

	_, err := a.Analyze(context.Background(), testPages)
	if err == nil {
		t.Fatal("expected error for unparseable content")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
}

func TestAnalyze_TransportErrorIsNotSchemaError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	a := New(mock, DefaultConfig())

	_, err := a.Analyze(context.Background(), testPages)
	if err == nil {
		t.Fatal("expected error")
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		t.Fatal("transport failures must not surface as schema errors")
	}
}
