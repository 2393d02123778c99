package practice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/chemtutor/internal/llm"
)

func validSetJSON() string {
	qs := make([]string, QuestionCount)
	for i := range qs {
		qs[i] = fmt.Sprintf(`{
			"id": "q%d",
			"text": "题目 %d：下列关于化学平衡的说法正确的是？",
			"options": {"A": "选项甲", "B": "选项乙", "C": "选项丙", "D": "选项丁"},
			"correctAnswer": "C",
			"explanation": "根据勒夏特列原理……"
		}`, i+1, i+1)
	}
	return `{"questions":[` + strings.Join(qs, ",") + `]}`
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validSetJSON())})
	g := New(mock, DefaultConfig())

	questions, err := g.Generate(context.Background(), []string{"化学平衡", "电离"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, len(questions))
	}
	if questions[0].CorrectAnswer != "C" {
		t.Errorf("unexpected correct answer: %q", questions[0].CorrectAnswer)
	}

	// The request should name the weak points and carry the schema.
	req := mock.Calls[0]
	if !strings.Contains(req.Messages[0].Content, "化学平衡") {
		t.Error("user message should list the weak points")
	}
	if req.Schema == nil || req.Schema.Name != "practice-questions" {
		t.Errorf("expected practice-questions schema, got %+v", req.Schema)
	}
}

func TestGenerate_NoWeakPoints(t *testing.T) {
	g := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := g.Generate(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty weak points")
	}
}

func TestGenerate_FillsMissingIDs(t *testing.T) {
	set := strings.ReplaceAll(validSetJSON(), `"id": "q1"`, `"id": ""`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(set)})
	g := New(mock, DefaultConfig())

	questions, err := g.Generate(context.Background(), []string{"电离"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, q := range questions {
		if q.ID == "" {
			t.Errorf("question %d has empty ID", i)
		}
	}
}

func TestGenerate_WrongCount(t *testing.T) {
	short := `{"questions":[{"id":"q1","text":"t","options":{"A":"a","B":"b","C":"c","D":"d"},"correctAnswer":"A","explanation":"e"}]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(short)})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), []string{"电离"})
	if err == nil {
		t.Fatal("expected error for wrong question count")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
}

func TestGenerate_SchemaMismatchFromProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Err: errors.New("missing questions")},
	})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), []string{"电离"})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T (%v)", err, err)
	}
}

func TestGenerate_TransportError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), []string{"电离"})
	if err == nil {
		t.Fatal("expected error")
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		t.Fatal("transport failures must not surface as schema errors")
	}
}
