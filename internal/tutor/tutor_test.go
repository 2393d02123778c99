package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/chemtutor/internal/llm"
)

func TestReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("苯环中的大π键使其不与高锰酸钾发生氧化反应。"),
	})
	c := NewClient(mock, DefaultConfig())

	answer, err := c.Reply(context.Background(), "为什么苯不褪色高锰酸钾？")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if answer != "苯环中的大π键使其不与高锰酸钾发生氧化反应。" {
		t.Errorf("unexpected answer: %q", answer)
	}

	req := mock.Calls[0]
	if req.System == "" {
		t.Error("expected a system prompt")
	}
	if req.Schema != nil {
		t.Error("chat must not request structured output")
	}
	if len(req.Messages) != 1 {
		t.Errorf("each question is an independent exchange, got %d messages", len(req.Messages))
	}
}

func TestReply_EmptyQuestion(t *testing.T) {
	c := NewClient(llm.NewMockProvider(), DefaultConfig())
	if _, err := c.Reply(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank question")
	}
}

func TestSession_StartsWithGreeting(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Content != Greeting {
		t.Errorf("expected greeting, got %+v", msgs[0])
	}
}

func TestSession_BeginRejectsBlank(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))
	if s.Begin("   ") {
		t.Fatal("blank question should be rejected")
	}
	if len(s.Messages()) != 1 {
		t.Error("transcript should be unchanged")
	}
}

func TestSession_OneQuestionInFlight(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))

	if !s.Begin("第一个问题") {
		t.Fatal("first question should be accepted")
	}
	if s.Begin("第二个问题") {
		t.Fatal("second question should be rejected while first is pending")
	}
	if !s.Pending() {
		t.Error("session should be pending")
	}

	s.Finish("答案", nil)
	if s.Pending() {
		t.Error("session should be idle after Finish")
	}
	if !s.Begin("第二个问题") {
		t.Error("new question should be accepted after Finish")
	}
}

func TestSession_FinishAppendsAnswer(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))
	s.Begin("什么是摩尔？")
	s.Finish("摩尔是物质的量的单位。", nil)

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected greeting + question + answer, got %d", len(msgs))
	}
	last := msgs[2]
	if last.Role != RoleAssistant || last.Content != "摩尔是物质的量的单位。" {
		t.Errorf("unexpected final message: %+v", last)
	}
}

func TestSession_FinishWithEmptyReply(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))
	s.Begin("问题")
	s.Finish("   ", nil)

	msgs := s.Messages()
	if msgs[len(msgs)-1].Content != emptyReplyMessage {
		t.Errorf("expected apology for empty reply, got %q", msgs[len(msgs)-1].Content)
	}
}

func TestSession_FinishWithError(t *testing.T) {
	s := NewSession(NewClient(llm.NewMockProvider(), DefaultConfig()))
	s.Begin("问题")
	s.Finish("", errors.New("connection refused"))

	msgs := s.Messages()
	if msgs[len(msgs)-1].Content != connectivityMessage {
		t.Errorf("expected connectivity message, got %q", msgs[len(msgs)-1].Content)
	}
	if s.Pending() {
		t.Error("session should be idle after a failed exchange")
	}
}
