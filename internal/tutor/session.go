package tutor

import (
	"context"
	"strings"
	"sync"
)

// Canned assistant lines shown instead of raw errors.
const (
	// Greeting opens every chat session.
	Greeting = "你好！我是你的高考化学AI助手。无论是试卷中的错题原理，还是复杂的化学反应逻辑，你都可以随时问我。"
	// emptyReplyMessage covers the model returning nothing at all.
	emptyReplyMessage = "对不起，我没听清楚，能再说一遍吗？"
	// connectivityMessage covers transport failures.
	connectivityMessage = "抱歉，连接AI助手时出了点问题。"
)

// Role identifies who said a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one line in the transcript.
type ChatMessage struct {
	Role    Role
	Content string
}

// Session holds a chat transcript and tracks the in-flight question.
// The transcript is display state only: each question still goes to the
// model as an independent exchange.
type Session struct {
	client *Client

	mu       sync.Mutex
	messages []ChatMessage
	pending  bool
}

// NewSession creates a session seeded with the tutor's greeting.
func NewSession(client *Client) *Session {
	return &Session{
		client:   client,
		messages: []ChatMessage{{Role: RoleAssistant, Content: Greeting}},
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a question is awaiting its answer.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Begin records the student's question and marks the session busy.
// Blank questions and questions asked while one is already in flight
// are rejected.
func (s *Session) Begin(question string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.messages = append(s.messages, ChatMessage{Role: RoleUser, Content: question})
	s.pending = true
	return true
}

// Ask sends the question to the tutor. Call from a goroutine after a
// successful Begin, then pass the result to Finish.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	return s.client.Reply(ctx, question)
}

// Finish appends the tutor's answer and clears the busy flag. Errors and
// empty replies become canned assistant lines rather than breaking the
// transcript.
func (s *Session) Finish(answer string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.TrimSpace(answer)
	switch {
	case err != nil:
		content = connectivityMessage
	case content == "":
		content = emptyReplyMessage
	}

	s.messages = append(s.messages, ChatMessage{Role: RoleAssistant, Content: content})
	s.pending = false
}
