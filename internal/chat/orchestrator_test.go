package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/gavasques/viralzera-sub001/internal/events"
	"github.com/gavasques/viralzera-sub001/internal/openrouter"
	"github.com/gavasques/viralzera-sub001/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSessions struct {
	sessions map[uuid.UUID]*session.Session
	messages map[uuid.UUID][]session.Message
	failNext bool
}

func newFakeSessions(sess *session.Session) *fakeSessions {
	f := &fakeSessions{
		sessions: map[uuid.UUID]*session.Session{},
		messages: map[uuid.UUID][]session.Message{},
	}
	if sess != nil {
		f.sessions[sess.ID] = sess
	}
	return f
}

func (f *fakeSessions) GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func (f *fakeSessions) AppendMessage(ctx context.Context, msg *session.Message) error {
	if f.failNext {
		f.failNext = false
		return errors.New("append failed")
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	f.messages[msg.SessionID] = append(f.messages[msg.SessionID], *msg)
	return nil
}

func (f *fakeSessions) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]session.Message, error) {
	return f.messages[sessionID], nil
}

type fakeCompleter struct {
	req        *openrouter.Request
	completion *openrouter.Completion
	err        error
}

func (f *fakeCompleter) Complete(ctx context.Context, req *openrouter.Request) (*openrouter.Completion, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

type fakeNotifier struct {
	published []string
}

func (f *fakeNotifier) Publish(subject string, data any) error {
	f.published = append(f.published, subject)
	return nil
}

func testSession() *session.Session {
	return &session.Session{
		ID:           uuid.New(),
		FocusID:      "f1",
		ModelID:      "anthropic/claude-sonnet-4",
		SystemPrompt: "be helpful",
	}
}

func TestSend_Success(t *testing.T) {
	sess := testSession()
	store := newFakeSessions(sess)
	llm := &fakeCompleter{completion: &openrouter.Completion{
		Content:      "resposta",
		Role:         "assistant",
		Usage:        &openrouter.Usage{TotalTokens: 10},
		Citations:    []openrouter.Citation{{URL: "https://a.example"}},
		FinishReason: "stop",
	}}
	notify := &fakeNotifier{}
	orch := NewOrchestrator(store, llm, notify, discardLogger())

	msg, err := orch.Send(context.Background(), sess.ID, "oi", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Role != "assistant" || msg.Content != "resposta" {
		t.Errorf("assistant message = %+v", msg)
	}
	if msg.Usage == nil || msg.Usage.TotalTokens != 10 {
		t.Errorf("usage not carried over: %+v", msg.Usage)
	}

	history := store.messages[sess.ID]
	if len(history) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("history roles = %q, %q", history[0].Role, history[1].Role)
	}

	// System prompt must lead the outbound conversation.
	if llm.req.Messages[0].Role != "system" || llm.req.Messages[0].Content != "be helpful" {
		t.Errorf("first wire message = %+v", llm.req.Messages[0])
	}

	if len(notify.published) != 1 || notify.published[0] != events.SubjectTurnCompleted {
		t.Errorf("published = %v", notify.published)
	}
}

func TestSend_NoSession(t *testing.T) {
	orch := NewOrchestrator(newFakeSessions(nil), &fakeCompleter{}, &fakeNotifier{}, discardLogger())

	_, err := orch.Send(context.Background(), uuid.Nil, "oi", nil, nil)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSend_NoModelConfigured(t *testing.T) {
	sess := testSession()
	sess.ModelID = ""
	store := newFakeSessions(sess)
	llm := &fakeCompleter{}
	orch := NewOrchestrator(store, llm, &fakeNotifier{}, discardLogger())

	_, err := orch.Send(context.Background(), sess.ID, "oi", nil, nil)
	if !errors.Is(err, openrouter.ErrModelNotSelected) {
		t.Fatalf("expected ErrModelNotSelected, got %v", err)
	}
	if len(store.messages[sess.ID]) != 0 {
		t.Error("precondition failure must not append any message")
	}
	if llm.req != nil {
		t.Error("precondition failure must not reach the provider")
	}
}

// A provider failure keeps the optimistically persisted user message and
// appends no assistant message.
func TestSend_ProviderFailure(t *testing.T) {
	sess := testSession()
	store := newFakeSessions(sess)
	llm := &fakeCompleter{err: errors.New("rate limited")}
	notify := &fakeNotifier{}
	orch := NewOrchestrator(store, llm, notify, discardLogger())

	_, err := orch.Send(context.Background(), sess.ID, "oi", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	history := store.messages[sess.ID]
	if len(history) != 1 || history[0].Role != "user" {
		t.Errorf("history = %+v, want only the user message", history)
	}
	if len(notify.published) != 1 || notify.published[0] != events.SubjectTurnFailed {
		t.Errorf("published = %v", notify.published)
	}
}

func TestSend_PromptBuilderOverridesDefault(t *testing.T) {
	sess := testSession()
	store := newFakeSessions(sess)
	llm := &fakeCompleter{completion: &openrouter.Completion{Content: "ok", Role: "assistant"}}
	orch := NewOrchestrator(store, llm, &fakeNotifier{}, discardLogger())

	_, err := orch.Send(context.Background(), sess.ID, "oi", nil, func(s *session.Session) string {
		return "custom prompt for " + s.FocusID
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.req.Messages[0].Content != "custom prompt for f1" {
		t.Errorf("system prompt = %v", llm.req.Messages[0].Content)
	}
}

func TestSend_SessionSettingsReachRequest(t *testing.T) {
	sess := testSession()
	sess.EnableWebSearch = true
	sess.EnableReasoning = true
	sess.ReasoningEffort = "high"
	store := newFakeSessions(sess)
	llm := &fakeCompleter{completion: &openrouter.Completion{Content: "ok", Role: "assistant"}}
	orch := NewOrchestrator(store, llm, &fakeNotifier{}, discardLogger())

	if _, err := orch.Send(context.Background(), sess.ID, "oi", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(llm.req.Plugins) != 1 || llm.req.Plugins[0].ID != "web" {
		t.Errorf("plugins = %v", llm.req.Plugins)
	}
	if llm.req.Reasoning == nil || llm.req.Reasoning.Effort != "high" {
		t.Errorf("reasoning = %+v", llm.req.Reasoning)
	}
}

func TestSending_FlagLifecycle(t *testing.T) {
	sess := testSession()
	store := newFakeSessions(sess)
	var during bool
	orch := NewOrchestrator(store, nil, &fakeNotifier{}, discardLogger())
	orch.llm = completerFunc(func(ctx context.Context, req *openrouter.Request) (*openrouter.Completion, error) {
		during = orch.Sending(sess.ID)
		return &openrouter.Completion{Content: "ok", Role: "assistant"}, nil
	})

	if orch.Sending(sess.ID) {
		t.Error("sending should be false before the turn")
	}
	if _, err := orch.Send(context.Background(), sess.ID, "oi", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !during {
		t.Error("sending should be true while the provider call is in flight")
	}
	if orch.Sending(sess.ID) {
		t.Error("sending should be false after the turn")
	}
}

type completerFunc func(ctx context.Context, req *openrouter.Request) (*openrouter.Completion, error)

func (f completerFunc) Complete(ctx context.Context, req *openrouter.Request) (*openrouter.Completion, error) {
	return f(ctx, req)
}
