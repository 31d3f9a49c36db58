// Package chat drives conversational turns and the save-from-chat
// workflow, tying the request builder, response parser, extractor and
// normalizers together.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gavasques/viralzera-sub001/internal/events"
	"github.com/gavasques/viralzera-sub001/internal/openrouter"
	"github.com/gavasques/viralzera-sub001/internal/session"
)

// ErrNoSession is returned when a send is attempted without a session.
var ErrNoSession = errors.New("no session selected")

// Completer issues one chat-completion request.
type Completer interface {
	Complete(ctx context.Context, req *openrouter.Request) (*openrouter.Completion, error)
}

// SessionStore is the slice of the session store the orchestrator needs.
type SessionStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	AppendMessage(ctx context.Context, msg *session.Message) error
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]session.Message, error)
}

// Notifier carries user-facing notifications out of the core.
type Notifier interface {
	Publish(subject string, data any) error
}

// PromptBuilder computes the system prompt for a turn. Returning ""
// falls back to the session's configured default prompt.
type PromptBuilder func(sess *session.Session) string

// Orchestrator drives one conversational exchange at a time per session.
// The Sending flag is advisory: callers gate re-entrant sends on it; the
// orchestrator itself neither queues nor rejects concurrent calls.
type Orchestrator struct {
	sessions SessionStore
	llm      Completer
	notify   Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	sending map[uuid.UUID]bool
}

func NewOrchestrator(sessions SessionStore, llm Completer, notify Notifier, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		llm:      llm,
		notify:   notify,
		logger:   logger,
		sending:  make(map[uuid.UUID]bool),
	}
}

// Sending reports whether a turn is in flight for the session.
func (o *Orchestrator) Sending(sessionID uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sending[sessionID]
}

func (o *Orchestrator) setSending(sessionID uuid.UUID, v bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if v {
		o.sending[sessionID] = true
	} else {
		delete(o.sending, sessionID)
	}
}

// Send runs one turn: the user message is appended and persisted
// optimistically before the provider call; on success the assistant
// message is appended; on failure nothing is appended and the already
// persisted user message stays.
func (o *Orchestrator) Send(ctx context.Context, sessionID uuid.UUID, text string, files []openrouter.Attachment, prompt PromptBuilder) (*session.Message, error) {
	if sessionID == uuid.Nil {
		o.notifyFailure(sessionID, ErrNoSession)
		return nil, ErrNoSession
	}

	sess, err := o.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.ModelID == "" {
		o.notifyFailure(sessionID, openrouter.ErrModelNotSelected)
		return nil, openrouter.ErrModelNotSelected
	}

	o.setSending(sessionID, true)
	defer o.setSending(sessionID, false)

	userMsg := &session.Message{
		SessionID: sessionID,
		Role:      "user",
		Content:   text,
		Files:     files,
	}
	if err := o.sessions.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	history, err := o.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	req, err := openrouter.BuildRequest(sess.ModelID, wireMessages(sess, history, prompt), openrouter.Options{
		Files:           files,
		EnableWebSearch: sess.EnableWebSearch,
		EnableReasoning: sess.EnableReasoning,
		ReasoningEffort: sess.ReasoningEffort,
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("sending turn",
		"session_id", sessionID,
		"model", sess.ModelID,
		"messages", len(req.Messages),
		"files", len(files),
	)

	completion, err := o.llm.Complete(ctx, req)
	if err != nil {
		o.notifyFailure(sessionID, err)
		return nil, err
	}

	assistantMsg := &session.Message{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   completion.Content,
		Usage:     completion.Usage,
		Citations: completion.Citations,
	}
	if err := o.sessions.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	if err := o.notify.Publish(events.SubjectTurnCompleted, map[string]any{
		"session_id": sessionID.String(),
		"model":      completion.Model,
	}); err != nil {
		o.logger.Warn("failed to publish turn completed", "error", err)
	}

	return assistantMsg, nil
}

// wireMessages converts the stored history to the outbound shape, with
// the system prompt first when one resolves.
func wireMessages(sess *session.Session, history []session.Message, prompt PromptBuilder) []openrouter.Message {
	system := ""
	if prompt != nil {
		system = prompt(sess)
	}
	if system == "" {
		system = sess.SystemPrompt
	}

	msgs := make([]openrouter.Message, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, openrouter.Message{Role: "system", Content: system})
	}
	for _, m := range history {
		msgs = append(msgs, openrouter.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}

func (o *Orchestrator) notifyFailure(sessionID uuid.UUID, cause error) {
	if err := o.notify.Publish(events.SubjectTurnFailed, map[string]any{
		"session_id": sessionID.String(),
		"error":      cause.Error(),
	}); err != nil {
		o.logger.Warn("failed to publish turn failure", "error", err)
	}
}
