// Package session persists chat sessions and their message lists.
//
// A turn appends the user message before the provider call and the
// assistant message after it, as two separate writes. A crash between
// them leaves a dangling unanswered user message; that inconsistency is
// accepted and not repaired automatically.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Session is one conversation aggregate with its per-session settings.
type Session struct {
	ID              uuid.UUID `json:"id"`
	FocusID         string    `json:"focus_id"`
	Title           string    `json:"title"`
	ModelID         string    `json:"model_id"`
	SystemPrompt    string    `json:"system_prompt"`
	EnableWebSearch bool      `json:"enable_web_search"`
	EnableReasoning bool      `json:"enable_reasoning"`
	ReasoningEffort string    `json:"reasoning_effort"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_sessions (id, focus_id, title, model_id, system_prompt,
			enable_web_search, enable_reasoning, reasoning_effort, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		sess.ID, sess.FocusID, sess.Title, sess.ModelID, sess.SystemPrompt,
		sess.EnableWebSearch, sess.EnableReasoning, sess.ReasoningEffort,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	var sess Session
	err := s.pool.QueryRow(ctx, `
		SELECT id, focus_id, title, model_id, system_prompt,
			enable_web_search, enable_reasoning, reasoning_effort, created_at, updated_at
		FROM chat_sessions WHERE id = $1`, id,
	).Scan(&sess.ID, &sess.FocusID, &sess.Title, &sess.ModelID, &sess.SystemPrompt,
		&sess.EnableWebSearch, &sess.EnableReasoning, &sess.ReasoningEffort,
		&sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context, focusID string) ([]Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, focus_id, title, model_id, system_prompt,
			enable_web_search, enable_reasoning, reasoning_effort, created_at, updated_at
		FROM chat_sessions WHERE focus_id = $1
		ORDER BY updated_at DESC`, focusID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.FocusID, &sess.Title, &sess.ModelID,
			&sess.SystemPrompt, &sess.EnableWebSearch, &sess.EnableReasoning,
			&sess.ReasoningEffort, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateSettings persists the per-session model and option toggles.
func (s *Store) UpdateSettings(ctx context.Context, sess *Session) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE chat_sessions
		SET title = $1, model_id = $2, system_prompt = $3,
			enable_web_search = $4, enable_reasoning = $5, reasoning_effort = $6,
			updated_at = now()
		WHERE id = $7`,
		sess.Title, sess.ModelID, sess.SystemPrompt,
		sess.EnableWebSearch, sess.EnableReasoning, sess.ReasoningEffort, sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	return nil
}
