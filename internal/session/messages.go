package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

// Message is one chat message, immutable once appended.
type Message struct {
	ID        uuid.UUID               `json:"id"`
	SessionID uuid.UUID               `json:"session_id"`
	Role      string                  `json:"role"`
	Content   string                  `json:"content"`
	Usage     *openrouter.Usage       `json:"usage,omitempty"`
	Citations []openrouter.Citation   `json:"citations,omitempty"`
	Files     []openrouter.Attachment `json:"files,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// AppendMessage writes one message to the session's list. Usage,
// citations and files travel as jsonb.
func (s *Store) AppendMessage(ctx context.Context, msg *Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	usage, err := marshalNullable(msg.Usage)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}
	citations, err := marshalNullable(msg.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}
	files, err := marshalNullable(msg.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, usage, citations, files, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, usage, citations, files, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages returns the session's messages in append order.
func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, role, content, usage, citations, files, created_at
		FROM chat_messages WHERE session_id = $1
		ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var msg Message
		var usage, citations, files []byte
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content,
			&usage, &citations, &files, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if err := unmarshalNullable(usage, &msg.Usage); err != nil {
			return nil, fmt.Errorf("unmarshal usage: %w", err)
		}
		if err := unmarshalNullable(citations, &msg.Citations); err != nil {
			return nil, fmt.Errorf("unmarshal citations: %w", err)
		}
		if err := unmarshalNullable(files, &msg.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func marshalNullable(v any) ([]byte, error) {
	switch t := v.(type) {
	case *openrouter.Usage:
		if t == nil {
			return nil, nil
		}
	case []openrouter.Citation:
		if t == nil {
			return nil, nil
		}
	case []openrouter.Attachment:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func unmarshalNullable(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
