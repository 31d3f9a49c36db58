package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gavasques/viralzera-sub001/internal/session"
)

// SessionManager is the slice of the session store the HTTP surface needs.
type SessionManager interface {
	CreateSession(ctx context.Context, sess *session.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	ListSessions(ctx context.Context, focusID string) ([]session.Session, error)
	UpdateSettings(ctx context.Context, sess *session.Session) error
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]session.Message, error)
}

type createSessionRequest struct {
	FocusID      string `json:"focus_id"`
	Title        string `json:"title"`
	ModelID      string `json:"model_id"`
	SystemPrompt string `json:"system_prompt"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.FocusID == "" {
		writeError(w, http.StatusBadRequest, errors.New("focus_id is required"))
		return
	}

	sess := &session.Session{
		FocusID:         req.FocusID,
		Title:           req.Title,
		ModelID:         req.ModelID,
		SystemPrompt:    req.SystemPrompt,
		ReasoningEffort: "medium",
	}
	if sess.ModelID == "" {
		sess.ModelID = s.defaultModel
	}

	if err := s.sessions.CreateSession(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("session created", "session_id", sess.ID, "focus_id", sess.FocusID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	focusID := r.URL.Query().Get("focus_id")
	if focusID == "" {
		writeError(w, http.StatusBadRequest, errors.New("focus_id is required"))
		return
	}

	sessions, err := s.sessions.ListSessions(r.Context(), focusID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if sessions == nil {
		sessions = []session.Session{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": sessions})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	sess, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type updateSessionRequest struct {
	Title           *string `json:"title"`
	ModelID         *string `json:"model_id"`
	SystemPrompt    *string `json:"system_prompt"`
	EnableWebSearch *bool   `json:"enable_web_search"`
	EnableReasoning *bool   `json:"enable_reasoning"`
	ReasoningEffort *string `json:"reasoning_effort"`
}

// updateSession patches per-session settings. Absent fields keep their
// current value.
func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if req.Title != nil {
		sess.Title = *req.Title
	}
	if req.ModelID != nil {
		sess.ModelID = *req.ModelID
	}
	if req.SystemPrompt != nil {
		sess.SystemPrompt = *req.SystemPrompt
	}
	if req.EnableWebSearch != nil {
		sess.EnableWebSearch = *req.EnableWebSearch
	}
	if req.EnableReasoning != nil {
		sess.EnableReasoning = *req.EnableReasoning
	}
	if req.ReasoningEffort != nil {
		sess.ReasoningEffort = *req.ReasoningEffort
	}

	if err := s.sessions.UpdateSettings(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	msgs, err := s.sessions.ListMessages(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if msgs == nil {
		msgs = []session.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": msgs})
}
