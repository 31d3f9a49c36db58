package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/gavasques/viralzera-sub001/internal/chat"
	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

type sendRequest struct {
	SessionID string                  `json:"session_id"`
	Content   string                  `json:"content"`
	Files     []openrouter.Attachment `json:"files,omitempty"`
}

func (s *Server) sendTurn(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session_id"))
		return
	}

	if s.orch.Sending(sessionID) {
		writeError(w, http.StatusConflict, errors.New("a turn is already in flight for this session"))
		return
	}

	msg, err := s.orch.Send(r.Context(), sessionID, req.Content, req.Files, nil)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrNoSession), errors.Is(err, openrouter.ErrModelNotSelected):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusBadGateway, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        msg.ID.String(),
		"role":      msg.Role,
		"content":   msg.Content,
		"usage":     msg.Usage,
		"citations": msg.Citations,
		"timestamp": msg.CreatedAt,
	})
}

type saveRequest struct {
	Text    string `json:"text"`
	FocusID string `json:"focus_id"`
}

func (s *Server) detectRecords(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	preview := s.saver.Detect(req.Text, req.FocusID)
	if preview == nil {
		// Nothing detected is a normal outcome, not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) saveRecords(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	preview := s.saver.Detect(req.Text, req.FocusID)
	if preview == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	saved, err := s.saver.Save(r.Context(), preview, nil)
	if err != nil {
		// Partial success: report how far the sequential save got.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": err.Error(),
			"saved": len(saved),
			"total": preview.Count,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entity": preview.EntityName,
		"saved":  len(saved),
		"total":  preview.Count,
	})
}
