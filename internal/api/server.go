package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gavasques/viralzera-sub001/internal/capability"
	"github.com/gavasques/viralzera-sub001/internal/chat"
	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

// ModelLister fetches the public model catalog.
type ModelLister interface {
	ListModels(ctx context.Context) ([]openrouter.Model, error)
}

// Server is the HTTP proxy surface. Chat completions are issued from
// here so the provider credential never reaches the client; the model
// catalog is passed through with capability annotations.
type Server struct {
	router *chi.Mux
	port   int

	orch         *chat.Orchestrator
	saver        *chat.SaveCoordinator
	sessions     SessionManager
	models       ModelLister
	defaultModel string
	logger       *slog.Logger
}

func NewServer(port int, orch *chat.Orchestrator, saver *chat.SaveCoordinator, sessions SessionManager, models ModelLister, defaultModel string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:       router,
		port:         port,
		orch:         orch,
		saver:        saver,
		sessions:     sessions,
		models:       models,
		defaultModel: defaultModel,
		logger:       logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/models", s.listModels)
	router.Post("/api/v1/sessions", s.createSession)
	router.Get("/api/v1/sessions", s.listSessions)
	router.Get("/api/v1/sessions/{id}", s.getSession)
	router.Patch("/api/v1/sessions/{id}", s.updateSession)
	router.Get("/api/v1/sessions/{id}/messages", s.listMessages)
	router.Post("/api/v1/chat/send", s.sendTurn)
	router.Post("/api/v1/chat/detect", s.detectRecords)
	router.Post("/api/v1/chat/save", s.saveRecords)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type modelEntry struct {
	openrouter.Model
	Capabilities capability.Capabilities `json:"capabilities"`
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.models.ListModels(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	entries := make([]modelEntry, len(models))
	for i := range models {
		entries[i] = modelEntry{
			Model:        models[i],
			Capabilities: capability.Classify(&models[i]),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
