package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gavasques/viralzera-sub001/internal/api"
	"github.com/gavasques/viralzera-sub001/internal/chat"
	"github.com/gavasques/viralzera-sub001/internal/config"
	"github.com/gavasques/viralzera-sub001/internal/entity"
	"github.com/gavasques/viralzera-sub001/internal/events"
	"github.com/gavasques/viralzera-sub001/internal/openrouter"
	"github.com/gavasques/viralzera-sub001/internal/session"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("viralzera chat core starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	sessions, err := session.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()
	slog.Info("database connected")

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		slog.Error("SUPABASE_URL and SUPABASE_KEY are required")
		os.Exit(1)
	}
	entities, err := entity.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, slog.Default())
	if err != nil {
		slog.Error("failed to create entity store", "error", err)
		os.Exit(1)
	}
	slog.Info("entity store ready")

	if cfg.OpenRouterAPIKey == "" {
		slog.Error("OPENROUTER_API_KEY is required")
		os.Exit(1)
	}
	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, slog.Default())
	if cfg.OpenRouterURL != "" {
		llm.SetTestTransport(cfg.OpenRouterURL)
	}
	slog.Info("provider client ready")

	notifier, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	orch := chat.NewOrchestrator(sessions, llm, notifier, slog.Default())
	saver := chat.NewSaveCoordinator(entities, notifier, slog.Default())

	srv := api.NewServer(cfg.Port, orch, saver, sessions, llm, cfg.DefaultModel, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("viralzera chat core ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("viralzera chat core stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
