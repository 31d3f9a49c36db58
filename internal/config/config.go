package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	SupabaseURL      string
	SupabaseKey      string
	NatsURL          string
	NatsToken        string
	OpenRouterAPIKey string
	OpenRouterURL    string
	DefaultModel     string
	LogLevel         string
}

func Load() Config {
	return Config{
		Port:             envInt("VZ_PORT", 8420),
		DatabaseURL:      envStr("DATABASE_URL", ""),
		SupabaseURL:      envStr("SUPABASE_URL", ""),
		SupabaseKey:      envStr("SUPABASE_KEY", ""),
		NatsURL:          envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:        envStr("NATS_TOKEN", ""),
		OpenRouterAPIKey: envStr("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    envStr("OPENROUTER_URL", ""),
		DefaultModel:     envStr("VZ_DEFAULT_MODEL", "anthropic/claude-sonnet-4"),
		LogLevel:         envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
