package entity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supabase-community/supabase-go"
)

// tables maps entity names onto their backing tables.
var tables = map[string]string{
	Audience: "audiences",
	Persona:  "personas",
	Product:  "products",
}

// SupabaseStore implements Store on top of Supabase/PostgREST.
type SupabaseStore struct {
	client *supabase.Client
	logger *slog.Logger
}

func NewSupabaseStore(url, apiKey string, logger *slog.Logger) (*SupabaseStore, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(url, apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseStore{client: client, logger: logger}, nil
}

func tableFor(entityName string) (string, error) {
	t, ok := tables[entityName]
	if !ok {
		return "", fmt.Errorf("unknown entity %q", entityName)
	}
	return t, nil
}

// Create inserts one record and returns the created row, id included.
func (s *SupabaseStore) Create(ctx context.Context, entityName string, record any) (map[string]any, error) {
	table, err := tableFor(entityName)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	_, err = s.client.From(table).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", entityName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create %s: no row returned", entityName)
	}

	s.logger.Debug("entity created", "entity", entityName, "id", rows[0]["id"])
	return rows[0], nil
}

func (s *SupabaseStore) Update(ctx context.Context, entityName, id string, patch any) (map[string]any, error) {
	table, err := tableFor(entityName)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	_, err = s.client.From(table).
		Update(patch, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", entityName, id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("update %s %s: not found", entityName, id)
	}
	return rows[0], nil
}

func (s *SupabaseStore) List(ctx context.Context, entityName string, out any) error {
	table, err := tableFor(entityName)
	if err != nil {
		return err
	}

	_, err = s.client.From(table).
		Select("*", "", false).
		ExecuteTo(out)
	if err != nil {
		return fmt.Errorf("list %s: %w", entityName, err)
	}
	return nil
}

func (s *SupabaseStore) Filter(ctx context.Context, entityName, column, value string, out any) error {
	table, err := tableFor(entityName)
	if err != nil {
		return err
	}

	_, err = s.client.From(table).
		Select("*", "", false).
		Eq(column, value).
		ExecuteTo(out)
	if err != nil {
		return fmt.Errorf("filter %s by %s: %w", entityName, column, err)
	}
	return nil
}
