package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gavasques/viralzera-sub001/internal/entity"
	"github.com/gavasques/viralzera-sub001/internal/events"
	"github.com/gavasques/viralzera-sub001/internal/extract"
	"github.com/gavasques/viralzera-sub001/internal/normalize"
)

// EntityCreator is the slice of the entity store the save workflow needs.
type EntityCreator interface {
	Create(ctx context.Context, entityName string, record any) (map[string]any, error)
}

// Preview describes records discovered in assistant text, ready for a
// confirmation dialog.
type Preview struct {
	Kind       extract.Kind `json:"kind"`
	Icon       string       `json:"icon"`
	Label      string       `json:"label"`
	Color      string       `json:"color"`
	EntityName string       `json:"entity_name"`
	Records    []any        `json:"records"`
	Count      int          `json:"count"`
}

// SaveCoordinator turns assistant prose into persisted entities.
type SaveCoordinator struct {
	entities EntityCreator
	notify   Notifier
	logger   *slog.Logger
}

func NewSaveCoordinator(entities EntityCreator, notify Notifier, logger *slog.Logger) *SaveCoordinator {
	return &SaveCoordinator{entities: entities, notify: notify, logger: logger}
}

// Detect runs the extractor/classifier/normalizer chain over assistant
// text. It returns nil when there is nothing to save: no focus id, no
// embedded JSON, no confident classification, or an empty normalization.
// That is the expected quiet outcome, not an error.
func (s *SaveCoordinator) Detect(text, focusID string) *Preview {
	if focusID == "" {
		return nil
	}

	value, ok := extract.ExtractJSON(text)
	if !ok {
		return nil
	}

	kind := extract.DetectType(value)
	if kind == extract.KindNone {
		return nil
	}

	var p *Preview
	switch kind {
	case extract.KindAudience, extract.KindAudienceList:
		records := normalize.AudienceFromJSON(value, focusID)
		if len(records) == 0 {
			return nil
		}
		p = &Preview{Kind: kind, Icon: "users", Label: "Públicos-alvo", Color: "#3B82F6", EntityName: entity.Audience}
		for _, r := range records {
			p.Records = append(p.Records, r)
		}
	case extract.KindPersona:
		p = &Preview{Kind: kind, Icon: "user", Label: "Persona", Color: "#8B5CF6", EntityName: entity.Persona}
		p.Records = append(p.Records, normalize.PersonaFromJSON(value, focusID))
	case extract.KindProduct:
		p = &Preview{Kind: kind, Icon: "package", Label: "Produto", Color: "#10B981", EntityName: entity.Product}
		p.Records = append(p.Records, normalize.ProductFromJSON(value, focusID))
	}

	p.Count = len(p.Records)
	s.logger.Info("records detected", "kind", string(kind), "count", p.Count)
	return p
}

// Save persists the previewed records one at a time, deliberately not
// concurrently, so progress can be reported after each creation and a
// failure leaves a well-defined prefix of created records. The first
// failure aborts the remainder; prior creations are not rolled back.
//
// progress, when non-nil, is invoked after every successful creation.
// The created rows so far are always returned, error or not.
func (s *SaveCoordinator) Save(ctx context.Context, p *Preview, progress func(saved, total int)) ([]map[string]any, error) {
	saved := make([]map[string]any, 0, len(p.Records))

	for i, record := range p.Records {
		created, err := s.entities.Create(ctx, p.EntityName, record)
		if err != nil {
			s.logger.Error("record save failed",
				"entity", p.EntityName,
				"saved", len(saved),
				"total", len(p.Records),
				"error", err,
			)
			if pubErr := s.notify.Publish(events.SubjectSaveFailed, map[string]any{
				"entity": p.EntityName,
				"saved":  len(saved),
				"total":  len(p.Records),
				"error":  err.Error(),
			}); pubErr != nil {
				s.logger.Warn("failed to publish save failure", "error", pubErr)
			}
			return saved, fmt.Errorf("create %s %d of %d: %w", p.EntityName, i+1, len(p.Records), err)
		}

		saved = append(saved, created)
		if progress != nil {
			progress(len(saved), len(p.Records))
		}
	}

	if err := s.notify.Publish(events.SubjectRecordsSaved, map[string]any{
		"entity": p.EntityName,
		"count":  len(saved),
	}); err != nil {
		s.logger.Warn("failed to publish records saved", "error", err)
	}

	return saved, nil
}
