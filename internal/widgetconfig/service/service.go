package service

import (
	"context"
	"strings"

	"lookup_widget_backend/internal/events"
	"lookup_widget_backend/internal/widgetconfig/repository"
	"lookup_widget_backend/platform/apperr"
	"lookup_widget_backend/platform/logger"
)

// Service manages per-widget lookup configurations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a widget configuration service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Get returns the stored configuration for a widget, with defaults applied.
func (s *Service) Get(ctx context.Context, widgetID string) (repository.LookupConfig, error) {
	widgetID = strings.TrimSpace(widgetID)
	if widgetID == "" {
		return repository.LookupConfig{}, apperr.Validation("widget id is required")
	}

	cfg, err := s.repo.Get(ctx, widgetID)
	if err != nil {
		return repository.LookupConfig{}, err
	}
	return cfg.Normalized(), nil
}

// Save validates and stores a configuration. Field-level problems are
// returned without touching storage. savedBy is the authenticated designer,
// recorded in the audit log.
func (s *Service) Save(ctx context.Context, widgetID, savedBy string, cfg repository.LookupConfig) ([]repository.FieldError, error) {
	widgetID = strings.TrimSpace(widgetID)
	if widgetID == "" {
		return nil, apperr.Validation("widget id is required")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return errs, nil
	}

	cfg = cfg.Normalized()
	if err := s.repo.Save(ctx, widgetID, cfg); err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.Info("widget config saved",
			"widget_id", widgetID, "entity_type", cfg.EntityType, "saved_by", savedBy)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.WidgetConfigSaved{
			BaseEvent:  events.NewBaseEvent(),
			WidgetID:   widgetID,
			EntityType: cfg.EntityType,
		})
	}
	return nil, nil
}

// Validate checks a configuration without persisting it.
func (s *Service) Validate(cfg repository.LookupConfig) []repository.FieldError {
	return cfg.Validate()
}
