package service

import (
	"context"
	"strings"

	"lookup_widget_backend/internal/events"
	"lookup_widget_backend/internal/metadata/repository"
	"lookup_widget_backend/internal/metadata/transport"
	"lookup_widget_backend/platform/apperr"
	"lookup_widget_backend/platform/cache"
	"lookup_widget_backend/platform/logger"
)

// FallbackIcon is returned whenever an entity icon cannot be resolved.
const FallbackIcon = "standard:default"

const iconCachePrefix = "metadata:icon:"

// textLikeTypes are the data types offered for free-text searching.
var textLikeTypes = map[string]bool{
	repository.TypeText:          true,
	repository.TypeEmail:         true,
	repository.TypePhone:         true,
	repository.TypeURL:           true,
	repository.TypePicklist:      true,
	repository.TypeMultiPicklist: true,
	repository.TypeReference:     true,
}

// Service resolves catalog metadata for the widget designer and runtime.
type Service struct {
	repo  repository.Repository
	cache *cache.Cache
	bus   events.Bus
	log   *logger.Logger
}

// New creates a metadata service. cache and bus may be nil.
func New(repo repository.Repository, c *cache.Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: c, bus: bus, log: log}
}

// ListSearchableEntities returns the searchable entity types sorted by label.
func (s *Service) ListSearchableEntities(ctx context.Context) ([]transport.EntityOption, error) {
	entities, err := s.repo.ListEntities(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]transport.EntityOption, 0, len(entities))
	for _, e := range entities {
		if !e.Searchable {
			continue
		}
		options = append(options, transport.EntityOption{Label: e.Label, Value: e.Name})
	}
	return options, nil
}

// ListSearchableFields returns the text-like fields of an entity type sorted
// by label. Reference fields are substituted with the related entity's
// display-name path and the raw id field is dropped. A blank or unknown
// entity type yields an empty list, never an error.
func (s *Service) ListSearchableFields(ctx context.Context, entityType string) []transport.FieldOption {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return []transport.FieldOption{}
	}

	fields, err := s.repo.ListFields(ctx, entityType)
	if err != nil {
		if s.log != nil {
			s.log.Warn("field listing failed, returning empty set",
				"entity_type", entityType, "error", err.Error())
		}
		return []transport.FieldOption{}
	}

	options := make([]transport.FieldOption, 0, len(fields))
	for _, f := range fields {
		if !textLikeTypes[f.DataType] {
			continue
		}
		if f.DataType == repository.TypeReference {
			path, ok := s.referencePath(ctx, f)
			if !ok {
				continue
			}
			options = append(options, transport.FieldOption{Label: f.Label, Value: path})
			continue
		}
		options = append(options, transport.FieldOption{Label: f.Label, Value: f.Name})
	}
	return options
}

// referencePath turns a reference field like OwnerId into the one-level
// display path Owner.Name. Deeper traversal is out of scope.
func (s *Service) referencePath(ctx context.Context, field repository.EntityField) (string, bool) {
	relationship := strings.TrimSuffix(field.Name, "Id")
	if relationship == "" || relationship == field.Name || field.RefEntity == "" {
		return "", false
	}

	related, err := s.repo.GetEntity(ctx, field.RefEntity)
	if err != nil {
		return "", false
	}
	displayField := related.DisplayNameField
	if displayField == "" {
		displayField = "Name"
	}
	return relationship + "." + displayField, true
}

// FieldLabels returns the name to label mapping for an entity type.
func (s *Service) FieldLabels(ctx context.Context, entityType string) (map[string]string, error) {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return nil, apperr.NotFound("entity type not found")
	}
	if _, err := s.repo.GetEntity(ctx, entityType); err != nil {
		return nil, err
	}

	fields, err := s.repo.ListFields(ctx, entityType)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(fields))
	for _, f := range fields {
		labels[f.Name] = f.Label
	}
	return labels, nil
}

// EntityIcon returns the icon identifier for an entity type. It never fails:
// any lookup problem yields the generic fallback icon.
func (s *Service) EntityIcon(ctx context.Context, entityType string) string {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return FallbackIcon
	}

	cacheKey := iconCachePrefix + entityType
	if icon, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		if s.log != nil {
			s.log.CacheDegraded("icon lookup", err)
		}
	} else if ok {
		return icon
	}

	entity, err := s.repo.GetEntity(ctx, entityType)
	if err != nil || entity.Icon == "" {
		return FallbackIcon
	}

	if err := s.cache.Set(ctx, cacheKey, entity.Icon); err != nil && s.log != nil {
		s.log.CacheDegraded("icon store", err)
	}
	return entity.Icon
}

// RefreshCache drops all cached metadata so the next reads hit Postgres.
func (s *Service) RefreshCache(ctx context.Context) error {
	return s.cache.DeletePrefix(ctx, "metadata:")
}

// ApplySeed loads a catalog seed file and announces the catalog change so
// cached metadata gets invalidated.
func (s *Service) ApplySeed(ctx context.Context, path string) error {
	if err := repository.ApplySeed(ctx, s.repo, path); err != nil {
		return err
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.CatalogChanged{BaseEvent: events.NewBaseEvent()})
	}
	return nil
}
