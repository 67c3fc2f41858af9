package repository

import (
	"context"
	"sort"
	"sync"

	"lookup_widget_backend/platform/apperr"
)

// Memory is an in-memory metadata repository for tests and local development.
type Memory struct {
	mu       sync.RWMutex
	entities map[string]EntityType
	fields   map[string][]EntityField
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		entities: make(map[string]EntityType),
		fields:   make(map[string][]EntityField),
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) ListEntities(_ context.Context) ([]EntityType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entities := make([]EntityType, 0, len(m.entities))
	for _, e := range m.entities {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].Label < entities[j].Label })
	return entities, nil
}

func (m *Memory) GetEntity(_ context.Context, name string) (EntityType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[name]
	if !ok {
		return EntityType{}, apperr.NotFound(entityTypeNotFoundMessage)
	}
	return e, nil
}

func (m *Memory) ListFields(_ context.Context, entityType string) ([]EntityField, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields := make([]EntityField, len(m.fields[entityType]))
	copy(fields, m.fields[entityType])
	sort.Slice(fields, func(i, j int) bool { return fields[i].Label < fields[j].Label })
	return fields, nil
}

func (m *Memory) UpsertEntity(_ context.Context, entity EntityType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities[entity.Name] = entity
	return nil
}

func (m *Memory) UpsertField(_ context.Context, field EntityField) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.fields[field.EntityType]
	for i, f := range existing {
		if f.Name == field.Name {
			existing[i] = field
			return nil
		}
	}
	m.fields[field.EntityType] = append(existing, field)
	return nil
}
