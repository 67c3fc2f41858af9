package repository

import (
	"context"
	"sync"

	"lookup_widget_backend/platform/apperr"
)

// Memory is an in-memory widget configuration store for tests.
type Memory struct {
	mu      sync.RWMutex
	configs map[string]LookupConfig
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{configs: make(map[string]LookupConfig)}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, widgetID string) (LookupConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.configs[widgetID]
	if !ok {
		return LookupConfig{}, apperr.NotFound(configNotFoundMessage)
	}
	return cfg, nil
}

func (m *Memory) Save(_ context.Context, widgetID string, cfg LookupConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs[widgetID] = cfg
	return nil
}
