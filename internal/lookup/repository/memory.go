package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"lookup_widget_backend/internal/lookup/query"
)

// Memory is an in-process Executor used by tests and local development.
// It supports term matching and row caps; raw extra filters are a record
// store concern and are rejected.
type Memory struct {
	mu   sync.RWMutex
	rows map[string][]RecordRow
}

// NewMemory creates an empty in-memory executor.
func NewMemory() *Memory {
	return &Memory{rows: make(map[string][]RecordRow)}
}

var _ Executor = (*Memory)(nil)

// Put stores a record under an entity type.
func (m *Memory) Put(entityType, id string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[entityType] = append(m.rows[entityType], RecordRow{ID: id, Fields: fields})
}

// Search implements Executor over the in-memory rows.
func (m *Memory) Search(_ context.Context, spec query.Spec) ([]RecordRow, error) {
	if spec.ExtraFilter != "" {
		return nil, fmt.Errorf("extra filter %q not supported by memory executor", spec.ExtraFilter)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(spec.Term)
	matched := make([]RecordRow, 0)
	for _, row := range m.rows[spec.Entity] {
		if term != "" && len(spec.SearchFields) > 0 && !matchesTerm(row, spec.SearchFields, term) {
			continue
		}
		matched = append(matched, projectRow(row, spec.Fields))
	}

	if len(spec.SearchFields) > 0 {
		first := spec.SearchFields[0]
		sort.SliceStable(matched, func(i, j int) bool {
			return scalarText(matched[i].Fields[first]) < scalarText(matched[j].Fields[first])
		})
	}

	if len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}
	return matched, nil
}

// GetByIDs implements Executor over the in-memory rows.
func (m *Memory) GetByIDs(_ context.Context, entityType string, fields []string, ids []string) ([]RecordRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := make(map[string]RecordRow)
	for _, row := range m.rows[entityType] {
		byID[row.ID] = row
	}

	ordered := make([]RecordRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, projectRow(row, fields))
		}
	}
	return ordered, nil
}

func matchesTerm(row RecordRow, searchFields []string, lowerTerm string) bool {
	for _, f := range searchFields {
		if value, ok := valueAtPath(row.Fields, f); ok {
			if strings.Contains(strings.ToLower(scalarText(value)), lowerTerm) {
				return true
			}
		}
	}
	return false
}

func projectRow(row RecordRow, fields []string) RecordRow {
	return RecordRow{ID: row.ID, Fields: projectFields(row.Fields, fields)}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
