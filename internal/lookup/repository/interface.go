package repository

import (
	"context"

	"lookup_widget_backend/internal/lookup/query"
)

// RecordRow is a single row returned by query execution: the identifier
// plus a mapping from field name to scalar value. Rows are not mutated
// after they are returned.
type RecordRow struct {
	ID     string
	Fields map[string]any
}

// Executor runs built query specs against the record store.
// Implementations report their own failures; the service layer wraps every
// execution failure into a single typed error.
type Executor interface {
	// Search executes a query spec and returns at most spec.Limit rows.
	Search(ctx context.Context, spec query.Spec) ([]RecordRow, error)
	// GetByIDs fetches specific records of one entity type, projected to
	// fields, in the order the ids were given. Unknown ids are skipped.
	GetByIDs(ctx context.Context, entityType string, fields []string, ids []string) ([]RecordRow, error)
}
