package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"lookup_widget_backend/internal/lookup/query"
)

// Repo executes lookup queries against the Postgres record store.
// Records live in a single jsonb-backed table, one row per record, so the
// entity type and projected fields can be chosen at request time.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lookup repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Executor.
var _ Executor = (*Repo)(nil)

// Search executes a query spec. The search term is bound as a parameter;
// the canonical spec.Condition is never interpolated into SQL here. The extra
// filter is trusted configuration text written against the record store's
// jsonb dialect and is appended verbatim.
func (r *Repo) Search(ctx context.Context, spec query.Spec) ([]RecordRow, error) {
	whereClauses := []string{"entity_type = $1"}
	args := []interface{}{spec.Entity}

	if spec.Term != "" && len(spec.SearchFields) > 0 {
		args = append(args, "%"+query.EscapeLike(spec.Term)+"%")
		matches := make([]string, len(spec.SearchFields))
		for i, f := range spec.SearchFields {
			matches[i] = fmt.Sprintf("%s ILIKE $%d", jsonText(f), len(args))
		}
		whereClauses = append(whereClauses, "("+strings.Join(matches, " OR ")+")")
	}

	if spec.ExtraFilter != "" {
		whereClauses = append(whereClauses, "("+spec.ExtraFilter+")")
	}

	orderBy := "id"
	if len(spec.SearchFields) > 0 {
		orderBy = jsonText(spec.SearchFields[0]) + " ASC NULLS LAST, id"
	}

	args = append(args, spec.Limit)
	querySQL := fmt.Sprintf(`
		SELECT id::text, fields
		FROM records
		WHERE %s
		ORDER BY %s
		LIMIT $%d`,
		strings.Join(whereClauses, " AND "), orderBy, len(args))

	rows, err := r.pool.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, spec.Fields)
}

// GetByIDs fetches records by identifier, returned in the order requested.
func (r *Repo) GetByIDs(ctx context.Context, entityType string, fields []string, ids []string) ([]RecordRow, error) {
	if len(ids) == 0 {
		return []RecordRow{}, nil
	}

	querySQL := `
		SELECT id::text, fields
		FROM records
		WHERE entity_type = $1 AND id::text = ANY($2)`

	rows, err := r.pool.Query(ctx, querySQL, entityType, ids)
	if err != nil {
		return nil, fmt.Errorf("get records by ids: %w", err)
	}
	defer rows.Close()

	fetched, err := scanRows(rows, fields)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]RecordRow, len(fetched))
	for _, row := range fetched {
		byID[row.ID] = row
	}

	ordered := make([]RecordRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRows(rows pgxRows, fields []string) ([]RecordRow, error) {
	items := make([]RecordRow, 0)
	for rows.Next() {
		var id string
		var raw map[string]any
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		items = append(items, RecordRow{ID: id, Fields: projectFields(raw, fields)})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate records: %w", rows.Err())
	}
	return items, nil
}

// projectFields restricts a stored record to the projected field set.
// Dotted fields (one-level reference traversal, e.g. Owner.Name) are
// flattened under their dotted name.
func projectFields(raw map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if strings.EqualFold(f, query.IdentifierField) {
			continue
		}
		if value, ok := valueAtPath(raw, f); ok {
			out[f] = value
		}
	}
	return out
}

func valueAtPath(raw map[string]any, field string) (any, bool) {
	head, rest, nested := strings.Cut(field, ".")
	value, ok := raw[head]
	if !ok {
		return nil, false
	}
	if !nested {
		return value, true
	}
	child, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return valueAtPath(child, rest)
}

// jsonText renders a jsonb text-extraction expression for a field name.
// Dotted names become a path extraction. Quotes are doubled so metadata
// field names cannot break out of the literal.
func jsonText(field string) string {
	if head, rest, nested := strings.Cut(field, "."); nested {
		return fmt.Sprintf("fields#>>'{%s,%s}'", query.EscapeQuotes(head), query.EscapeQuotes(rest))
	}
	return fmt.Sprintf("fields->>'%s'", query.EscapeQuotes(field))
}
