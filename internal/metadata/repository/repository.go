package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lookup_widget_backend/platform/apperr"
)

const entityTypeNotFoundMessage = "entity type not found"

// Repo implements the metadata repository over Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new metadata repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListEntities returns all entity types ordered by label.
func (r *Repo) ListEntities(ctx context.Context) ([]EntityType, error) {
	query := `
		SELECT name, label, icon, searchable, display_name_field
		FROM entity_types
		ORDER BY label ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list entity types: %w", err)
	}
	defer rows.Close()

	var entities []EntityType
	for rows.Next() {
		var e EntityType
		if err := rows.Scan(&e.Name, &e.Label, &e.Icon, &e.Searchable, &e.DisplayNameField); err != nil {
			return nil, fmt.Errorf("scan entity type: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entity types: %w", err)
	}
	return entities, nil
}

// GetEntity returns one entity type by name.
func (r *Repo) GetEntity(ctx context.Context, name string) (EntityType, error) {
	query := `
		SELECT name, label, icon, searchable, display_name_field
		FROM entity_types
		WHERE name = $1`

	var e EntityType
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&e.Name, &e.Label, &e.Icon, &e.Searchable, &e.DisplayNameField,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EntityType{}, apperr.NotFound(entityTypeNotFoundMessage)
		}
		return EntityType{}, fmt.Errorf("get entity type: %w", err)
	}
	return e, nil
}

// ListFields returns the field definitions for an entity type.
func (r *Repo) ListFields(ctx context.Context, entityType string) ([]EntityField, error) {
	query := `
		SELECT entity_type, name, label, data_type, COALESCE(ref_entity, '')
		FROM entity_fields
		WHERE entity_type = $1
		ORDER BY label ASC`

	rows, err := r.pool.Query(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("list entity fields: %w", err)
	}
	defer rows.Close()

	var fields []EntityField
	for rows.Next() {
		var f EntityField
		if err := rows.Scan(&f.EntityType, &f.Name, &f.Label, &f.DataType, &f.RefEntity); err != nil {
			return nil, fmt.Errorf("scan entity field: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entity fields: %w", err)
	}
	return fields, nil
}

// UpsertEntity inserts or updates an entity type definition.
func (r *Repo) UpsertEntity(ctx context.Context, entity EntityType) error {
	query := `
		INSERT INTO entity_types (name, label, icon, searchable, display_name_field)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET label = EXCLUDED.label,
			icon = EXCLUDED.icon,
			searchable = EXCLUDED.searchable,
			display_name_field = EXCLUDED.display_name_field,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		entity.Name, entity.Label, entity.Icon, entity.Searchable, entity.DisplayNameField,
	); err != nil {
		return fmt.Errorf("upsert entity type: %w", err)
	}
	return nil
}

// UpsertField inserts or updates a field definition.
func (r *Repo) UpsertField(ctx context.Context, field EntityField) error {
	query := `
		INSERT INTO entity_fields (entity_type, name, label, data_type, ref_entity)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (entity_type, name) DO UPDATE
		SET label = EXCLUDED.label,
			data_type = EXCLUDED.data_type,
			ref_entity = EXCLUDED.ref_entity,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		field.EntityType, field.Name, field.Label, field.DataType, field.RefEntity,
	); err != nil {
		return fmt.Errorf("upsert entity field: %w", err)
	}
	return nil
}
