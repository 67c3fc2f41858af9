package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lookup_widget_backend/platform/apperr"
)

const configNotFoundMessage = "widget configuration not found"

// Repo implements the widget configuration repository over Postgres.
// Configurations are stored as jsonb documents keyed by widget id.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new widget configuration repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Get returns the stored configuration for a widget id.
func (r *Repo) Get(ctx context.Context, widgetID string) (LookupConfig, error) {
	query := `SELECT config FROM widget_configs WHERE widget_id = $1`

	var raw []byte
	if err := r.pool.QueryRow(ctx, query, widgetID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LookupConfig{}, apperr.NotFound(configNotFoundMessage)
		}
		return LookupConfig{}, fmt.Errorf("get widget config: %w", err)
	}

	var cfg LookupConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return LookupConfig{}, fmt.Errorf("decode widget config: %w", err)
	}
	return cfg, nil
}

// Save stores or replaces the configuration for a widget id.
func (r *Repo) Save(ctx context.Context, widgetID string, cfg LookupConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode widget config: %w", err)
	}

	query := `
		INSERT INTO widget_configs (widget_id, config)
		VALUES ($1, $2)
		ON CONFLICT (widget_id) DO UPDATE
		SET config = EXCLUDED.config,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, widgetID, raw); err != nil {
		return fmt.Errorf("save widget config: %w", err)
	}
	return nil
}
