package repository

import "context"

// Repository defines widget configuration storage.
type Repository interface {
	// Get returns the stored configuration for a widget id, or a typed
	// not-found error when none was saved yet.
	Get(ctx context.Context, widgetID string) (LookupConfig, error)
	// Save stores or replaces the configuration for a widget id.
	Save(ctx context.Context, widgetID string, cfg LookupConfig) error
}
