// Package adapters contains thin cross-module adapters so each module only
// depends on interfaces it defines itself.
package adapters

import (
	"context"

	lookupservice "lookup_widget_backend/internal/lookup/service"
	widgetconfigservice "lookup_widget_backend/internal/widgetconfig/service"
)

// WidgetFilterResolver resolves the extra search filter stored in a
// widget's configuration for the lookup module.
type WidgetFilterResolver struct {
	configs *widgetconfigservice.Service
}

// NewWidgetFilterResolver adapts the widget configuration service to the
// lookup module's FilterResolver interface.
func NewWidgetFilterResolver(configs *widgetconfigservice.Service) *WidgetFilterResolver {
	return &WidgetFilterResolver{configs: configs}
}

var _ lookupservice.FilterResolver = (*WidgetFilterResolver)(nil)

// ResolveFilter returns the stored filter for a widget id. Not-found
// passes through as a typed error for the caller to interpret.
func (a *WidgetFilterResolver) ResolveFilter(ctx context.Context, widgetID string) (string, error) {
	cfg, err := a.configs.Get(ctx, widgetID)
	if err != nil {
		return "", err
	}
	return cfg.Filter, nil
}
