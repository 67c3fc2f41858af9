package transport

import "lookup_widget_backend/internal/widgetconfig/repository"

// ValidateResponse reports the outcome of a configuration validation.
type ValidateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors []repository.FieldError `json:"errors"`
}

// SaveResponse confirms a stored configuration.
type SaveResponse struct {
	WidgetID string                  `json:"widgetId"`
	Config   repository.LookupConfig `json:"config"`
}
