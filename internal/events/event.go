// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lookup_widget_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lookup Domain Events
// =============================================================================

// SearchExecuted is published after a record search completes.
type SearchExecuted struct {
	BaseEvent
	EntityType  string `json:"entityType"`
	FieldCount  int    `json:"fieldCount"`
	ResultCount int    `json:"resultCount"`
}

func (e SearchExecuted) EventName() string { return "lookup.search.executed" }

// =============================================================================
// Metadata Domain Events
// =============================================================================

// CatalogChanged is published when the entity/field catalog is modified,
// so cached metadata can be refreshed.
type CatalogChanged struct {
	BaseEvent
	EntityType string `json:"entityType"`
}

func (e CatalogChanged) EventName() string { return "metadata.catalog.changed" }

// =============================================================================
// Widget Config Domain Events
// =============================================================================

// WidgetConfigSaved is published when a widget's lookup configuration is stored.
type WidgetConfigSaved struct {
	BaseEvent
	WidgetID   string `json:"widgetId"`
	EntityType string `json:"entityType"`
}

func (e WidgetConfigSaved) EventName() string { return "widgetconfig.saved" }
