package transport

// SearchRequest is the widget-runtime search input.
// Field lists are CSV in query params; the builder enforces the row cap.
// The request never carries filter text: the extra filter is trusted
// designer configuration, resolved server-side from the widget id.
type SearchRequest struct {
	EntityType      string `form:"entityType" validate:"required,max=100"`
	Term            string `form:"term" validate:"max=200"`
	Fields          string `form:"fields" validate:"required,max=1000"`
	WidgetID        string `form:"widgetId" validate:"max=100"`
	Limit           int    `form:"limit" validate:"omitempty,min=1"`
	PrimaryField    string `form:"primaryField" validate:"max=100"`
	SecondaryFields string `form:"secondaryFields" validate:"max=500"`
	TertiaryFields  string `form:"tertiaryFields" validate:"max=500"`
	TableFields     string `form:"tableFields" validate:"max=500"`
	SelectedIds     string `form:"selectedIds" validate:"max=4000"`
	Icon            string `form:"icon" validate:"max=100"`
}

// RecordsRequest fetches specific records, e.g. preselected ids on load.
type RecordsRequest struct {
	EntityType      string `form:"entityType" validate:"required,max=100"`
	Ids             string `form:"ids" validate:"required,max=4000"`
	Fields          string `form:"fields" validate:"required,max=1000"`
	PrimaryField    string `form:"primaryField" validate:"max=100"`
	SecondaryFields string `form:"secondaryFields" validate:"max=500"`
	TertiaryFields  string `form:"tertiaryFields" validate:"max=500"`
	TableFields     string `form:"tableFields" validate:"max=500"`
	Icon            string `form:"icon" validate:"max=100"`
}

// SelectionRequest computes the widget's selection output contract.
type SelectionRequest struct {
	EntityType      string   `json:"entityType" validate:"required,max=100"`
	SelectedIds     []string `json:"selectedIds" validate:"max=50"`
	MultiSelect     bool     `json:"multiSelect"`
	Fields          []string `json:"fields" validate:"required,min=1"`
	PrimaryField    string   `json:"primaryField" validate:"max=100"`
	SecondaryFields []string `json:"secondaryFields"`
	TertiaryFields  []string `json:"tertiaryFields"`
	Icon            string   `json:"icon" validate:"max=100"`
}

// DisplayRecord is a display-ready record.
type DisplayRecord struct {
	ID        string            `json:"id"`
	Primary   string            `json:"primary"`   // Main display text
	Secondary string            `json:"secondary"` // Joined with " • ", empties skipped
	Tertiary  string            `json:"tertiary"`
	Icon      string            `json:"icon"`
	Extra     map[string]string `json:"extra,omitempty"` // Datatable cell values
}

// TableColumn describes one datatable column.
type TableColumn struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// SearchResponse is the search endpoint payload.
type SearchResponse struct {
	Items   []DisplayRecord `json:"items"`
	Columns []TableColumn   `json:"columns"`
	Total   int             `json:"total"`
	Query   string          `json:"query,omitempty"` // Canonical query, debug only
}

// RecordsResponse is the detail-fetch payload.
type RecordsResponse struct {
	Items   []DisplayRecord `json:"items"`
	Columns []TableColumn   `json:"columns"`
}

// SelectionOutput is the selection contract consumed by the host flow.
// Exactly one shape is populated: the singular fields in single-select
// mode, the plural lists in multi-select mode.
type SelectionOutput struct {
	ID        string          `json:"id"`
	Primary   string          `json:"primary"`
	Secondary string          `json:"secondary"`
	Tertiary  string          `json:"tertiary"`
	IDs       []string        `json:"ids"`
	Records   []DisplayRecord `json:"records"`
}
