package repository

import "strings"

// Display modes the widget runtime understands.
const (
	DisplayModePills     = "pills"
	DisplayModeDatatable = "datatable"
)

// LookupConfig is the per-widget lookup configuration edited in the designer.
// Unknown JSON keys are dropped by the typed unmarshal, older saved documents
// with extra properties load fine.
type LookupConfig struct {
	EntityType      string   `json:"entityType"`
	PrimaryField    string   `json:"primaryField"`
	SecondaryFields []string `json:"secondaryFields,omitempty"`
	TertiaryFields  []string `json:"tertiaryFields,omitempty"`
	TableFields     []string `json:"tableFields,omitempty"`
	// Filter is an extra query condition in the record store's dialect.
	// Written behind the authenticated designer surface and applied
	// server-side; the widget runtime references it by widget id only.
	Filter      string `json:"filter,omitempty"`
	MultiSelect bool   `json:"multiSelect"`
	DisplayMode string `json:"displayMode,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Title       string `json:"title,omitempty"`
}

// FieldError is one field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the configuration and returns all field-level problems.
// An empty slice means the configuration is usable.
func (c LookupConfig) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.EntityType) == "" {
		errs = append(errs, FieldError{Field: "entityType", Message: "entity type is required"})
	}
	if strings.TrimSpace(c.PrimaryField) == "" {
		errs = append(errs, FieldError{Field: "primaryField", Message: "primary field is required"})
	}

	switch c.DisplayMode {
	case "", DisplayModePills, DisplayModeDatatable:
	default:
		errs = append(errs, FieldError{
			Field:   "displayMode",
			Message: "display mode must be pills or datatable",
		})
	}

	if c.DisplayMode == DisplayModeDatatable && len(c.TableFields) == 0 {
		errs = append(errs, FieldError{
			Field:   "tableFields",
			Message: "datatable mode requires at least one table field",
		})
	}

	if hasBlank(c.SecondaryFields) {
		errs = append(errs, FieldError{Field: "secondaryFields", Message: "field names must not be blank"})
	}
	if hasBlank(c.TertiaryFields) {
		errs = append(errs, FieldError{Field: "tertiaryFields", Message: "field names must not be blank"})
	}
	if hasBlank(c.TableFields) {
		errs = append(errs, FieldError{Field: "tableFields", Message: "field names must not be blank"})
	}

	return errs
}

func hasBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

// Normalized returns a copy with defaults applied.
func (c LookupConfig) Normalized() LookupConfig {
	if c.DisplayMode == "" {
		c.DisplayMode = DisplayModePills
	}
	return c
}
