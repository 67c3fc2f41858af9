package service

import (
	"fmt"
	"strconv"
	"strings"

	"lookup_widget_backend/internal/lookup/repository"
	"lookup_widget_backend/internal/lookup/transport"
)

// displaySeparator joins secondary/tertiary field values.
const displaySeparator = " • "

// FallbackIcon is used whenever no entity icon is known.
const FallbackIcon = "standard:default"

// customFieldSuffix marks custom fields in the host platform's naming scheme.
const customFieldSuffix = "__c"

// RoleConfig maps display roles to field names. Roles are computed
// independently; the same field may serve several roles.
type RoleConfig struct {
	Primary     string
	Secondary   []string
	Tertiary    []string
	TableFields []string
	Icon        string
}

// Shape converts raw rows into display records. Pure and order-preserving;
// shaping the same rows twice yields identical output.
func Shape(rows []repository.RecordRow, cfg RoleConfig) []transport.DisplayRecord {
	icon := cfg.Icon
	if icon == "" {
		icon = FallbackIcon
	}

	out := make([]transport.DisplayRecord, 0, len(rows))
	for _, row := range rows {
		rec := transport.DisplayRecord{
			ID:        row.ID,
			Primary:   fieldText(row, cfg.Primary),
			Secondary: joinRole(row, cfg.Secondary),
			Tertiary:  joinRole(row, cfg.Tertiary),
			Icon:      icon,
		}
		if len(cfg.TableFields) > 0 {
			rec.Extra = make(map[string]string, len(cfg.TableFields))
			for _, f := range cfg.TableFields {
				rec.Extra[f] = fieldText(row, f)
			}
		}
		out = append(out, rec)
	}
	return out
}

// TableColumns derives the datatable column spec from the role config.
// With no configured table fields it falls back to one column for the
// primary field.
func TableColumns(cfg RoleConfig) []transport.TableColumn {
	fields := cfg.TableFields
	if len(fields) == 0 && cfg.Primary != "" {
		fields = []string{cfg.Primary}
	}

	out := make([]transport.TableColumn, 0, len(fields))
	for _, f := range fields {
		out = append(out, transport.TableColumn{Field: f, Label: ColumnLabel(f)})
	}
	return out
}

// ColumnLabel turns a field name into a human-readable column label:
// the custom-field suffix is stripped, underscores become spaces, and
// each word is title-cased.
func ColumnLabel(field string) string {
	name := strings.TrimSuffix(field, customFieldSuffix)
	name = strings.ReplaceAll(name, "_", " ")

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FilterSelected removes rows whose identifier is already selected.
// Callers decide whether to apply it; shaping itself never drops rows.
func FilterSelected(rows []repository.RecordRow, selectedIDs []string) []repository.RecordRow {
	if len(selectedIDs) == 0 {
		return rows
	}

	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	out := make([]repository.RecordRow, 0, len(rows))
	for _, row := range rows {
		if _, skip := selected[row.ID]; !skip {
			out = append(out, row)
		}
	}
	return out
}

func joinRole(row repository.RecordRow, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if text := fieldText(row, f); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, displaySeparator)
}

func fieldText(row repository.RecordRow, field string) string {
	if field == "" {
		return ""
	}
	value, ok := row.Fields[field]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
