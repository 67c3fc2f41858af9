package query

import (
	"fmt"
	"strings"

	"lookup_widget_backend/platform/apperr"
)

// Build constructs a Spec from widget input.
//
// The identifier field is always projected exactly once, even when the
// caller omits it. A non-blank term becomes a disjunctive case-insensitive
// substring condition across every projected non-identifier field; with no
// such fields the term is silently ignored rather than rejected. The extra
// filter is trusted configuration text and is appended verbatim as its own
// parenthesized condition. The row cap is clamped to [1, MaxLimit].
func Build(entityType, term string, fields []string, limit int, extraFilter string) (Spec, error) {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return Spec{}, apperr.Validation("entity type is required")
	}

	projected := normalizeFields(fields)
	if len(projected) == 0 {
		return Spec{}, apperr.Validation("at least one field to return is required")
	}
	if !containsFold(projected, IdentifierField) {
		projected = append(projected, IdentifierField)
	}

	searchFields := make([]string, 0, len(projected))
	for _, f := range projected {
		if !strings.EqualFold(f, IdentifierField) {
			searchFields = append(searchFields, f)
		}
	}

	spec := Spec{
		Entity:       entityType,
		Fields:       projected,
		SearchFields: searchFields,
		Term:         strings.TrimSpace(term),
		ExtraFilter:  strings.TrimSpace(extraFilter),
		Limit:        clampLimit(limit),
	}
	spec.Condition = buildCondition(spec)

	return spec, nil
}

func buildCondition(spec Spec) string {
	var conditions []string

	if spec.Term != "" && len(spec.SearchFields) > 0 {
		escaped := EscapeTerm(spec.Term)
		matches := make([]string, len(spec.SearchFields))
		for i, f := range spec.SearchFields {
			matches[i] = fmt.Sprintf("%s LIKE '%%%s%%'", f, escaped)
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	if spec.ExtraFilter != "" {
		conditions = append(conditions, "("+spec.ExtraFilter+")")
	}

	return strings.Join(conditions, " AND ")
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// normalizeFields trims blanks and removes duplicates, preserving order.
func normalizeFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

func containsFold(fields []string, target string) bool {
	for _, f := range fields {
		if strings.EqualFold(f, target) {
			return true
		}
	}
	return false
}
