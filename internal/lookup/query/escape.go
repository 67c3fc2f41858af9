package query

import "strings"

// EscapeQuotes doubles single quotes so user input cannot break out of a
// quoted literal.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeLike escapes special characters for LIKE pattern matching.
func EscapeLike(s string) string {
	// Escape backslash first, then % and _
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

// EscapeTerm applies both quote and LIKE-wildcard escaping to a raw search
// term before it is placed inside a pattern literal.
func EscapeTerm(s string) string {
	return EscapeLike(EscapeQuotes(s))
}
