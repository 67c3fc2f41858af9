// Package query builds record-store query specifications for the lookup
// widget. Building is pure: nothing here touches the database.
package query

import (
	"fmt"
	"strings"
)

const (
	// IdentifierField is the unique-key field every entity type carries.
	IdentifierField = "Id"
	// DefaultLimit is the row cap applied when the caller does not supply one.
	DefaultLimit = 10
	// MaxLimit is the hard ceiling on returned rows regardless of caller input.
	MaxLimit = 50
)

// Spec is a fully-formed, ready-to-execute query specification.
// Fields always contains IdentifierField exactly once. Condition is the
// canonical, dialect-neutral rendering of the match expression; executors
// may bind Term/SearchFields as parameters instead of interpolating it.
type Spec struct {
	Entity       string
	Fields       []string
	SearchFields []string
	Term         string
	Condition    string
	ExtraFilter  string
	Limit        int
}

// String renders the spec as a query string, for logs and debugging.
func (s Spec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(s.Fields, ", "), s.Entity)
	if s.Condition != "" {
		fmt.Fprintf(&b, " WHERE %s", s.Condition)
	}
	fmt.Fprintf(&b, " LIMIT %d", s.Limit)
	return b.String()
}
