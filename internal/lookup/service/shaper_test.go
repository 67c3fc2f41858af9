package service

import (
	"reflect"
	"testing"

	"lookup_widget_backend/internal/lookup/repository"
)

func TestShapeSecondarySkipsEmptyValues(t *testing.T) {
	rows := []repository.RecordRow{
		{ID: "1", Fields: map[string]any{"City": "", "Phone": "X"}},
	}
	cfg := RoleConfig{Primary: "Name", Secondary: []string{"City", "Phone"}}

	out := Shape(rows, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Secondary != "X" {
		t.Fatalf("expected secondary %q, got %q", "X", out[0].Secondary)
	}
}

func TestShapeJoinsWithSeparator(t *testing.T) {
	rows := []repository.RecordRow{
		{ID: "1", Fields: map[string]any{
			"Name":     "Acme",
			"City":     "Utrecht",
			"Phone":    "555-0100",
			"Industry": nil,
		}},
	}
	cfg := RoleConfig{
		Primary:   "Name",
		Secondary: []string{"City", "Phone", "Industry"},
		Tertiary:  []string{"Industry"},
	}

	out := Shape(rows, cfg)
	if out[0].Primary != "Acme" {
		t.Fatalf("expected primary Acme, got %q", out[0].Primary)
	}
	if out[0].Secondary != "Utrecht • 555-0100" {
		t.Fatalf("unexpected secondary %q", out[0].Secondary)
	}
	if out[0].Tertiary != "" {
		t.Fatalf("expected empty tertiary, got %q", out[0].Tertiary)
	}
}

func TestShapeIsIdempotent(t *testing.T) {
	rows := []repository.RecordRow{
		{ID: "1", Fields: map[string]any{"Name": "Acme", "Employees": float64(250)}},
		{ID: "2", Fields: map[string]any{"Name": "Globex"}},
	}
	cfg := RoleConfig{Primary: "Name", TableFields: []string{"Name", "Employees"}}

	first := Shape(rows, cfg)
	second := Shape(rows, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output from identical input")
	}
	if first[0].Extra["Employees"] != "250" {
		t.Fatalf("expected numeric cell 250, got %q", first[0].Extra["Employees"])
	}
}

func TestShapeIconFallback(t *testing.T) {
	rows := []repository.RecordRow{{ID: "1", Fields: map[string]any{}}}

	out := Shape(rows, RoleConfig{Primary: "Name"})
	if out[0].Icon != FallbackIcon {
		t.Fatalf("expected fallback icon, got %q", out[0].Icon)
	}

	out = Shape(rows, RoleConfig{Primary: "Name", Icon: "standard:account"})
	if out[0].Icon != "standard:account" {
		t.Fatalf("expected configured icon, got %q", out[0].Icon)
	}
}

func TestColumnLabel(t *testing.T) {
	cases := map[string]string{
		"Name":              "Name",
		"Account_Name__c":   "Account Name",
		"billing_city":      "Billing City",
		"Owner.Name":        "Owner.Name",
		"ANNUAL_REVENUE__c": "ANNUAL REVENUE",
	}
	for in, want := range cases {
		if got := ColumnLabel(in); got != want {
			t.Fatalf("ColumnLabel(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestTableColumnsFallsBackToPrimary(t *testing.T) {
	cols := TableColumns(RoleConfig{Primary: "Name"})
	if len(cols) != 1 || cols[0].Field != "Name" {
		t.Fatalf("expected single primary column, got %v", cols)
	}

	cols = TableColumns(RoleConfig{Primary: "Name", TableFields: []string{"Name", "Industry"}})
	if len(cols) != 2 || cols[1].Label != "Industry" {
		t.Fatalf("expected configured columns, got %v", cols)
	}
}

func TestFilterSelected(t *testing.T) {
	rows := []repository.RecordRow{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}

	out := FilterSelected(rows, []string{"2"})
	if len(out) != 2 || out[0].ID != "1" || out[1].ID != "3" {
		t.Fatalf("expected rows 1 and 3, got %v", out)
	}

	out = FilterSelected(rows, nil)
	if len(out) != 3 {
		t.Fatalf("expected rows untouched with no selection, got %v", out)
	}
}
