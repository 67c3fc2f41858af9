package repository

import (
	"encoding/json"
	"testing"
)

func TestValidateRequiredFields(t *testing.T) {
	cfg := LookupConfig{}
	errs := cfg.Validate()

	wantFields := map[string]bool{"entityType": false, "primaryField": false}
	for _, e := range errs {
		if _, ok := wantFields[e.Field]; ok {
			wantFields[e.Field] = true
		}
	}
	for field, seen := range wantFields {
		if !seen {
			t.Fatalf("missing validation error for %s, got %v", field, errs)
		}
	}
}

func TestValidateDisplayMode(t *testing.T) {
	base := LookupConfig{EntityType: "Account", PrimaryField: "Name"}

	for _, mode := range []string{"", DisplayModePills} {
		cfg := base
		cfg.DisplayMode = mode
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Fatalf("mode %q: unexpected errors %v", mode, errs)
		}
	}

	cfg := base
	cfg.DisplayMode = "carousel"
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "displayMode" {
		t.Fatalf("invalid mode: got %v", errs)
	}
}

func TestValidateDatatableNeedsColumns(t *testing.T) {
	cfg := LookupConfig{
		EntityType:   "Account",
		PrimaryField: "Name",
		DisplayMode:  DisplayModeDatatable,
	}
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "tableFields" {
		t.Fatalf("got %v", errs)
	}

	cfg.TableFields = []string{"Name", "Industry"}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("with columns: unexpected errors %v", errs)
	}
}

func TestValidateBlankRoleFields(t *testing.T) {
	cfg := LookupConfig{
		EntityType:      "Account",
		PrimaryField:    "Name",
		SecondaryFields: []string{"Industry", "  "},
		TertiaryFields:  []string{""},
	}
	errs := cfg.Validate()

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	if !fields["secondaryFields"] || !fields["tertiaryFields"] {
		t.Fatalf("got %v", errs)
	}
}

func TestUnknownJSONKeysIgnored(t *testing.T) {
	doc := `{
		"entityType": "Account",
		"primaryField": "Name",
		"legacyColor": "#ff0000",
		"nested": {"anything": true}
	}`

	var cfg LookupConfig
	if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.EntityType != "Account" || cfg.PrimaryField != "Name" {
		t.Fatalf("decoded %+v", cfg)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestNormalizedDefaultsDisplayMode(t *testing.T) {
	cfg := LookupConfig{EntityType: "Account", PrimaryField: "Name"}
	if got := cfg.Normalized().DisplayMode; got != DisplayModePills {
		t.Fatalf("display mode = %q, want %q", got, DisplayModePills)
	}

	cfg.DisplayMode = DisplayModeDatatable
	if got := cfg.Normalized().DisplayMode; got != DisplayModeDatatable {
		t.Fatalf("display mode = %q, want %q", got, DisplayModeDatatable)
	}
}
