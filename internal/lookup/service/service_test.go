package service

import (
	"context"
	"testing"

	"lookup_widget_backend/internal/lookup/query"
	"lookup_widget_backend/internal/lookup/repository"
	"lookup_widget_backend/internal/lookup/transport"
	"lookup_widget_backend/platform/apperr"
)

// staticFilterResolver stands in for the widget configuration store.
type staticFilterResolver map[string]string

func (r staticFilterResolver) ResolveFilter(_ context.Context, widgetID string) (string, error) {
	filter, ok := r[widgetID]
	if !ok {
		return "", apperr.NotFound("widget configuration not found")
	}
	return filter, nil
}

// captureExecutor records the spec it was asked to run, then delegates to
// the memory executor with the extra filter stripped so the call succeeds.
type captureExecutor struct {
	*repository.Memory
	lastSpec query.Spec
}

func (e *captureExecutor) Search(ctx context.Context, spec query.Spec) ([]repository.RecordRow, error) {
	e.lastSpec = spec
	stripped := spec
	stripped.ExtraFilter = ""
	return e.Memory.Search(ctx, stripped)
}

func seedAccounts() *repository.Memory {
	exec := repository.NewMemory()
	exec.Put("Account", "a1", map[string]any{"Name": "Acme Corp", "Industry": "Manufacturing"})
	exec.Put("Account", "a2", map[string]any{"Name": "Acme Labs", "Industry": "Research"})
	exec.Put("Account", "a3", map[string]any{"Name": "Globex", "Industry": "Energy"})
	return exec
}

func newTestService() (*Service, *repository.Memory) {
	exec := seedAccounts()
	return New(exec, nil, nil, nil, false), exec
}

func TestSearchReturnsShapedMatches(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType:      "Account",
		Term:            "acme",
		Fields:          "Name,Industry",
		PrimaryField:    "Name",
		SecondaryFields: "Industry",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Items))
	}
	if resp.Items[0].Primary != "Acme Corp" || resp.Items[0].Secondary != "Manufacturing" {
		t.Fatalf("unexpected first item %+v", resp.Items[0])
	}
	if resp.Total != 2 {
		t.Fatalf("expected total 2, got %d", resp.Total)
	}
}

func TestSearchExcludesSelectedIds(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType:   "Account",
		Term:         "acme",
		Fields:       "Name",
		PrimaryField: "Name",
		SelectedIds:  "a1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "a2" {
		t.Fatalf("expected only a2, got %+v", resp.Items)
	}
}

func TestSearchValidationShortCircuits(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType: "   ",
		Fields:     "Name",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearchWrapsExecutorFailure(t *testing.T) {
	// The memory executor rejects raw extra filters, standing in for any
	// downstream execution failure.
	resolver := staticFilterResolver{"widget-1": "Industry = 'Energy'"}
	svc := New(seedAccounts(), resolver, nil, nil, false)

	_, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType: "Account",
		Fields:     "Name",
		WidgetID:   "widget-1",
	})
	if !apperr.Is(err, apperr.KindExecution) {
		t.Fatalf("expected execution error, got %v", err)
	}
}

func TestSearchFilterComesFromStoredConfigOnly(t *testing.T) {
	exec := &captureExecutor{Memory: seedAccounts()}
	resolver := staticFilterResolver{"widget-1": "Industry = 'Energy'"}
	svc := New(exec, resolver, nil, nil, false)

	// Without a widget id the executor must see no extra filter, no matter
	// what else the caller put in the request.
	_, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType: "Account",
		Term:       "1=1) UNION SELECT widget_id, config FROM widget_configs --",
		Fields:     "Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.lastSpec.ExtraFilter != "" {
		t.Fatalf("executor saw filter %q from a request without a widget", exec.lastSpec.ExtraFilter)
	}

	// With a widget id the executor sees exactly the stored filter.
	_, err = svc.Search(context.Background(), transport.SearchRequest{
		EntityType: "Account",
		Fields:     "Name",
		WidgetID:   "widget-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.lastSpec.ExtraFilter != "Industry = 'Energy'" {
		t.Fatalf("executor saw filter %q, want the stored one", exec.lastSpec.ExtraFilter)
	}
}

func TestSearchUnknownWidgetSearchesUnfiltered(t *testing.T) {
	exec := &captureExecutor{Memory: seedAccounts()}
	svc := New(exec, staticFilterResolver{}, nil, nil, false)

	resp, err := svc.Search(context.Background(), transport.SearchRequest{
		EntityType:   "Account",
		Term:         "acme",
		Fields:       "Name",
		PrimaryField: "Name",
		WidgetID:     "never-configured",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.lastSpec.ExtraFilter != "" {
		t.Fatalf("executor saw filter %q for an unconfigured widget", exec.lastSpec.ExtraFilter)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Items))
	}
}

func TestSearchQueryEchoGatedByDebugFlag(t *testing.T) {
	req := transport.SearchRequest{
		EntityType:   "Account",
		Term:         "acme",
		Fields:       "Name",
		PrimaryField: "Name",
	}

	svc := New(seedAccounts(), nil, nil, nil, false)
	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Query != "" {
		t.Fatalf("query echo should be off by default, got %q", resp.Query)
	}

	debugSvc := New(seedAccounts(), nil, nil, nil, true)
	resp, err = debugSvc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Query == "" {
		t.Fatal("expected query echo with debug enabled")
	}
}

func TestRecordsPreservesRequestedOrder(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Records(context.Background(), transport.RecordsRequest{
		EntityType:   "Account",
		Ids:          "a3,a1,missing",
		Fields:       "Name",
		PrimaryField: "Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Items))
	}
	if resp.Items[0].ID != "a3" || resp.Items[1].ID != "a1" {
		t.Fatalf("expected order a3,a1 got %+v", resp.Items)
	}
}

func TestSelectionSingleMode(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Selection(context.Background(), transport.SelectionRequest{
		EntityType:      "Account",
		SelectedIds:     []string{"a1"},
		Fields:          []string{"Name", "Industry"},
		PrimaryField:    "Name",
		SecondaryFields: []string{"Industry"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.ID != "a1" || out.Primary != "Acme Corp" || out.Secondary != "Manufacturing" {
		t.Fatalf("unexpected singular shape %+v", out)
	}
	if len(out.IDs) != 0 || len(out.Records) != 0 {
		t.Fatalf("expected plural shape cleared, got %+v", out)
	}
}

func TestSelectionMultiMode(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Selection(context.Background(), transport.SelectionRequest{
		EntityType:   "Account",
		SelectedIds:  []string{"a1", "a3"},
		MultiSelect:  true,
		Fields:       []string{"Name"},
		PrimaryField: "Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.IDs) != 2 || out.IDs[0] != "a1" || out.IDs[1] != "a3" {
		t.Fatalf("unexpected ids %v", out.IDs)
	}
	if len(out.Records) != 2 {
		t.Fatalf("expected 2 shaped records, got %d", len(out.Records))
	}
	if out.ID != "" || out.Primary != "" {
		t.Fatalf("expected singular shape cleared, got %+v", out)
	}
}

func TestSelectionEmpty(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.Selection(context.Background(), transport.SelectionRequest{
		EntityType: "Account",
		Fields:     []string{"Name"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "" || len(out.IDs) != 0 || len(out.Records) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
