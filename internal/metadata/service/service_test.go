package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"lookup_widget_backend/internal/metadata/repository"
	"lookup_widget_backend/platform/apperr"
	"lookup_widget_backend/platform/cache"
	"lookup_widget_backend/platform/logger"
)

func seedCatalog(t *testing.T) *repository.Memory {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	entities := []repository.EntityType{
		{Name: "User", Label: "User", Icon: "standard:user", Searchable: false, DisplayNameField: "Name"},
		{Name: "Contact", Label: "Contact", Icon: "standard:contact", Searchable: true, DisplayNameField: "Name"},
		{Name: "Account", Label: "Account", Icon: "standard:account", Searchable: true, DisplayNameField: "Name"},
		{Name: "Case", Label: "Case", Icon: "", Searchable: true, DisplayNameField: "Subject"},
	}
	for _, e := range entities {
		if err := repo.UpsertEntity(ctx, e); err != nil {
			t.Fatalf("seed entity %s: %v", e.Name, err)
		}
	}

	fields := []repository.EntityField{
		{EntityType: "Account", Name: "Name", Label: "Account Name", DataType: repository.TypeText},
		{EntityType: "Account", Name: "Industry", Label: "Industry", DataType: repository.TypePicklist},
		{EntityType: "Account", Name: "Phone", Label: "Phone", DataType: repository.TypePhone},
		{EntityType: "Account", Name: "AnnualRevenue", Label: "Annual Revenue", DataType: repository.TypeNumber},
		{EntityType: "Account", Name: "OwnerId", Label: "Owner", DataType: repository.TypeReference, RefEntity: "User"},
		{EntityType: "Account", Name: "IsActive", Label: "Active", DataType: repository.TypeBoolean},
		{EntityType: "Contact", Name: "LastName", Label: "Last Name", DataType: repository.TypeText},
		{EntityType: "Contact", Name: "Email", Label: "Email", DataType: repository.TypeEmail},
	}
	for _, f := range fields {
		if err := repo.UpsertField(ctx, f); err != nil {
			t.Fatalf("seed field %s.%s: %v", f.EntityType, f.Name, err)
		}
	}
	return repo
}

func newTestService(t *testing.T, c *cache.Cache) (*Service, *repository.Memory) {
	t.Helper()
	repo := seedCatalog(t)
	return New(repo, c, nil, logger.New("development")), repo
}

func TestListSearchableEntitiesSortedAndFiltered(t *testing.T) {
	svc, _ := newTestService(t, nil)

	options, err := svc.ListSearchableEntities(context.Background())
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}

	var got []string
	for _, o := range options {
		got = append(got, o.Value)
	}
	want := []string{"Account", "Case", "Contact"}
	if len(got) != len(want) {
		t.Fatalf("got entities %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got entities %v, want %v", got, want)
		}
	}
}

func TestListSearchableFieldsTextLikeOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)

	options := svc.ListSearchableFields(context.Background(), "Account")

	byValue := make(map[string]string, len(options))
	for _, o := range options {
		byValue[o.Value] = o.Label
	}
	if _, ok := byValue["AnnualRevenue"]; ok {
		t.Fatalf("number field should be excluded, got %v", options)
	}
	if _, ok := byValue["IsActive"]; ok {
		t.Fatalf("boolean field should be excluded, got %v", options)
	}
	if byValue["Name"] != "Account Name" {
		t.Fatalf("text field missing, got %v", options)
	}
	if byValue["Industry"] != "Industry" {
		t.Fatalf("picklist field missing, got %v", options)
	}
}

func TestListSearchableFieldsReferenceSubstitution(t *testing.T) {
	svc, _ := newTestService(t, nil)

	options := svc.ListSearchableFields(context.Background(), "Account")

	foundPath := false
	for _, o := range options {
		if o.Value == "OwnerId" {
			t.Fatalf("raw reference id should be dropped, got %v", options)
		}
		if o.Value == "Owner.Name" {
			foundPath = true
			if o.Label != "Owner" {
				t.Fatalf("reference label = %q, want Owner", o.Label)
			}
		}
	}
	if !foundPath {
		t.Fatalf("Owner.Name substitution missing, got %v", options)
	}
}

func TestListSearchableFieldsUnknownEntity(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, entityType := range []string{"", "   ", "Nonexistent"} {
		options := svc.ListSearchableFields(context.Background(), entityType)
		if len(options) != 0 {
			t.Fatalf("entity %q: expected empty list, got %v", entityType, options)
		}
	}
}

func TestFieldLabels(t *testing.T) {
	svc, _ := newTestService(t, nil)

	labels, err := svc.FieldLabels(context.Background(), "Contact")
	if err != nil {
		t.Fatalf("field labels: %v", err)
	}
	if labels["LastName"] != "Last Name" || labels["Email"] != "Email" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestFieldLabelsUnknownEntity(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, entityType := range []string{"", "Nonexistent"} {
		if _, err := svc.FieldLabels(context.Background(), entityType); !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("entity %q: expected not-found error, got %v", entityType, err)
		}
	}
}

func TestEntityIconFallback(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if icon := svc.EntityIcon(ctx, "Account"); icon != "standard:account" {
		t.Fatalf("Account icon = %q", icon)
	}
	if icon := svc.EntityIcon(ctx, "Nonexistent"); icon != FallbackIcon {
		t.Fatalf("unknown entity icon = %q, want %q", icon, FallbackIcon)
	}
	if icon := svc.EntityIcon(ctx, ""); icon != FallbackIcon {
		t.Fatalf("blank entity icon = %q, want %q", icon, FallbackIcon)
	}
	// Case has no icon configured.
	if icon := svc.EntityIcon(ctx, "Case"); icon != FallbackIcon {
		t.Fatalf("empty icon = %q, want %q", icon, FallbackIcon)
	}
}

func TestEntityIconCached(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := cache.NewWithClient(client, time.Minute)

	svc, repo := newTestService(t, c)
	ctx := context.Background()

	if icon := svc.EntityIcon(ctx, "Account"); icon != "standard:account" {
		t.Fatalf("first read = %q", icon)
	}

	// The catalog changes but the cached value is still served.
	err := repo.UpsertEntity(ctx, repository.EntityType{
		Name: "Account", Label: "Account", Icon: "custom:briefcase", Searchable: true, DisplayNameField: "Name",
	})
	if err != nil {
		t.Fatalf("update entity: %v", err)
	}
	if icon := svc.EntityIcon(ctx, "Account"); icon != "standard:account" {
		t.Fatalf("cached read = %q, want standard:account", icon)
	}

	if err := svc.RefreshCache(ctx); err != nil {
		t.Fatalf("refresh cache: %v", err)
	}
	if icon := svc.EntityIcon(ctx, "Account"); icon != "custom:briefcase" {
		t.Fatalf("post-refresh read = %q, want custom:briefcase", icon)
	}
}

func TestDegradedPathsTolerateNilLogger(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := cache.NewWithClient(client, time.Minute)

	repo := seedCatalog(t)
	svc := New(repo, c, nil, nil)
	ctx := context.Background()

	// A dead redis makes every cache call fail.
	srv.Close()

	if icon := svc.EntityIcon(ctx, "Account"); icon != "standard:account" {
		t.Fatalf("icon with degraded cache = %q", icon)
	}
	if options := svc.ListSearchableFields(ctx, "Nonexistent"); len(options) != 0 {
		t.Fatalf("unknown entity: expected empty list, got %v", options)
	}
}

func TestApplySeed(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/entities.yaml"
	doc := `entities:
  - name: Lead
    label: Lead
    icon: standard:lead
    searchable: true
    fields:
      - name: Company
        label: Company
        type: text
      - name: OwnerId
        label: Owner
        type: reference
        refEntity: User
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	repo := repository.NewMemory()
	if err := repository.ApplySeed(context.Background(), repo, path); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	entity, err := repo.GetEntity(context.Background(), "Lead")
	if err != nil {
		t.Fatalf("get seeded entity: %v", err)
	}
	if entity.DisplayNameField != "Name" {
		t.Fatalf("display name field = %q, want default Name", entity.DisplayNameField)
	}

	fields, err := repo.ListFields(context.Background(), "Lead")
	if err != nil {
		t.Fatalf("list seeded fields: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("seeded field count = %d, want 2", len(fields))
	}
}
