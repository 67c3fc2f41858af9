package service

import (
	"context"
	"strings"
	"time"

	"lookup_widget_backend/internal/events"
	"lookup_widget_backend/internal/lookup/query"
	"lookup_widget_backend/internal/lookup/repository"
	"lookup_widget_backend/internal/lookup/transport"
	"lookup_widget_backend/platform/apperr"
	"lookup_widget_backend/platform/logger"
)

// FilterResolver supplies the trusted extra filter stored in a widget's
// configuration. Filter text reaches the executor only through this path,
// never from the runtime request.
type FilterResolver interface {
	ResolveFilter(ctx context.Context, widgetID string) (string, error)
}

// Service orchestrates a lookup request: build the query spec, execute it
// via the collaborator, and shape rows for display. Each call is
// independent; the service holds no per-request state.
type Service struct {
	exec       repository.Executor
	filters    FilterResolver
	bus        events.Bus
	log        *logger.Logger
	debugQuery bool
}

// New creates a new lookup service. filters may be nil when no widget
// configuration store is wired; searches then run unfiltered.
func New(exec repository.Executor, filters FilterResolver, bus events.Bus, log *logger.Logger, debugQuery bool) *Service {
	return &Service{exec: exec, filters: filters, bus: bus, log: log, debugQuery: debugQuery}
}

// Search runs one search cycle and returns display-ready records.
// Validation failures surface before execution; any executor failure is
// wrapped into a single execution error carrying the original message.
func (s *Service) Search(ctx context.Context, req transport.SearchRequest) (*transport.SearchResponse, error) {
	extraFilter, err := s.resolveFilter(ctx, req.WidgetID)
	if err != nil {
		return nil, err
	}

	spec, err := query.Build(req.EntityType, req.Term, splitCSV(req.Fields), req.Limit, extraFilter)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.exec.Search(ctx, spec)
	if err != nil {
		return nil, apperr.Execution("query execution failed", err).
			WithOp("lookup.Search").
			WithDetails(err.Error())
	}

	rows = FilterSelected(rows, splitCSV(req.SelectedIds))

	cfg := RoleConfig{
		Primary:     req.PrimaryField,
		Secondary:   splitCSV(req.SecondaryFields),
		Tertiary:    splitCSV(req.TertiaryFields),
		TableFields: splitCSV(req.TableFields),
		Icon:        req.Icon,
	}
	items := Shape(rows, cfg)

	if s.log != nil {
		s.log.SearchExecuted(spec.Entity, len(spec.Term), len(spec.Fields), len(items),
			float64(time.Since(start).Milliseconds()))
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.SearchExecuted{
			BaseEvent:   events.NewBaseEvent(),
			EntityType:  spec.Entity,
			FieldCount:  len(spec.Fields),
			ResultCount: len(items),
		})
	}

	resp := &transport.SearchResponse{
		Items:   items,
		Columns: TableColumns(cfg),
		Total:   len(items),
	}
	if s.debugQuery {
		resp.Query = spec.String()
	}
	return resp, nil
}

// resolveFilter loads the extra filter stored for a widget. A widget
// without a saved configuration searches unfiltered.
func (s *Service) resolveFilter(ctx context.Context, widgetID string) (string, error) {
	widgetID = strings.TrimSpace(widgetID)
	if widgetID == "" || s.filters == nil {
		return "", nil
	}

	filter, err := s.filters.ResolveFilter(ctx, widgetID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", nil
		}
		return "", apperr.Internal("widget configuration lookup failed").
			WithOp("lookup.Search").
			WithDetails(err.Error())
	}
	return filter, nil
}

// Records fetches specific records (e.g. flow-supplied preselected ids)
// and shapes them the same way a search result is shaped.
func (s *Service) Records(ctx context.Context, req transport.RecordsRequest) (*transport.RecordsResponse, error) {
	entityType := strings.TrimSpace(req.EntityType)
	if entityType == "" {
		return nil, apperr.Validation("entity type is required")
	}
	ids := splitCSV(req.Ids)
	if len(ids) == 0 {
		return nil, apperr.Validation("at least one record id is required")
	}

	rows, err := s.exec.GetByIDs(ctx, entityType, splitCSV(req.Fields), ids)
	if err != nil {
		return nil, apperr.Execution("query execution failed", err).
			WithOp("lookup.Records").
			WithDetails(err.Error())
	}

	cfg := RoleConfig{
		Primary:     req.PrimaryField,
		Secondary:   splitCSV(req.SecondaryFields),
		Tertiary:    splitCSV(req.TertiaryFields),
		TableFields: splitCSV(req.TableFields),
		Icon:        req.Icon,
	}

	return &transport.RecordsResponse{
		Items:   Shape(rows, cfg),
		Columns: TableColumns(cfg),
	}, nil
}

// Selection computes the widget's selection output contract. Exactly one
// shape is populated depending on the multi-select flag; the other is
// cleared.
func (s *Service) Selection(ctx context.Context, req transport.SelectionRequest) (*transport.SelectionOutput, error) {
	entityType := strings.TrimSpace(req.EntityType)
	if entityType == "" {
		return nil, apperr.Validation("entity type is required")
	}

	cfg := RoleConfig{
		Primary:   req.PrimaryField,
		Secondary: req.SecondaryFields,
		Tertiary:  req.TertiaryFields,
		Icon:      req.Icon,
	}

	out := &transport.SelectionOutput{
		IDs:     []string{},
		Records: []transport.DisplayRecord{},
	}
	if len(req.SelectedIds) == 0 {
		return out, nil
	}

	rows, err := s.exec.GetByIDs(ctx, entityType, req.Fields, req.SelectedIds)
	if err != nil {
		return nil, apperr.Execution("query execution failed", err).
			WithOp("lookup.Selection").
			WithDetails(err.Error())
	}
	records := Shape(rows, cfg)

	if req.MultiSelect {
		out.IDs = make([]string, 0, len(records))
		for _, rec := range records {
			out.IDs = append(out.IDs, rec.ID)
		}
		out.Records = records
		return out, nil
	}

	if len(records) > 0 {
		first := records[0]
		out.ID = first.ID
		out.Primary = first.Primary
		out.Secondary = first.Secondary
		out.Tertiary = first.Tertiary
	}
	return out, nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
