package lookup

import (
	"lookup_widget_backend/internal/events"
	apphttp "lookup_widget_backend/internal/http"
	"lookup_widget_backend/internal/lookup/handler"
	"lookup_widget_backend/internal/lookup/repository"
	"lookup_widget_backend/internal/lookup/service"
	"lookup_widget_backend/platform/logger"
	"lookup_widget_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the lookup bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule builds the lookup module on top of the Postgres record store.
// filters resolves stored widget filters; it may be nil.
func NewModule(pool *pgxpool.Pool, filters service.FilterResolver, bus events.Bus, log *logger.Logger, val *validator.Validator, debugQuery bool) *Module {
	exec := repository.New(pool)
	svc := service.New(exec, filters, bus, log, debugQuery)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// NewModuleWithExecutor builds the module with a custom executor.
// Used by tests and in-memory development setups.
func NewModuleWithExecutor(exec repository.Executor, filters service.FilterResolver, bus events.Bus, log *logger.Logger, val *validator.Validator, debugQuery bool) *Module {
	svc := service.New(exec, filters, bus, log, debugQuery)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "lookup"
}

// RegisterRoutes mounts the widget-runtime lookup routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Widget.Group("/lookup")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
