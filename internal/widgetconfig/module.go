package widgetconfig

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lookup_widget_backend/internal/events"
	apphttp "lookup_widget_backend/internal/http"
	"lookup_widget_backend/internal/widgetconfig/handler"
	"lookup_widget_backend/internal/widgetconfig/repository"
	"lookup_widget_backend/internal/widgetconfig/service"
	"lookup_widget_backend/platform/logger"
)

// Module wires the widget configuration bounded context.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule builds the widget configuration module on Postgres storage.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), bus, log)
}

// NewModuleWithRepository builds the module with a custom store.
// Used by tests and in-memory development setups.
func NewModuleWithRepository(repo repository.Repository, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{handler: handler.New(svc), svc: svc}
}

// Service exposes the configuration service so other modules can resolve
// stored widget settings.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) Name() string {
	return "widgetconfig"
}

// RegisterRoutes mounts the designer-only configuration routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	widgets := ctx.Protected.Group("/widgets")
	widgets.GET("/:id/config", m.handler.Get)
	widgets.PUT("/:id/config", m.handler.Put)
	widgets.POST("/config/validate", m.handler.Validate)
}

var _ apphttp.Module = (*Module)(nil)
