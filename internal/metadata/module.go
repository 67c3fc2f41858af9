package metadata

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lookup_widget_backend/internal/events"
	apphttp "lookup_widget_backend/internal/http"
	"lookup_widget_backend/internal/metadata/handler"
	"lookup_widget_backend/internal/metadata/repository"
	"lookup_widget_backend/internal/metadata/service"
	"lookup_widget_backend/platform/cache"
	"lookup_widget_backend/platform/logger"
)

// Module wires the metadata bounded context.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule builds the metadata module on top of the Postgres catalog.
func NewModule(pool *pgxpool.Pool, c *cache.Cache, bus events.Bus, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), c, bus, log)
}

// NewModuleWithRepository builds the module with a custom repository.
// Used by tests and in-memory development setups.
func NewModuleWithRepository(repo repository.Repository, c *cache.Cache, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repo, c, bus, log)
	return &Module{handler: handler.New(svc), svc: svc}
}

// Service exposes the metadata service for other modules and background jobs.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) Name() string {
	return "metadata"
}

// RegisterRoutes mounts the catalog routes. Entity and field listings are
// designer-only; the icon lookup is served to the public widget runtime.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	protected := ctx.Protected.Group("/metadata")
	protected.GET("/entities", m.handler.Entities)
	protected.GET("/entities/:type/fields", m.handler.Fields)
	protected.GET("/entities/:type/labels", m.handler.Labels)

	widget := ctx.Widget.Group("/metadata")
	widget.GET("/entities/:type/icon", m.handler.Icon)
}

var _ apphttp.Module = (*Module)(nil)
