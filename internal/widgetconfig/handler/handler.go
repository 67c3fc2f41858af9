package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lookup_widget_backend/internal/widgetconfig/repository"
	"lookup_widget_backend/internal/widgetconfig/service"
	"lookup_widget_backend/internal/widgetconfig/transport"
	"lookup_widget_backend/platform/httpkit"
)

const msgInvalidRequest = "invalid request"

// Handler exposes widget configuration management over HTTP.
type Handler struct {
	svc *service.Service
}

// New creates a widget configuration handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Get returns a widget's stored configuration.
// GET /api/v1/widgets/:id/config
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, cfg)
}

// Put validates and stores a widget's configuration.
// PUT /api/v1/widgets/:id/config
func (h *Handler) Put(c *gin.Context) {
	var cfg repository.LookupConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	widgetID := c.Param("id")
	savedBy, _ := httpkit.UserID(c)
	fieldErrs, err := h.svc.Save(c.Request.Context(), widgetID, savedBy, cfg)
	if httpkit.HandleError(c, err) {
		return
	}
	if len(fieldErrs) > 0 {
		httpkit.Error(c, http.StatusBadRequest, "configuration invalid", fieldErrs)
		return
	}
	httpkit.OK(c, transport.SaveResponse{WidgetID: widgetID, Config: cfg.Normalized()})
}

// Validate checks a configuration without persisting it.
// POST /api/v1/widgets/config/validate
func (h *Handler) Validate(c *gin.Context) {
	var cfg repository.LookupConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	errs := h.svc.Validate(cfg)
	httpkit.OK(c, transport.ValidateResponse{Valid: len(errs) == 0, Errors: errs})
}
