package handler

import (
	"github.com/gin-gonic/gin"

	"lookup_widget_backend/internal/metadata/service"
	"lookup_widget_backend/internal/metadata/transport"
	"lookup_widget_backend/platform/httpkit"
)

// Handler exposes catalog metadata over HTTP.
type Handler struct {
	svc *service.Service
}

// New creates a metadata handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Entities returns the searchable entity types for the designer dropdown.
// GET /api/v1/metadata/entities
func (h *Handler) Entities(c *gin.Context) {
	options, err := h.svc.ListSearchableEntities(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, options)
}

// Fields returns the searchable fields of one entity type.
// GET /api/v1/metadata/entities/:type/fields
func (h *Handler) Fields(c *gin.Context) {
	options := h.svc.ListSearchableFields(c.Request.Context(), c.Param("type"))
	httpkit.OK(c, options)
}

// Labels returns the field name to display label mapping.
// GET /api/v1/metadata/entities/:type/labels
func (h *Handler) Labels(c *gin.Context) {
	entityType := c.Param("type")
	labels, err := h.svc.FieldLabels(c.Request.Context(), entityType)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.LabelsResponse{EntityType: entityType, Labels: labels})
}

// Icon returns the icon identifier for an entity type. Always succeeds.
// GET /api/v1/metadata/entities/:type/icon
func (h *Handler) Icon(c *gin.Context) {
	entityType := c.Param("type")
	icon := h.svc.EntityIcon(c.Request.Context(), entityType)
	httpkit.OK(c, transport.IconResponse{EntityType: entityType, Icon: icon})
}
