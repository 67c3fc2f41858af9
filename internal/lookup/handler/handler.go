package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lookup_widget_backend/internal/lookup/service"
	"lookup_widget_backend/internal/lookup/transport"
	"lookup_widget_backend/platform/httpkit"
	"lookup_widget_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for record lookup.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new lookup handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lookup routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.GET("/records", h.Records)
	rg.POST("/selection", h.Selection)
}

// Search runs a record search.
// GET /api/v1/lookup/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Records fetches specific records by id, e.g. preselected values on load.
// GET /api/v1/lookup/records
func (h *Handler) Records(c *gin.Context) {
	var req transport.RecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Records(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Selection computes the widget's selection output contract.
// POST /api/v1/lookup/selection
func (h *Handler) Selection(c *gin.Context) {
	var req transport.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Selection(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
