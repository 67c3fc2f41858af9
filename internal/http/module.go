// Package http provides HTTP server infrastructure including the Module
// interface that all domain modules must implement for route registration.
package http

import (
	"lookup_widget_backend/platform/config"
	"lookup_widget_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Widget is the public widget-runtime group under /api/v1, rate limited
	// per client IP.
	Widget *gin.RouterGroup
	// Protected is the designer/configuration group under /api/v1, guarded
	// by platform-issued JWTs.
	Protected *gin.RouterGroup
	// Config is the JWT configuration for auth middleware (scoped access).
	Config config.JWTConfig
	// AuthMiddleware provides the authentication middleware.
	AuthMiddleware gin.HandlerFunc
	// SearchRateLimiter throttles the public widget-runtime routes.
	SearchRateLimiter *httpkit.SearchRateLimiter
}
