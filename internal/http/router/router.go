// Package router assembles the gin engine from the registered modules.
package router

import (
	"net/http"

	apphttp "lookup_widget_backend/internal/http"
	"lookup_widget_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the HTTP engine: shared middleware, health endpoints, and one
// route-registration pass over the app's modules.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	searchLimiter := httpkit.NewSearchRateLimiter(app.Config, app.Logger)
	authMiddleware := httpkit.AuthRequired(app.Config)

	v1 := engine.Group("/api/v1")

	widget := v1.Group("")
	widget.Use(searchLimiter.RateLimit())

	protected := v1.Group("")
	protected.Use(authMiddleware)

	ctx := &apphttp.RouterContext{
		Engine:            engine,
		V1:                v1,
		Widget:            widget,
		Protected:         protected,
		Config:            app.Config,
		AuthMiddleware:    authMiddleware,
		SearchRateLimiter: searchLimiter,
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		if app.Logger != nil {
			app.Logger.Info("module_routes_registered", "module", module.Name())
		}
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(cfg)
}
