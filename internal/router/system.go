package router

import (
	"github.com/deppfellow/leadboard/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the unauthenticated health and docs
// endpoints.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
}
