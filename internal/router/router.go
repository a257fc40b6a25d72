// Package router builds the echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"github.com/deppfellow/leadboard/internal/handler"
	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires the routes behind Clerk authentication.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	return NewRouterWithAuth(s, h, m, m.Auth.RequireAuth)
}

// NewRouterWithAuth wires the routes with auth as the authentication
// middleware. It must set the user id with c.Set(middleware.UserIDKey, ...).
func NewRouterWithAuth(s *server.Server, h *handler.Handlers, m *middleware.Middlewares, auth echo.MiddlewareFunc) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request id feeds the context logger, which the
	// request logger and the error handler read.
	router.Use(
		m.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.CORS(),
		m.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	protected := []echo.MiddlewareFunc{auth, m.RateLimit.Limit()}
	registerLeadRoutes(router.Group("/leads", protected...), h)
	registerDeveloperRoutes(router.Group("/developers", protected...), h)

	return router
}
