// Package router builds the Echo router: global middleware, error handling
// and the route table mapping paths to handlers.
package router

import (
	"github.com/deppfellow/sports-federation/internal/handler"
	"github.com/deppfellow/sports-federation/internal/middleware"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// The transaction opens first so it covers every later middleware. The
	// request id must exist before tracing attributes and the context logger
	// read it.
	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerCatalogRoutes(v1, h)
	registerAcademyRoutes(v1, h, middlewares)
	registerFederationRoutes(v1, h, middlewares)

	return router
}
