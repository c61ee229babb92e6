package router

import (
	"net/http"

	"github.com/deppfellow/sports-federation/internal/handler"
	"github.com/deppfellow/sports-federation/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerCatalogRoutes(r *echo.Group, h *handler.Handlers) {
	r.GET("/social-networks", handler.Handle(h.SocialNetwork.List, http.StatusOK))
}

// Reads are public. Writes need a bearer token, whose actor is stamped on
// every row they touch, and are rate limited per actor.
func registerAcademyRoutes(r *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	academies := r.Group("/academies")
	academies.GET("", handler.Handle(h.Academy.List, http.StatusOK))
	academies.GET("/:id", handler.Handle(h.Academy.Get, http.StatusOK))

	writes := academies.Group("", m.Auth.RequireAuth, m.RateLimit.LimitWrites())
	writes.POST("", handler.Handle(h.Academy.Create, http.StatusCreated))
	writes.PUT("/:id", handler.Handle(h.Academy.Update, http.StatusOK))
	writes.DELETE("/:id", handler.HandleNoContent(h.Academy.Deactivate, http.StatusNoContent))
}

func registerFederationRoutes(r *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	federations := r.Group("/federations")
	federations.GET("", handler.Handle(h.Federation.List, http.StatusOK))
	federations.GET("/:id", handler.Handle(h.Federation.Get, http.StatusOK))

	writes := federations.Group("", m.Auth.RequireAuth, m.RateLimit.LimitWrites())
	writes.POST("", handler.Handle(h.Federation.Create, http.StatusCreated))
	writes.PUT("/:id", handler.Handle(h.Federation.Update, http.StatusOK))
	writes.DELETE("/:id", handler.HandleNoContent(h.Federation.Deactivate, http.StatusNoContent))
}
