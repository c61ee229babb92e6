package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/sports-federation/internal/config"
	"github.com/deppfellow/sports-federation/internal/handler"
	"github.com/deppfellow/sports-federation/internal/middleware"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	srv := &server.Server{
		Config: &config.Config{Observability: config.DefaultObservabilityConfig()},
		Logger: &logger,
	}
	services := &service.Services{Auth: service.NewAuthService("0123456789abcdef0123456789abcdef")}

	return NewRouter(srv, handler.NewHandlers(srv, services), middleware.NewMiddlewares(srv, services.Auth))
}

func TestRouteTable(t *testing.T) {
	e := newTestRouter(t)

	got := make(map[string]bool)
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /status",
		"GET /api/v1/social-networks",
		"GET /api/v1/academies",
		"GET /api/v1/academies/:id",
		"POST /api/v1/academies",
		"PUT /api/v1/academies/:id",
		"DELETE /api/v1/academies/:id",
		"GET /api/v1/federations",
		"GET /api/v1/federations/:id",
		"POST /api/v1/federations",
		"PUT /api/v1/federations/:id",
		"DELETE /api/v1/federations/:id",
	} {
		assert.True(t, got[want], want)
	}
}

func TestWritesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/academies"},
		{http.MethodPut, "/api/v1/federations/1"},
		{http.MethodDelete, "/api/v1/academies/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
		require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
