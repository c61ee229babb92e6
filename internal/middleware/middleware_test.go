package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/sports-federation/internal/config"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

type verifierFunc func(string) (int64, error)

func (f verifierFunc) ActorID(token string) (int64, error) { return f(token) }

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer "))
	assert.Equal(t, "", bearerToken(""))
}

func TestRequireAuth(t *testing.T) {
	auth := NewAuthMiddleware(testServer(), verifierFunc(func(token string) (int64, error) {
		if token == "good" {
			return 42, nil
		}
		return 0, errors.New("bad token")
	}))

	var seenActor int64
	next := auth.RequireAuth(func(c echo.Context) error {
		seenActor, _ = GetActorID(c)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	c, _ := newContext(req)
	require.NoError(t, next(c))
	assert.Equal(t, int64(42), seenActor)
	assert.Equal(t, "42", GetUserID(c))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer forged")
	c, _ = newContext(req)
	err := next(c)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestRequestID(t *testing.T) {
	handler := RequestID()(func(c echo.Context) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "9b2f3f0e-9a39-4bde-8f3c-5b6a1c1d2e3f")
	c, rec := newContext(req)
	require.NoError(t, handler(c))
	assert.Equal(t, "9b2f3f0e-9a39-4bde-8f3c-5b6a1c1d2e3f", GetRequestID(c))
	assert.Equal(t, GetRequestID(c), rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	c, _ = newContext(req)
	require.NoError(t, handler(c))
	assert.NotEqual(t, "<script>", GetRequestID(c))
	assert.Len(t, GetRequestID(c), 36)
}

func TestRateLimitStoreFailsOpen(t *testing.T) {
	logger := zerolog.Nop()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRateLimitStore(client, 1, time.Minute, &logger)
	for i := 0; i < 3; i++ {
		allowed, err := store.Allow("actor:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := NewRedisRateLimitStore(nil, 1, time.Minute, &logger).Allow("actor:1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitWindowKey(t *testing.T) {
	logger := zerolog.Nop()
	store := NewRedisRateLimitStore(nil, 1, time.Minute, &logger)

	base := time.Date(2026, 1, 1, 10, 0, 5, 0, time.UTC)
	store.now = func() time.Time { return base }
	first := store.windowKey("actor:1")

	store.now = func() time.Time { return base.Add(50 * time.Second) }
	assert.Equal(t, first, store.windowKey("actor:1"), "same window")

	store.now = func() time.Time { return base.Add(time.Minute) }
	assert.NotEqual(t, first, store.windowKey("actor:1"))
	assert.Contains(t, first, "federation:ratelimit:actor:1:")
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(testServer())

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", &errs.NotFoundError{Entity: "academy", ID: 3}, http.StatusNotFound, "ACADEMY_NOT_FOUND"},
		{"unique", &pgconn.PgError{Code: "23505", TableName: "academias", ConstraintName: "academias_cnpj_key"}, http.StatusBadRequest, "ACADEMY_ALREADY_EXISTS"},
		{"store", &errs.StoreError{Op: "academy.save", Err: errors.New("conn reset")}, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"method", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate limit", errs.NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
			global.GlobalErrorHandler(tc.err, c)

			assert.Equal(t, tc.status, rec.Code)
			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.status, body.Status)
		})
	}
}

func TestRequestLoggerRecordsActorAndStoreFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c, _ := newContext(httptest.NewRequest(http.MethodPut, "/api/v1/academies/4", nil))
	c.Set(LoggerKey, &logger)

	handler := NewGlobalMiddlewares(testServer()).RequestLogger()(func(c echo.Context) error {
		c.Set(ActorIDKey, int64(7))
		return &errs.ConstraintViolationError{
			Op:         "academy.social_links.reconcile",
			SQLState:   "23505",
			Constraint: "academy.social_links_natural_key_key",
		}
	})
	require.Error(t, handler(c))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, float64(http.StatusBadRequest), line["status"])
	assert.Equal(t, float64(7), line["actor_id"])
	assert.Equal(t, "academy.social_links.reconcile", line["operation"])
	assert.Equal(t, "23505", line["sql_state"])
}

func TestGlobalErrorHandlerKeepsFieldErrors(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	fields := []errs.FieldError{{Field: "cnpj", Error: "must be a valid CNPJ"}}

	NewGlobalMiddlewares(testServer()).GlobalErrorHandler(
		errs.NewBadRequestError("Validation failed", true, nil, fields, nil), c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, fields, body.Errors)
	assert.True(t, body.Override)
}
