package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultWriteLimit is the number of writes one actor may issue per window.
	DefaultWriteLimit  = 60
	DefaultWriteWindow = time.Minute

	rateLimitKeyPrefix = "federation:ratelimit"
	redisCallTimeout   = 200 * time.Millisecond
)

// RedisRateLimitStore is a fixed-window counter in Redis implementing
// echo's RateLimiterStore. When Redis cannot be reached requests are
// allowed.
type RedisRateLimitStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

var _ echomw.RateLimiterStore = (*RedisRateLimitStore)(nil)

func NewRedisRateLimitStore(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// windowKey names the counter of identifier for the window containing now.
func (s *RedisRateLimitStore) windowKey(identifier string) string {
	bucket := s.now().UnixNano() / int64(s.window)
	return fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, identifier, bucket)
}

func (s *RedisRateLimitStore) Allow(identifier string) (bool, error) {
	if s.client == nil {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	key := s.windowKey(identifier)

	var count *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("identifier", identifier).
			Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}

type RateLimitMiddleware struct {
	server *server.Server
	store  echomw.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		store:  NewRedisRateLimitStore(s.Redis, DefaultWriteLimit, DefaultWriteWindow, s.Logger),
	}
}

// LimitWrites limits requests per authenticated actor, falling back to the
// client ip. It must run after RequireAuth.
func (r *RateLimitMiddleware) LimitWrites() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if userID := GetUserID(c); userID != "" {
				return "actor:" + userID, nil
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, try again later")
		},
	})
}

func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
