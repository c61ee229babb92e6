package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a bearer token to the actor id it was issued for.
type TokenVerifier interface {
	ActorID(token string) (int64, error)
}

type AuthMiddleware struct {
	server   *server.Server
	verifier TokenVerifier
}

func NewAuthMiddleware(s *server.Server, verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		verifier: verifier,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor id under ActorIDKey (and its decimal form under UserIDKey).
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		actorID, err := auth.verifier.ActorID(bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)))
		if err != nil {
			auth.server.Logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("bearer token rejected")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		userID := strconv.FormatInt(actorID, 10)
		c.Set(ActorIDKey, actorID)
		c.Set(UserIDKey, userID)

		auth.server.Logger.Debug().
			Str("function", "RequireAuth").
			Str("user_id", userID).
			Str("request_id", GetRequestID(c)).
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
