package middleware

import (
	"net/http"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one access line per request. The request id, method
// and route already sit on the context logger, so this adds the outcome:
// status, latency, the acting user on writes and the store failure behind
// an error response.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler writes the status after this runs.
			status := v.Status
			if v.Error != nil {
				status = toHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				e = logger.Error().Err(v.Error)
			case status >= http.StatusBadRequest:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if actorID, ok := GetActorID(c); ok {
				e = e.Int64("actor_id", actorID)
			}
			if v.Error != nil {
				e = withStoreError(e, v.Error)
			}

			e.
				Int("status", status).
				Dur("latency", v.Latency).
				Str("uri", v.URI).
				Str("user_agent", c.Request().UserAgent()).
				Msg("request served")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler writes every error as an errs.HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)
	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	withStoreError(event, err).
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		_ = c.JSON(httpErr.Status, httpErr)
	}
}

// toHTTPError resolves the response for err. API errors are kept, echo
// errors keep their status and everything else, aggregate store errors
// included, goes through sqlerr.HandleError.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}
		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// withStoreError adds the failed aggregate operation to e.
func withStoreError(e *zerolog.Event, err error) *zerolog.Event {
	var (
		notFound  *errs.NotFoundError
		violation *errs.ConstraintViolationError
		store     *errs.StoreError
	)
	switch {
	case errors.As(err, &notFound):
		return e.Str("entity", notFound.Entity).Int64("entity_id", notFound.ID)
	case errors.As(err, &violation):
		return e.Str("operation", violation.Op).
			Str("sql_state", violation.SQLState).
			Str("constraint", violation.Constraint)
	case errors.As(err, &store):
		return e.Str("operation", store.Op)
	}
	return e
}
