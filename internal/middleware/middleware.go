// Package middleware holds the echo middleware of the API: request ids,
// the context logger, bearer token authentication, New Relic tracing,
// Redis-backed rate limiting and the global error handler.
package middleware
