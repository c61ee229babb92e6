// Package errs defines the errors shared across layers.
//
// Store operations return the classified errors in store.go so callers can
// branch with errors.As. The HTTP layer turns every error into an HTTPError,
// the single JSON shape API clients receive.
package errs
