// Package handler is the HTTP layer.
//
// It binds and validates requests with the validation package, calls the
// service layer and writes JSON responses. Errors are returned to the global
// error handler, which renders them as errs.HTTPError.
package handler
