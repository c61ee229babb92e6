// Package sqlerr handles database driver errors.
//
// Store call sites use Classify to turn driver errors into the classified
// persistence errors of package errs, using the structured SQLSTATE carried by
// the driver rather than error message text. The HTTP layer uses HandleError
// to turn those into client-facing errs.HTTPError values.
package sqlerr
