package sqlerr

import (
	"errors"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify wraps the error returned by a store call into one of the
// classified persistence errors. op names the failing step and ends up in
// the error message and logs.
//
//   - SQLSTATE class 23 (integrity) -> *errs.ConstraintViolationError
//   - pgx.ErrNoRows                 -> *errs.NotFoundError
//   - anything else                 -> *errs.StoreError
//
// Errors that are already classified are returned unchanged, so Classify can
// be applied at every layer without double wrapping.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && IsIntegrityViolation(pgErr.Code) {
		return &errs.ConstraintViolationError{
			Op:         op,
			SQLState:   pgErr.Code,
			Table:      pgErr.TableName,
			Column:     pgErr.ColumnName,
			Constraint: pgErr.ConstraintName,
			Err:        ConvertPgError(pgErr),
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &errs.NotFoundError{Err: err}
	}

	if pgErr != nil {
		err = ConvertPgError(pgErr)
	}
	return &errs.StoreError{Op: op, Err: err}
}

// IsClassified reports whether err already carries a persistence classification.
func IsClassified(err error) bool {
	var (
		notFound  *errs.NotFoundError
		violation *errs.ConstraintViolationError
		store     *errs.StoreError
	)
	return errors.As(err, &notFound) || errors.As(err, &violation) || errors.As(err, &store)
}
