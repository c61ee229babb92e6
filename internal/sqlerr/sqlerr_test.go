package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	cases := map[string]Code{
		"23505": UniqueViolation,
		"23503": ForeignKeyViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"23999": IntegrityConstraintViolation,
		"08006": ConnectionException,
		"57014": QueryCanceled,
		"XX000": Other,
	}
	for state, want := range cases {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityUnknown, MapSeverity("whatever"))
}

func TestClassifyConstraintViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "academias",
		ConstraintName: "academias_cnpj_key",
	}

	err := Classify("academy.insert", fmt.Errorf("insert: %w", pgErr))

	var violation *errs.ConstraintViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "academy.insert", violation.Op)
	assert.Equal(t, "23505", violation.SQLState)
	assert.Equal(t, "academias", violation.Table)
	assert.Equal(t, "academias_cnpj_key", violation.Constraint)
	assert.Equal(t, UniqueViolation, ErrCode(err))

	var raw *pgconn.PgError
	assert.True(t, errors.As(err, &raw), "driver error stays reachable")
}

func TestClassifyNoRows(t *testing.T) {
	err := Classify("academy.get", pgx.ErrNoRows)

	var notFound *errs.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestClassifyStoreErrors(t *testing.T) {
	for _, cause := range []error{
		context.DeadlineExceeded,
		errors.New("conn closed"),
		&pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"},
	} {
		err := Classify("academy.update", cause)

		var storeErr *errs.StoreError
		require.True(t, errors.As(err, &storeErr), cause.Error())
		assert.Equal(t, "academy.update", storeErr.Op)
	}

	err := Classify("op", &pgconn.PgError{Code: "57014"})
	assert.Equal(t, QueryCanceled, ErrCode(err))
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	original := &errs.NotFoundError{Entity: "academy", ID: 4}
	assert.Same(t, original, Classify("other.op", original).(*errs.NotFoundError))

	storeErr := &errs.StoreError{Op: "first", Err: errors.New("boom")}
	wrapped := fmt.Errorf("context: %w", storeErr)
	assert.Equal(t, wrapped, Classify("second", wrapped))

	assert.NoError(t, Classify("op", nil))
}

func TestHandleErrorNotFound(t *testing.T) {
	err := HandleError(&errs.NotFoundError{Entity: "academy", ID: 9})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "ACADEMY_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Academy not found", httpErr.Message)

	err = HandleError(pgx.ErrNoRows)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&errs.ConstraintViolationError{
		Op:         "academy.insert",
		SQLState:   "23505",
		Table:      "academias",
		Constraint: "academias_cnpj_key",
	})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACADEMY_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "Academy with this CNPJ already exists", httpErr.Message)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "academias",
		ColumnName: "federacao_id",
	})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "FEDERATION_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced federation does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&errs.ConstraintViolationError{SQLState: "23502", Table: "academias", Column: "nome"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "ACADEMY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "nome", httpErr.Errors[0].Field)
	assert.Equal(t, "The name is required", httpErr.Message)
}

func TestHandleErrorFallbacks(t *testing.T) {
	original := errs.NewForbiddenError("nope", false)
	assert.Same(t, original, HandleError(original))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(HandleError(errors.New("boom")), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "cnpj", extractColumnForUniqueViolation("academias_cnpj_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_whatever"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
