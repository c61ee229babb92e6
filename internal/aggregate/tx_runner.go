package aggregate

import (
	"context"
	"errors"

	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/jackc/pgx/v5"
)

// TxRunner provides the transaction boundary for aggregate writes. fn runs
// with the transaction as its only statement target; returning an error rolls
// the transaction back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx database.DBTX) error) error
}

type pgxTxRunner struct {
	db database.TxBeginner
}

// NewPgxTxRunner returns a transaction runner backed by pgx transactions.
func NewPgxTxRunner(db database.TxBeginner) TxRunner {
	return &pgxTxRunner{db: db}
}

func (r *pgxTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, tx database.DBTX) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return &errs.StoreError{Op: "aggregate.tx", Err: errors.New("transaction runner has nil db")}
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}
