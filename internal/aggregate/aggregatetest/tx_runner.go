// Package aggregatetest provides in-memory doubles for exercising aggregate
// code without a database.
package aggregatetest

import (
	"context"
	"sync"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
)

// InjectedTxRunner runs the body without a real transaction and supports
// failure injection. OnBegin and OnRollback let in-memory stores snapshot and
// restore their state so rollback is observable.
type InjectedTxRunner struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	OnBegin    func()
	OnRollback func()

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregate.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, tx database.DBTX) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if r.OnBegin != nil {
		r.OnBegin()
	}

	if fn != nil {
		if err := fn(ctx, nil); err != nil {
			r.rollback()
			return err
		}
	}

	if failCommit != nil {
		r.rollback()
		return failCommit
	}

	r.mu.Lock()
	r.CommitCalls++
	r.mu.Unlock()
	return nil
}

func (r *InjectedTxRunner) rollback() {
	if r.OnRollback != nil {
		r.OnRollback()
	}
	r.mu.Lock()
	r.RollbackCalls++
	r.mu.Unlock()
}
