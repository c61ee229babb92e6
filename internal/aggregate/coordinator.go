package aggregate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/sqlerr"
	"github.com/rs/zerolog"
)

// RootStore persists the root row of an aggregate.
type RootStore[R any] interface {
	// ID returns the root's id; 0 means not yet created.
	ID(root *R) int64
	Insert(ctx context.Context, tx database.DBTX, root *R, stamp Stamp) (int64, error)
	// Update must return *errs.NotFoundError when no row has the root's id.
	Update(ctx context.Context, tx database.DBTX, root *R, stamp Stamp) error
}

// Deps are the collaborators shared by coordinators.
type Deps struct {
	Runner TxRunner
	Hooks  Hooks
	Log    *zerolog.Logger
	// SlowThreshold logs operations slower than this at warn. Zero disables it.
	SlowThreshold time.Duration
	Now           func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		nop := zerolog.Nop()
		d.Log = &nop
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Coordinator saves one aggregate type: the root upsert followed by one
// reconciliation pass per child collection, strictly in order, on a single
// transaction. Any failure rolls everything back.
type Coordinator[R any] struct {
	name     string
	deps     Deps
	roots    RootStore[R]
	children []Binding[R]
}

// NewCoordinator builds a coordinator. name prefixes operation names
// ("academy" gives "academy.save"); children are synced in the given order.
func NewCoordinator[R any](name string, deps Deps, roots RootStore[R], children ...Binding[R]) *Coordinator[R] {
	return &Coordinator[R]{
		name:     name,
		deps:     deps.withDefaults(),
		roots:    roots,
		children: children,
	}
}

// Save creates the root when its id is 0 and updates it otherwise, then
// reconciles every child collection against the lists held by root. It
// returns the root id. Skipped children are reported through logs and hooks
// once the transaction has committed.
func (c *Coordinator[R]) Save(ctx context.Context, root *R, actorID int64) (int64, error) {
	op := c.name + ".save"
	if root == nil {
		return 0, &errs.StoreError{Op: op, Err: errors.New("nil aggregate")}
	}

	id := c.roots.ID(root)
	if id < 0 {
		return 0, &errs.NotFoundError{Entity: c.name, ID: id}
	}

	stamp := c.NewStamp(actorID)
	var skipped []*errs.ReconciliationSkipError

	err := c.execute(ctx, op, func(ctx context.Context, tx database.DBTX) error {
		skipped = skipped[:0]
		rootID := id

		if rootID == 0 {
			newID, err := c.roots.Insert(ctx, tx, root, stamp)
			if err != nil {
				return sqlerr.Classify(c.name+".insert", err)
			}
			rootID = newID
		} else if err := c.roots.Update(ctx, tx, root, stamp); err != nil {
			return sqlerr.Classify(c.name+".update", err)
		}

		for _, child := range c.children {
			outcome, err := child.Sync(ctx, tx, rootID, root, stamp)
			if err != nil {
				return err
			}
			c.deps.Log.Debug().
				Str("operation", op).
				Str("collection", outcome.Collection).
				Int64("root_id", rootID).
				Int("inserted", outcome.Inserted).
				Int("updated", outcome.Updated).
				Int("deleted", outcome.Deleted).
				Int("skipped", len(outcome.Skipped)).
				Msg("reconciled child collection")
			skipped = append(skipped, outcome.Skipped...)
		}

		id = rootID
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, skip := range skipped {
		c.deps.Log.Warn().
			Str("operation", op).
			Str("collection", skip.Collection).
			Int64("root_id", skip.RootID).
			Int64("key", skip.Key).
			Str("reason", string(skip.Reason)).
			Msg("desired child skipped during reconciliation")
		c.deps.Hooks.ChildSkipped(op, skip)
	}

	return id, nil
}

// NewStamp stamps a write by actorID at the coordinator's current time,
// truncated to the microsecond precision of timestamptz.
func (c *Coordinator[R]) NewStamp(actorID int64) Stamp {
	return Stamp{ActorID: actorID, At: c.deps.Now().UTC().Truncate(time.Microsecond)}
}

// Run executes fn in a transaction with the same error classification, hooks
// and logging as Save. op is appended to the coordinator name.
func (c *Coordinator[R]) Run(ctx context.Context, op string, fn func(ctx context.Context, tx database.DBTX) error) error {
	return c.execute(ctx, c.name+"."+strings.TrimSpace(op), fn)
}

func (c *Coordinator[R]) execute(ctx context.Context, op string, fn func(ctx context.Context, tx database.DBTX) error) error {
	start := time.Now()
	err := sqlerr.Classify(op, c.deps.Runner.InTx(ctx, fn))
	dur := time.Since(start)

	status := OperationStatus(err)
	c.deps.Hooks.ObserveOperation(op, status, dur)

	if err != nil {
		event := c.deps.Log.Error()
		if status == statusNotFound || status == statusConstraintViolation {
			event = c.deps.Log.Warn()
		}
		event.
			Err(err).
			Str("operation", op).
			Str("status", status).
			Str("sql_code", string(sqlerr.ErrCode(err))).
			Dur("duration", dur).
			Msg("aggregate operation rolled back")
		return err
	}

	if c.deps.SlowThreshold > 0 && dur > c.deps.SlowThreshold {
		c.deps.Log.Warn().
			Str("operation", op).
			Dur("duration", dur).
			Msg("slow aggregate operation")
	}

	return nil
}

const (
	statusSuccess             = "success"
	statusNotFound            = "not_found"
	statusConstraintViolation = "constraint_violation"
	statusStoreError          = "store_error"
)

// OperationStatus names the outcome of an aggregate operation for hooks and logs.
func OperationStatus(err error) string {
	if err == nil {
		return statusSuccess
	}
	var (
		notFound  *errs.NotFoundError
		violation *errs.ConstraintViolationError
	)
	switch {
	case errors.As(err, &notFound):
		return statusNotFound
	case errors.As(err, &violation):
		return statusConstraintViolation
	}
	return statusStoreError
}
