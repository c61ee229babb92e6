package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/sqlerr"
)

// Stamp is the actor and instant written to every row touched by one call.
type Stamp struct {
	ActorID int64
	At      time.Time
}

// ChildStore persists one child collection type. Every method runs on the
// transaction it is given and is scoped to rootID: Current returns only the
// root's active children, and Update/Delete must not touch rows of another root.
type ChildStore[C any] interface {
	Current(ctx context.Context, tx database.DBTX, rootID int64) ([]Current, error)
	Insert(ctx context.Context, tx database.DBTX, rootID int64, child C, stamp Stamp) (int64, error)
	Update(ctx context.Context, tx database.DBTX, rootID, id int64, child C, stamp Stamp) error
	Delete(ctx context.Context, tx database.DBTX, rootID, id int64) error
}

// Outcome summarizes one reconciliation pass.
type Outcome struct {
	Collection string
	Inserted   int
	Updated    int
	Deleted    int
	Skipped    []*errs.ReconciliationSkipError
}

// Binding is one child collection declared on an aggregate root.
type Binding[R any] interface {
	Sync(ctx context.Context, tx database.DBTX, rootID int64, root *R, stamp Stamp) (Outcome, error)
}

// Collection binds a child collection of R to its store.
type Collection[R, C any] struct {
	// Name identifies the collection in errors and logs, e.g. "academy.addresses".
	Name  string
	Mode  MatchMode
	Key   func(C) int64
	Items func(root *R) []C
	Store ChildStore[C]
}

// Sync reads the root's current children, reconciles them with the desired
// list held by root and applies the plan: inserts, then updates, then deletes.
// A desired list that repeats a key fails with *errs.ConstraintViolationError
// before the collection is written.
func (c Collection[R, C]) Sync(ctx context.Context, tx database.DBTX, rootID int64, root *R, stamp Stamp) (Outcome, error) {
	outcome := Outcome{Collection: c.Name}

	current, err := c.Store.Current(ctx, tx, rootID)
	if err != nil {
		return outcome, sqlerr.Classify(c.Name+".current", err)
	}

	plan := Reconcile(c.Mode, current, c.Items(root), c.Key)
	if len(plan.Duplicates) > 0 {
		return outcome, c.duplicateKeyError(plan.Duplicates)
	}

	for _, child := range plan.Inserts {
		if _, err := c.Store.Insert(ctx, tx, rootID, child, stamp); err != nil {
			return outcome, sqlerr.Classify(c.Name+".insert", err)
		}
		outcome.Inserted++
	}

	for _, m := range plan.Updates {
		if err := c.Store.Update(ctx, tx, rootID, m.ID, m.Child, stamp); err != nil {
			return outcome, sqlerr.Classify(c.Name+".update", err)
		}
		outcome.Updated++
	}

	for _, id := range plan.Deletes {
		if err := c.Store.Delete(ctx, tx, rootID, id); err != nil {
			return outcome, sqlerr.Classify(c.Name+".delete", err)
		}
		outcome.Deleted++
	}

	for _, s := range plan.Skipped {
		outcome.Skipped = append(outcome.Skipped, &errs.ReconciliationSkipError{
			Collection: c.Name,
			RootID:     rootID,
			Key:        s.Key,
			Reason:     s.Reason,
		})
	}

	return outcome, nil
}

// duplicateKeyError rejects a desired list that claims the same key twice,
// the in-memory counterpart of the collection's unique constraint.
func (c Collection[R, C]) duplicateKeyError(keys []int64) error {
	return &errs.ConstraintViolationError{
		Op:         c.Name + ".reconcile",
		SQLState:   sqlerr.StateUniqueViolation,
		Constraint: c.Name + "_" + c.Mode.String() + "_key",
		Err:        fmt.Errorf("keys %v appear more than once in the desired children", keys),
	}
}
