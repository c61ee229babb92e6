package repository

import (
	"context"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/sqlerr"
)

// aggregateRepository is the persistence shared by every aggregate root:
// reads go through one join assembled by aggregate.Assemble, writes through
// an aggregate.Coordinator.
type aggregateRepository[R any] struct {
	tables rootTables
	db     database.DBTX
	shape  func() aggregate.Shape[R]
	roots  *rootStore[R]
	coord  *aggregate.Coordinator[R]
}

// Get returns the aggregate with the given id, active or not. It runs as a
// single statement outside any transaction. Child lists come back in id
// order, not in the order they were last saved.
func (r *aggregateRepository[R]) Get(ctx context.Context, id int64) (*R, error) {
	op := r.tables.entity + ".get"
	if id <= 0 {
		return nil, &errs.NotFoundError{Entity: r.tables.entity, ID: id}
	}

	rows, err := r.db.Query(ctx, r.tables.selectAggregate("r.id = $1", "r.id"), id)
	if err != nil {
		return nil, sqlerr.Classify(op, err)
	}

	assembled, err := aggregate.Assemble(rows, r.shape())
	if err != nil {
		return nil, sqlerr.Classify(op, err)
	}

	root, ok := assembled.Get(id)
	if !ok {
		return nil, &errs.NotFoundError{Entity: r.tables.entity, ID: id}
	}
	return root, nil
}

// List returns every active aggregate ordered by id.
func (r *aggregateRepository[R]) List(ctx context.Context) ([]*R, error) {
	op := r.tables.entity + ".list"

	rows, err := r.db.Query(ctx, r.tables.selectAggregate("r.ativo", "r.id"))
	if err != nil {
		return nil, sqlerr.Classify(op, err)
	}

	assembled, err := aggregate.Assemble(rows, r.shape())
	if err != nil {
		return nil, sqlerr.Classify(op, err)
	}
	return assembled.List(), nil
}

// Save creates the aggregate when its id is 0 and updates it otherwise. The
// child lists it holds are the full desired state of each collection.
func (r *aggregateRepository[R]) Save(ctx context.Context, root *R, actorID int64) (int64, error) {
	return r.coord.Save(ctx, root, actorID)
}

// Deactivate marks the root inactive. Its children are kept.
func (r *aggregateRepository[R]) Deactivate(ctx context.Context, id, actorID int64) error {
	if id <= 0 {
		return &errs.NotFoundError{Entity: r.tables.entity, ID: id}
	}
	stamp := r.coord.NewStamp(actorID)
	return r.coord.Run(ctx, "deactivate", func(ctx context.Context, tx database.DBTX) error {
		return r.roots.Deactivate(ctx, tx, id, stamp)
	})
}
