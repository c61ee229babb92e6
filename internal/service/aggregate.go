package service

import (
	"context"

	"github.com/rs/zerolog"
)

// AggregateStore is the repository surface shared by aggregate roots.
type AggregateStore[R any] interface {
	Get(ctx context.Context, id int64) (*R, error)
	List(ctx context.Context) ([]*R, error)
	Save(ctx context.Context, root *R, actorID int64) (int64, error)
	Deactivate(ctx context.Context, id, actorID int64) error
}

// aggregateService implements the CRUD flow of one aggregate root. setID
// stamps the id onto a normalized copy before it is saved.
type aggregateService[R any] struct {
	entity    string
	logger    *zerolog.Logger
	store     AggregateStore[R]
	normalize func(*R) *R
	setID     func(*R, int64)
}

func (s *aggregateService[R]) Get(ctx context.Context, id int64) (*R, error) {
	return s.store.Get(ctx, id)
}

func (s *aggregateService[R]) List(ctx context.Context) ([]*R, error) {
	return s.store.List(ctx)
}

func (s *aggregateService[R]) Create(ctx context.Context, root *R, actorID int64) (*R, error) {
	desired := s.normalize(root)
	s.setID(desired, 0)
	return s.save(ctx, desired, actorID, "created")
}

// Update replaces the aggregate with id by root, child collections included.
func (s *aggregateService[R]) Update(ctx context.Context, id int64, root *R, actorID int64) (*R, error) {
	desired := s.normalize(root)
	s.setID(desired, id)
	return s.save(ctx, desired, actorID, "updated")
}

func (s *aggregateService[R]) Deactivate(ctx context.Context, id, actorID int64) error {
	if err := s.store.Deactivate(ctx, id, actorID); err != nil {
		return err
	}

	s.logger.Info().
		Str("entity", s.entity).
		Int64("id", id).
		Int64("actor_id", actorID).
		Msg(s.entity + " deactivated")
	return nil
}

func (s *aggregateService[R]) save(ctx context.Context, desired *R, actorID int64, verb string) (*R, error) {
	id, err := s.store.Save(ctx, desired, actorID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entity", s.entity).
		Int64("id", id).
		Int64("actor_id", actorID).
		Msg(s.entity + " " + verb)

	return s.store.Get(ctx, id)
}
