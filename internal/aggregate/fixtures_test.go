package aggregate_test

import (
	"context"
	"maps"
	"sync"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/aggregate/aggregatetest"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/jackc/pgx/v5/pgtype"
)

type member struct {
	ID   int64
	Name string
}

type link struct {
	ID        int64
	NetworkID int64
	Profile   string
}

type team struct {
	ID      int64
	Name    string
	Members []member
	Links   []link
}

// Column groups for the team join: team.id, team.name, member.id,
// member.name, link.id, link.network_id, link.profile.

type teamColumns struct {
	id   pgtype.Int8
	name pgtype.Text
}

func (c *teamColumns) Targets() []any    { return []any{&c.id, &c.name} }
func (c *teamColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }
func (c *teamColumns) Value() team       { return team{ID: c.id.Int64, Name: c.name.String} }

type memberColumns struct {
	id   pgtype.Int8
	name pgtype.Text
}

func (c *memberColumns) Targets() []any    { return []any{&c.id, &c.name} }
func (c *memberColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }
func (c *memberColumns) Value() member     { return member{ID: c.id.Int64, Name: c.name.String} }

type linkColumns struct {
	id        pgtype.Int8
	networkID pgtype.Int8
	profile   pgtype.Text
}

func (c *linkColumns) Targets() []any    { return []any{&c.id, &c.networkID, &c.profile} }
func (c *linkColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }
func (c *linkColumns) Value() link {
	return link{ID: c.id.Int64, NetworkID: c.networkID.Int64, Profile: c.profile.String}
}

func teamShape() aggregate.Shape[team] {
	return aggregate.Shape[team]{
		Name: "team",
		Root: &teamColumns{},
		Children: []aggregate.ColumnGroup[team]{
			aggregate.Child[team, member](&memberColumns{}, func(t *team, m member) {
				t.Members = append(t.Members, m)
			}),
			aggregate.Child[team, link](&linkColumns{}, func(t *team, l link) {
				t.Links = append(t.Links, l)
			}),
		},
	}
}

// teamStore is an in-memory root store for teams.
type teamStore struct {
	mu      sync.Mutex
	rows    map[int64]team
	nextID  int64
	saved   map[int64]team
	savedID int64

	FailInsert error
	FailUpdate error
}

func newTeamStore() *teamStore {
	return &teamStore{rows: make(map[int64]team)}
}

func (s *teamStore) ID(t *team) int64 { return t.ID }

func (s *teamStore) Insert(_ context.Context, _ database.DBTX, t *team, _ aggregate.Stamp) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInsert != nil {
		return 0, s.FailInsert
	}
	s.nextID++
	s.rows[s.nextID] = team{ID: s.nextID, Name: t.Name}
	return s.nextID, nil
}

func (s *teamStore) Update(_ context.Context, _ database.DBTX, t *team, _ aggregate.Stamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	if _, ok := s.rows[t.ID]; !ok {
		return &errs.NotFoundError{Entity: "team", ID: t.ID}
	}
	s.rows[t.ID] = team{ID: t.ID, Name: t.Name}
	return nil
}

func (s *teamStore) name(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id].Name
}

func (s *teamStore) snapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = maps.Clone(s.rows)
	s.savedID = s.nextID
}

func (s *teamStore) restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = maps.Clone(s.saved)
	s.nextID = s.savedID
}

// harness wires a team coordinator over in-memory stores with rollback support.
type harness struct {
	teams   *teamStore
	members *aggregatetest.MemoryStore[member]
	links   *aggregatetest.MemoryStore[link]
	runner  *aggregatetest.InjectedTxRunner
	hooks   *aggregatetest.HooksRecorder
	coord   *aggregate.Coordinator[team]
}

func newHarness() *harness {
	h := &harness{
		teams: newTeamStore(),
		members: &aggregatetest.MemoryStore[member]{
			WithID: func(m member, id int64) member { m.ID = id; return m },
		},
		links: &aggregatetest.MemoryStore[link]{
			NaturalKey: func(l link) int64 { return l.NetworkID },
			WithID:     func(l link, id int64) link { l.ID = id; return l },
		},
		hooks: &aggregatetest.HooksRecorder{},
	}
	h.runner = &aggregatetest.InjectedTxRunner{
		OnBegin: func() {
			h.teams.snapshot()
			h.members.Snapshot()
			h.links.Snapshot()
		},
		OnRollback: func() {
			h.teams.restore()
			h.members.Restore()
			h.links.Restore()
		},
	}

	h.coord = aggregate.NewCoordinator[team]("team",
		aggregate.Deps{Runner: h.runner, Hooks: h.hooks},
		h.teams,
		aggregate.Collection[team, member]{
			Name:  "team.members",
			Mode:  aggregate.MatchBySurrogate,
			Key:   func(m member) int64 { return m.ID },
			Items: func(t *team) []member { return t.Members },
			Store: h.members,
		},
		aggregate.Collection[team, link]{
			Name:  "team.links",
			Mode:  aggregate.MatchByNaturalKey,
			Key:   func(l link) int64 { return l.NetworkID },
			Items: func(t *team) []link { return t.Links },
			Store: h.links,
		},
	)
	return h
}

// get reads a team back from the stores, the way a join would.
func (h *harness) get(id int64) team {
	return team{
		ID:      id,
		Name:    h.teams.name(id),
		Members: h.members.Children(id),
		Links:   h.links.Children(id),
	}
}

func names(members []member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func row(values ...any) []any { return values }

func i64(v int64) any { return v }
