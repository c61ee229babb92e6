package aggregate

import (
	"github.com/deppfellow/sports-federation/internal/errs"
)

// Rows is the row stream the assembler consumes. pgx.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Columns decodes one column group of a joined row. Targets are handed to
// Scan in select order and are reused for every row, so Value must copy out
// whatever it returns.
type Columns[T any] interface {
	Targets() []any
	// ID returns the group's primary key. ok is false when the group is null
	// on the current row.
	ID() (id int64, ok bool)
	Value() T
}

// ColumnGroup is a child column group bound to the root it attaches to.
// Build one with Child.
type ColumnGroup[R any] interface {
	targets() []any
	merge(rootID int64, root *R, seen map[childKey]struct{})
}

type childKey struct {
	rootID  int64
	childID int64
}

type childGroup[R, C any] struct {
	cols   Columns[C]
	attach func(root *R, child C)
}

// Child declares a child column group: cols decodes it and attach appends a
// decoded child to its root.
func Child[R, C any](cols Columns[C], attach func(root *R, child C)) ColumnGroup[R] {
	return childGroup[R, C]{cols: cols, attach: attach}
}

func (g childGroup[R, C]) targets() []any {
	return g.cols.Targets()
}

func (g childGroup[R, C]) merge(rootID int64, root *R, seen map[childKey]struct{}) {
	id, ok := g.cols.ID()
	if !ok || id <= 0 {
		return
	}
	key := childKey{rootID: rootID, childID: id}
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	g.attach(root, g.cols.Value())
}

// Shape is the static column layout of a join query: the root group followed
// by the child groups, in select order.
type Shape[R any] struct {
	Name     string
	Root     Columns[R]
	Children []ColumnGroup[R]
}

func (s Shape[R]) targets() []any {
	dest := make([]any, 0, 16)
	dest = append(dest, s.Root.Targets()...)
	for _, g := range s.Children {
		dest = append(dest, g.targets()...)
	}
	return dest
}

// Assembled holds the roots produced by one query.
type Assembled[R any] struct {
	ByID map[int64]*R
	// Order lists root ids in first-seen row order.
	Order []int64
}

// Get returns the root with id.
func (a *Assembled[R]) Get(id int64) (*R, bool) {
	root, ok := a.ByID[id]
	return root, ok
}

// List returns the roots in first-seen order.
func (a *Assembled[R]) List() []*R {
	out := make([]*R, 0, len(a.Order))
	for _, id := range a.Order {
		out = append(out, a.ByID[id])
	}
	return out
}

// Assemble folds the joined rows into roots with deduplicated child lists.
// Each child is appended once per root in first-seen order however many
// times join fan-out repeats it, and all-null groups produce nothing. A scan
// or stream error aborts the whole result. Rows is always closed.
func Assemble[R any](rows Rows, shape Shape[R]) (*Assembled[R], error) {
	defer rows.Close()

	op := shape.Name + ".assemble"
	dest := shape.targets()
	out := &Assembled[R]{ByID: make(map[int64]*R)}

	seen := make([]map[childKey]struct{}, len(shape.Children))
	for i := range seen {
		seen[i] = make(map[childKey]struct{})
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, &errs.StoreError{Op: op, Err: err}
		}

		rootID, ok := shape.Root.ID()
		if !ok || rootID <= 0 {
			continue
		}

		root, exists := out.ByID[rootID]
		if !exists {
			value := shape.Root.Value()
			root = &value
			out.ByID[rootID] = root
			out.Order = append(out.Order, rootID)
		}

		for i, g := range shape.Children {
			g.merge(rootID, root, seen[i])
		}
	}

	if err := rows.Err(); err != nil {
		return nil, &errs.StoreError{Op: op, Err: err}
	}

	return out, nil
}
