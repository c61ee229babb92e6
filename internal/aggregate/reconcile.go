package aggregate

import "github.com/deppfellow/sports-federation/internal/errs"

// MatchMode selects how desired children are matched against current ones.
type MatchMode int

const (
	// MatchBySurrogate matches owned children by their own id. Id <= 0 means
	// a new child; a positive id must belong to the root's current children.
	MatchBySurrogate MatchMode = iota
	// MatchByNaturalKey matches linked children by the catalog id they point
	// to. Callers never know link-row ids, so a known key updates the existing
	// link and an unknown key creates one.
	MatchByNaturalKey
)

func (m MatchMode) String() string {
	switch m {
	case MatchBySurrogate:
		return "surrogate"
	case MatchByNaturalKey:
		return "natural_key"
	}
	return "unknown"
}

// Current is one persisted child of a root. Key is what desired children are
// matched on (the child id for owned children, the catalog id for linked
// ones); ID is the row the store updates or deletes.
type Current struct {
	Key int64
	ID  int64
}

// Match pairs a desired child with the persisted row it updates.
type Match[C any] struct {
	ID    int64
	Child C
}

// Skip is a desired child left out of the plan.
type Skip struct {
	Key    int64
	Reason errs.SkipReason
}

// Plan is the set of writes that turns the current children into the desired ones.
// A plan with Duplicates must not be applied.
type Plan[C any] struct {
	Inserts []C
	Updates []Match[C]
	Deletes []int64
	Skipped []Skip
	// Duplicates lists, once each and in desired order, keys claimed by more
	// than one desired child.
	Duplicates []int64
}

// Empty reports whether the plan writes nothing.
func (p Plan[C]) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Reconcile diffs desired (the full end state of the collection) against
// current. It performs no I/O and is deterministic: inserts and updates
// follow desired order, deletes follow current order.
//
// A key claimed twice in desired is recorded in Duplicates. In
// MatchBySurrogate mode a positive id that is not current is skipped rather
// than inserted, so an id belonging to another root never reaches the store.
// Every current child not retained by an update is deleted.
func Reconcile[C any](mode MatchMode, current []Current, desired []C, key func(C) int64) Plan[C] {
	var plan Plan[C]

	byKey := make(map[int64]int64, len(current))
	for _, c := range current {
		byKey[c.Key] = c.ID
	}

	claimed := make(map[int64]struct{}, len(desired))
	retained := make(map[int64]struct{}, len(current))
	duplicated := make(map[int64]struct{})

	for _, child := range desired {
		k := key(child)

		if k <= 0 {
			if mode == MatchBySurrogate {
				plan.Inserts = append(plan.Inserts, child)
			} else {
				plan.Skipped = append(plan.Skipped, Skip{Key: k, Reason: errs.SkipInvalidKey})
			}
			continue
		}

		if _, dup := claimed[k]; dup {
			if _, reported := duplicated[k]; !reported {
				duplicated[k] = struct{}{}
				plan.Duplicates = append(plan.Duplicates, k)
			}
			continue
		}
		claimed[k] = struct{}{}

		if id, ok := byKey[k]; ok {
			plan.Updates = append(plan.Updates, Match[C]{ID: id, Child: child})
			retained[k] = struct{}{}
			continue
		}

		if mode == MatchByNaturalKey {
			plan.Inserts = append(plan.Inserts, child)
			continue
		}
		plan.Skipped = append(plan.Skipped, Skip{Key: k, Reason: errs.SkipUnknownID})
	}

	for _, c := range current {
		if _, ok := retained[c.Key]; !ok {
			plan.Deletes = append(plan.Deletes, c.ID)
		}
	}

	return plan
}
