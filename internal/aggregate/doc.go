// Package aggregate persists aggregate roots together with their child
// collections.
//
// Reads go through Assemble, which folds the flat rows of a multi-join query
// into deduplicated roots. Writes go through a Coordinator, which runs the
// root upsert and one reconciliation pass per child collection inside a single
// transaction. Reconcile computes the insert/update/delete plan for one
// collection from the currently persisted children and the caller's full
// desired list.
package aggregate
