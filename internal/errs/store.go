package errs

import (
	"fmt"
	"strings"
)

// The errors below classify failures of the persistence layer. They are
// produced at the point a store call fails and travel up to the service and
// HTTP layers unchanged, where they are matched with errors.As.

// NotFoundError reports that a Get found nothing or a write targeted a root
// that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *NotFoundError) Error() string {
	entity := e.Entity
	if entity == "" {
		entity = "record"
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %d not found", entity, e.ID)
	}
	return entity + " not found"
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ConstraintViolationError reports an integrity constraint failure (SQLSTATE
// class 23) during a root or child write.
type ConstraintViolationError struct {
	Op         string
	SQLState   string
	Table      string
	Column     string
	Constraint string
	Err        error
}

func (e *ConstraintViolationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": constraint violation")
	if e.Constraint != "" {
		b.WriteString(" on ")
		b.WriteString(e.Constraint)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }

// StoreError reports a connection, timeout, protocol or decode failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": store failure"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// SkipReason explains why a desired child was left out of a reconciliation plan.
type SkipReason string

const (
	// SkipUnknownID: the child carries a surrogate id that is not among the
	// root's current children.
	SkipUnknownID SkipReason = "unknown_id"
	// SkipInvalidKey: a linked child without a usable natural key.
	SkipInvalidKey SkipReason = "invalid_key"
)

// ReconciliationSkipError is non-fatal. It is never returned from Save; it is
// reported through logs and hooks so dropped children stay visible.
type ReconciliationSkipError struct {
	Collection string
	RootID     int64
	Key        int64
	Reason     SkipReason
}

func (e *ReconciliationSkipError) Error() string {
	return fmt.Sprintf("%s: skipped child with key %d for root %d (%s)", e.Collection, e.Key, e.RootID, e.Reason)
}
