package aggregatetest

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/deppfellow/sports-federation/internal/aggregate"
)

// Rows is an in-memory row stream. Values are assigned to scan targets
// through sql.Scanner when the target implements it (pgtype types do), and
// by reflection otherwise.
type Rows struct {
	Data [][]any
	// FailAt makes Scan fail on the row with this index (1-based). Zero disables it.
	FailAt  int
	ScanErr error
	// StreamErr is returned by Err after the last row.
	StreamErr error

	pos    int
	Closed bool
}

var _ aggregate.Rows = (*Rows)(nil)

func (r *Rows) Next() bool {
	if r.Closed || r.pos >= len(r.Data) {
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.FailAt > 0 && r.pos == r.FailAt {
		if r.ScanErr != nil {
			return r.ScanErr
		}
		return fmt.Errorf("scan failed on row %d", r.pos)
	}

	row := r.Data[r.pos-1]
	if len(row) != len(dest) {
		return fmt.Errorf("row %d has %d values, %d targets", r.pos, len(row), len(dest))
	}

	for i, target := range dest {
		if scanner, ok := target.(sql.Scanner); ok {
			if err := scanner.Scan(row[i]); err != nil {
				return fmt.Errorf("column %d: %w", i, err)
			}
			continue
		}

		rv := reflect.ValueOf(target)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("column %d: target is not a pointer", i)
		}
		elem := rv.Elem()
		if row[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		value := reflect.ValueOf(row[i])
		if !value.Type().AssignableTo(elem.Type()) {
			return fmt.Errorf("column %d: cannot assign %s to %s", i, value.Type(), elem.Type())
		}
		elem.Set(value)
	}
	return nil
}

func (r *Rows) Err() error {
	if r.pos >= len(r.Data) {
		return r.StreamErr
	}
	return nil
}

func (r *Rows) Close() {
	r.Closed = true
}
