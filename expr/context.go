package expr

import (
	"time"

	"gridbase/schema"
)

// Clock supplies the wall-clock time to TODAY/NOW/DAY/MONTH/YEAR so
// those functions are deterministic under test, per spec.md §4.2.5.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Tables resolves a table by name for cross-table functions (TOTAL) and
// is satisfied by *registry.Registry.
type Tables interface {
	Table(name string) (*schema.Table, bool)
}

// Context is the row context an expression is evaluated against:
// current_row, current_table, and the registry, per spec.md §4.2. A
// single compiled Expr is reused across every row of a batch by
// rebinding Row and Index between calls to Eval.
type Context struct {
	Row    schema.Row
	Index  int
	Table  *schema.Table
	Tables Tables
	Clock  Clock
}
