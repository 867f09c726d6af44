package schema

import "github.com/pkg/errors"

// Row is an ordered tuple conceptually, a mapping from column name to
// Value in practice — the owning Table's Schema carries the order.
type Row map[string]Value

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is the unit of ownership: it owns its Schema and Rows outright.
// SourceFile is the on-disk path this table was loaded from, or "" for
// an in-memory-only table (one created by a command rather than load).
type Table struct {
	Name       string
	Schema     []Column
	Rows       []Row
	SourceFile string
}

// New creates an empty table with the given schema. The schema is
// validated for identifier shape and name uniqueness.
func New(name string, columns []Column) (*Table, error) {
	if !ValidIdentifier(name) {
		return nil, errors.Errorf("invalid table name %q", name)
	}
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Schema: cols}, nil
}

// ColumnIndex returns the position of name in t.Schema, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Schema {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is in t.Schema.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the Column descriptor for name, if present.
func (t *Table) Column(name string) (Column, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Schema[i], true
}

// ZeroRow builds a fresh row with every schema column set to its
// type-specific zero value — the starting point of row ingress.
func (t *Table) ZeroRow() Row {
	row := make(Row, len(t.Schema))
	for _, c := range t.Schema {
		row[c.Name] = Zero(c.Type)
	}
	return row
}

// Clone returns a fully independent deep copy of t: a freshly owned
// schema slice, row slice, and row maps. No substructure is shared with
// t, satisfying the "tables created by commands are new owned values"
// invariant.
func (t *Table) Clone() *Table {
	out := &Table{
		Name:       t.Name,
		SourceFile: t.SourceFile,
		Schema:     make([]Column, len(t.Schema)),
		Rows:       make([]Row, len(t.Rows)),
	}
	copy(out.Schema, t.Schema)
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// CloneWithName is Clone with Name and SourceFile overridden — the
// common shape for commands that copy a table under a new name.
func (t *Table) CloneWithName(name string) *Table {
	out := t.Clone()
	out.Name = name
	out.SourceFile = ""
	return out
}
