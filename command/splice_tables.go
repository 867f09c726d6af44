package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execSpliceTables implements SPLICE_TABLES{newName, selectedTables[]}:
// concatenates rows of every listed table into a new one, failing with
// TypeMismatch unless every listed table shares an identical schema
// (names and types, in order). SPLICE_TABLES(new, [A]) degenerates to
// a deep copy of A named new, per spec.md §8's round-trip law.
func execSpliceTables(reg *registry.Registry, p Params) (Result, error) {
	if p.NewName == "" || len(p.SelectedTables) == 0 {
		return Result{}, badParameter("SPLICE_TABLES requires newName and selectedTables")
	}
	if !schema.ValidIdentifier(p.NewName) {
		return Result{}, badParameter("invalid table name %q", p.NewName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		if _, already := h.Get(p.NewName); already {
			return exists("table %q already exists", p.NewName)
		}

		tables := make([]*schema.Table, 0, len(p.SelectedTables))
		for _, name := range p.SelectedTables {
			t, ok := h.Get(name)
			if !ok {
				return notFound("table %q not found", name)
			}
			tables = append(tables, t)
		}

		first := tables[0]
		for _, t := range tables[1:] {
			if !sameSchema(first.Schema, t.Schema) {
				return typeMismatch("SPLICE_TABLES: %q and %q have different schemas", first.Name, t.Name)
			}
		}

		out := &schema.Table{Name: p.NewName, Schema: cloneColumns(first.Schema)}
		for _, t := range tables {
			for _, row := range t.Rows {
				out.Rows = append(out.Rows, row.Clone())
			}
		}

		if err := h.Insert(out); err != nil {
			return wrapError(Exists, err, "inserting %q", p.NewName)
		}
		res = Result{Table: out, NewName: p.NewName}
		return nil
	})
	return res, err
}

func sameSchema(a, b []schema.Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}
	return true
}

func cloneColumns(cols []schema.Column) []schema.Column {
	out := make([]schema.Column, len(cols))
	copy(out, cols)
	return out
}
