package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execDropColumns implements DROP_COLUMNS{tableName, columns[]}:
// validates every named column exists, then removes it from the schema
// and every row, atomically and preserving row order, per spec.md §3
// invariant 5.
func execDropColumns(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || len(p.Columns) == 0 {
		return Result{}, badParameter("DROP_COLUMNS requires tableName and columns")
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		drop := make(map[string]bool, len(p.Columns))
		for _, c := range p.Columns {
			if !t.HasColumn(c) {
				return notFound("column %q not found in table %q", c, p.TableName)
			}
			drop[c] = true
		}

		newSchema := make([]schema.Column, 0, len(t.Schema))
		for _, c := range t.Schema {
			if !drop[c.Name] {
				newSchema = append(newSchema, c)
			}
		}
		for i, row := range t.Rows {
			newRow := make(schema.Row, len(newSchema))
			for _, c := range newSchema {
				newRow[c.Name] = row[c.Name]
			}
			t.Rows[i] = newRow
		}
		t.Schema = newSchema
		res = Result{Table: t}
		return nil
	})
	return res, err
}
