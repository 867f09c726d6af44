package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execReorderColumns implements REORDER_COLUMNS{tableName, columns[]}:
// moves the listed columns to the front in that order; remaining
// columns keep their original relative order. All listed columns must
// exist. Row data is unaffected — Row is a map, so only Schema order
// changes.
func execReorderColumns(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || len(p.Columns) == 0 {
		return Result{}, badParameter("REORDER_COLUMNS requires tableName and columns")
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		for _, c := range p.Columns {
			if !t.HasColumn(c) {
				return notFound("column %q not found in table %q", c, p.TableName)
			}
		}

		moved := make(map[string]bool, len(p.Columns))
		newSchema := make([]schema.Column, 0, len(t.Schema))
		for _, name := range p.Columns {
			col, _ := t.Column(name)
			newSchema = append(newSchema, col)
			moved[name] = true
		}
		for _, col := range t.Schema {
			if !moved[col.Name] {
				newSchema = append(newSchema, col)
			}
		}
		t.Schema = newSchema
		res = Result{Table: t}
		return nil
	})
	return res, err
}
