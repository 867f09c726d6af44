package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execGroupTable implements GROUP_TABLE{tableName, groupColumn,
// columns[], newName}: groups rows by groupColumn's value, emitting
// groupColumn plus each requested column summed. Every requested
// column must be INT or REAL.
func execGroupTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.GroupColumn == "" || len(p.Columns) == 0 || p.NewName == "" {
		return Result{}, badParameter("GROUP_TABLE requires tableName, groupColumn, columns, and newName")
	}
	if !schema.ValidIdentifier(p.NewName) {
		return Result{}, badParameter("invalid table name %q", p.NewName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		if _, already := h.Get(p.NewName); already {
			return exists("table %q already exists", p.NewName)
		}
		if !t.HasColumn(p.GroupColumn) {
			return notFound("group column %q not found in table %q", p.GroupColumn, p.TableName)
		}

		var numeric []schema.Column
		for _, name := range p.Columns {
			col, ok := t.Column(name)
			if !ok {
				return notFound("column %q not found in table %q", name, p.TableName)
			}
			if col.Type != schema.INT && col.Type != schema.REAL {
				return typeMismatch("GROUP_TABLE column %q must be INT or REAL, got %s", name, col.Type)
			}
			numeric = append(numeric, col)
		}

		groupCol, _ := t.Column(p.GroupColumn)
		newSchema := append([]schema.Column{groupCol}, numeric...)

		var order []string
		sums := make(map[string]map[string]float64)
		for _, row := range t.Rows {
			key := row[p.GroupColumn].String()
			if _, seen := sums[key]; !seen {
				sums[key] = make(map[string]float64, len(numeric))
				order = append(order, key)
			}
			for _, c := range numeric {
				f, _ := row[c.Name].AsFloat()
				sums[key][c.Name] += f
			}
		}

		var newRows []schema.Row
		for _, key := range order {
			row := sumRow(numeric, sums[key], "", "")
			row[p.GroupColumn] = groupCellFor(groupCol, key)
			newRows = append(newRows, row)
		}

		out := &schema.Table{Name: p.NewName, Schema: newSchema, Rows: newRows}
		if err := h.Insert(out); err != nil {
			return wrapError(Exists, err, "inserting %q", p.NewName)
		}
		res = Result{Table: out, NewName: p.NewName}
		return nil
	})
	return res, err
}

// groupCellFor rebuilds the group key's typed Value from its string
// form, matching the group column's declared type (GROUP_TABLE's group
// column is not restricted to TEXT the way COLLAPSE_TABLE's is).
func groupCellFor(col schema.Column, key string) schema.Value {
	return schema.NewText(key).CoerceTo(col.Type)
}
