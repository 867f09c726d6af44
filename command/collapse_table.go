package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execCollapseTable implements COLLAPSE_TABLE{tableName, columnName?,
// newName}: groups rows by a TEXT column (or collapses to a single
// aggregate row when columnName is omitted), producing a new table
// whose schema is the group column (if any) followed by every INT/REAL
// column of the source, each summed within the group.
func execCollapseTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.NewName == "" {
		return Result{}, badParameter("COLLAPSE_TABLE requires tableName and newName")
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

		groupCol := p.ColumnName
		if groupCol != "" {
			col, ok := t.Column(groupCol)
			if !ok {
				return notFound("column %q not found in table %q", groupCol, p.TableName)
			}
			if col.Type != schema.TEXT {
				return typeMismatch("COLLAPSE_TABLE group column %q must be TEXT, got %s", groupCol, col.Type)
			}
		}

		var numeric []schema.Column
		for _, c := range t.Schema {
			if c.Name == groupCol {
				continue
			}
			if c.Type == schema.INT || c.Type == schema.REAL {
				numeric = append(numeric, c)
			}
		}

		newSchema := make([]schema.Column, 0, len(numeric)+1)
		if groupCol != "" {
			newSchema = append(newSchema, schema.Column{Name: groupCol, Type: schema.TEXT})
		}
		newSchema = append(newSchema, numeric...)

		var newRows []schema.Row
		if groupCol == "" {
			sums := make(map[string]float64, len(numeric))
			for _, row := range t.Rows {
				for _, c := range numeric {
					f, _ := row[c.Name].AsFloat()
					sums[c.Name] += f
				}
			}
			newRows = []schema.Row{sumRow(numeric, sums, "", "")}
		} else {
			order := []string{}
			sums := make(map[string]map[string]float64)
			for _, row := range t.Rows {
				key := row[groupCol].Text
				if _, seen := sums[key]; !seen {
					sums[key] = make(map[string]float64, len(numeric))
					order = append(order, key)
				}
				for _, c := range numeric {
					f, _ := row[c.Name].AsFloat()
					sums[key][c.Name] += f
				}
			}
			for _, key := range order {
				newRows = append(newRows, sumRow(numeric, sums[key], groupCol, key))
			}
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

// sumRow builds one output row for collapse/group aggregation. A
// summed INT column stays INT (sum of integers is integral); a summed
// REAL column renders REAL, matching the spec's scenario 1 expectation
// that a summed Amount renders as "300.5".
func sumRow(numeric []schema.Column, sums map[string]float64, groupCol, groupVal string) schema.Row {
	row := make(schema.Row, len(numeric)+1)
	if groupCol != "" {
		row[groupCol] = schema.NewText(groupVal)
	}
	for _, c := range numeric {
		if c.Type == schema.INT {
			row[c.Name] = schema.NewInt(int64(sums[c.Name]))
		} else {
			row[c.Name] = schema.NewReal(sums[c.Name])
		}
	}
	return row
}
