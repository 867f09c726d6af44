package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execJoinTable implements JOIN_TABLE{tableName, tableName1,
// joinColumn, newName}: an inner-ish join on equality of joinColumn —
// "inner-ish" because unmatched left rows are kept with type-default
// right-side cells rather than dropped, per spec.md §4.5's contract.
// The right table's columns are appended minus joinColumn and any
// duplicate names; the first right-side match wins on duplicate keys.
func execJoinTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.OtherTable == "" || p.JoinColumn == "" || p.NewName == "" {
		return Result{}, badParameter("JOIN_TABLE requires tableName, tableName1, joinColumn, and newName")
	}
	if !schema.ValidIdentifier(p.NewName) {
		return Result{}, badParameter("invalid table name %q", p.NewName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		left, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		right, ok := h.Get(p.OtherTable)
		if !ok {
			return notFound("table %q not found", p.OtherTable)
		}
		if _, already := h.Get(p.NewName); already {
			return exists("table %q already exists", p.NewName)
		}
		if !left.HasColumn(p.JoinColumn) {
			return notFound("join column %q not found in table %q", p.JoinColumn, p.TableName)
		}
		if !right.HasColumn(p.JoinColumn) {
			return notFound("join column %q not found in table %q", p.JoinColumn, p.OtherTable)
		}

		leftNames := make(map[string]bool, len(left.Schema))
		for _, c := range left.Schema {
			leftNames[c.Name] = true
		}
		var rightCols []schema.Column
		for _, c := range right.Schema {
			if c.Name == p.JoinColumn || leftNames[c.Name] {
				continue
			}
			rightCols = append(rightCols, c)
		}

		index := make(map[string]schema.Row, len(right.Rows))
		for _, row := range right.Rows {
			key := row[p.JoinColumn].String()
			if _, exists := index[key]; !exists {
				index[key] = row
			}
		}

		newSchema := append(append([]schema.Column{}, left.Schema...), rightCols...)
		newRows := make([]schema.Row, 0, len(left.Rows))
		for _, lr := range left.Rows {
			out := lr.Clone()
			key := lr[p.JoinColumn].String()
			if rr, matched := index[key]; matched {
				for _, c := range rightCols {
					out[c.Name] = rr[c.Name]
				}
			} else {
				for _, c := range rightCols {
					out[c.Name] = schema.Zero(c.Type)
				}
			}
			newRows = append(newRows, out)
		}

		joined := &schema.Table{Name: p.NewName, Schema: newSchema, Rows: newRows}
		if err := h.Insert(joined); err != nil {
			return wrapError(Exists, err, "inserting %q", p.NewName)
		}
		res = Result{Table: joined, NewName: p.NewName}
		return nil
	})
	return res, err
}
