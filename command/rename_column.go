package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execRenameColumn implements RENAME_COLUMN{tableName, old, new}:
// errors if old is missing, new already exists on the table, or new
// is not a valid identifier, otherwise rewrites the schema entry and
// every row's key.
func execRenameColumn(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" || p.NewColumnName == "" {
		return Result{}, badParameter("RENAME_COLUMN requires tableName, columnName (old), and newColumnName")
	}
	if !schema.ValidIdentifier(p.NewColumnName) {
		return Result{}, badParameter("invalid column name %q", p.NewColumnName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		idx := t.ColumnIndex(p.ColumnName)
		if idx < 0 {
			return notFound("column %q not found in table %q", p.ColumnName, p.TableName)
		}
		if t.HasColumn(p.NewColumnName) {
			return exists("column %q already exists in table %q", p.NewColumnName, p.TableName)
		}

		t.Schema[idx].Name = p.NewColumnName
		for i, row := range t.Rows {
			row[p.NewColumnName] = row[p.ColumnName]
			delete(row, p.ColumnName)
			t.Rows[i] = row
		}
		res = Result{Table: t}
		return nil
	})
	return res, err
}
