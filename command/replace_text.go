package command

import (
	"regexp"

	"gridbase/registry"
	"gridbase/schema"
)

// execReplaceText implements REPLACE_TEXT{tableName, columnName,
// regex, replacement}: a global regex replace applied to every row of
// a TEXT column. The replacement string may reference capture groups
// as $0..$9, which is exactly regexp.ReplaceAllString's own $-syntax.
func execReplaceText(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" {
		return Result{}, badParameter("REPLACE_TEXT requires tableName and columnName")
	}
	re, err := regexp.Compile(p.Regex)
	if err != nil {
		return Result{}, expressionError(err, "compiling regex %q", p.Regex)
	}

	var res Result
	mutErr := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		col, ok := t.Column(p.ColumnName)
		if !ok {
			return notFound("column %q not found in table %q", p.ColumnName, p.TableName)
		}
		if col.Type != schema.TEXT {
			return typeMismatch("column %q must be TEXT for REPLACE_TEXT, got %s", p.ColumnName, col.Type)
		}

		for i, row := range t.Rows {
			cell := row[p.ColumnName]
			row[p.ColumnName] = schema.NewText(re.ReplaceAllString(cell.Text, p.Replacement))
			t.Rows[i] = row
		}
		res = Result{Table: t}
		return nil
	})
	return res, mutErr
}
