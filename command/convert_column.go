package command

import (
	"strconv"
	"strings"

	"gridbase/registry"
	"gridbase/schema"
)

// execConvertColumn implements CONVERT_COLUMN{tableName, columnName}:
// converts a TEXT column to REAL, stripping '$', ',', and whitespace
// before parsing each cell; a cell that fails to parse is left
// unchanged (not zeroed — unlike the CSV ingress coercion rule, a
// conversion failure here must not silently destroy data). The column
// type is set to REAL regardless of any individual cell's parse
// outcome.
func execConvertColumn(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" {
		return Result{}, badParameter("CONVERT_COLUMN requires tableName and columnName")
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
		if t.Schema[idx].Type != schema.TEXT {
			return typeMismatch("column %q must be TEXT to CONVERT_COLUMN, got %s", p.ColumnName, t.Schema[idx].Type)
		}

		for i, row := range t.Rows {
			cell := row[p.ColumnName]
			raw := strings.TrimSpace(cell.Text)
			raw = strings.ReplaceAll(raw, "$", "")
			raw = strings.ReplaceAll(raw, ",", "")
			raw = strings.TrimSpace(raw)
			f, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil {
				continue // left as TEXT per spec; a deliberate exception to the usual type invariant
			}
			row[p.ColumnName] = schema.NewReal(f)
			t.Rows[i] = row
		}
		t.Schema[idx].Type = schema.REAL
		res = Result{Table: t}
		return nil
	})
	return res, err
}
