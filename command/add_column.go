package command

import (
	"gridbase/expr"
	"gridbase/registry"
	"gridbase/schema"
)

// execAddColumn implements ADD_COLUMN{tableName, columnName,
// expression, columnType}: appends a column of the declared type and
// evaluates expression once per row, storing the raw evaluation result
// without coercion, per spec.md §4.5 ("store result as-is (no
// coercion)"). columnType is explicit — the resolved Open Question
// from spec.md §9 — never inferred from the first row.
func execAddColumn(reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" || p.Expression == "" {
		return Result{}, badParameter("ADD_COLUMN requires tableName, columnName, and expression")
	}
	if !schema.ValidIdentifier(p.ColumnName) {
		return Result{}, badParameter("invalid column name %q", p.ColumnName)
	}
	if p.ColumnType == "" {
		p.ColumnType = schema.TEXT
	}
	compiled, err := expr.Parse(p.Expression)
	if err != nil {
		return Result{}, expressionError(err, "parsing ADD_COLUMN expression %q", p.Expression)
	}

	var res Result
	err = reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		if t.HasColumn(p.ColumnName) {
			return exists("column %q already exists in table %q", p.ColumnName, p.TableName)
		}

		ctx := &expr.Context{Table: t, Tables: h, Clock: env.Clock}
		values := make([]schema.Value, len(t.Rows))
		for i, row := range t.Rows {
			ctx.Row = row
			ctx.Index = i
			v, evalErr := expr.Eval(compiled, ctx)
			if evalErr != nil {
				if expr.IsTypeError(evalErr) {
					return wrapError(TypeMismatch, evalErr, "evaluating ADD_COLUMN expression for row %d", i)
				}
				return expressionError(evalErr, "evaluating ADD_COLUMN expression for row %d", i)
			}
			values[i] = v
		}

		t.Schema = append(t.Schema, schema.Column{Name: p.ColumnName, Type: p.ColumnType})
		for i, row := range t.Rows {
			row[p.ColumnName] = values[i]
			t.Rows[i] = row
		}
		res = Result{Table: t}
		return nil
	})
	return res, err
}
