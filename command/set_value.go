package command

import (
	"gridbase/expr"
	"gridbase/registry"
	"gridbase/schema"
)

// execSetValue implements SET_VALUE{tableName, columnName,
// expression}: columnName must already exist; every row's cell is
// overwritten with the expression's evaluation result, raw and
// uncoerced, matching ADD_COLUMN's "store as-is" rule.
func execSetValue(reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" || p.Expression == "" {
		return Result{}, badParameter("SET_VALUE requires tableName, columnName, and expression")
	}
	compiled, err := expr.Parse(p.Expression)
	if err != nil {
		return Result{}, expressionError(err, "parsing SET_VALUE expression %q", p.Expression)
	}

	var res Result
	err = reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		if !t.HasColumn(p.ColumnName) {
			return notFound("column %q not found in table %q", p.ColumnName, p.TableName)
		}

		ctx := &expr.Context{Table: t, Tables: h, Clock: env.Clock}
		values := make([]schema.Value, len(t.Rows))
		for i, row := range t.Rows {
			ctx.Row = row
			ctx.Index = i
			v, evalErr := expr.Eval(compiled, ctx)
			if evalErr != nil {
				if expr.IsTypeError(evalErr) {
					return wrapError(TypeMismatch, evalErr, "evaluating SET_VALUE expression for row %d", i)
				}
				return expressionError(evalErr, "evaluating SET_VALUE expression for row %d", i)
			}
			values[i] = v
		}
		for i, row := range t.Rows {
			row[p.ColumnName] = values[i]
			t.Rows[i] = row
		}
		res = Result{Table: t}
		return nil
	})
	return res, err
}
