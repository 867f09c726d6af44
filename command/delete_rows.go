package command

import (
	"gridbase/expr"
	"gridbase/registry"
	"gridbase/schema"
)

// execDeleteRows implements DELETE_ROWS{tableName, expression}: a row
// is kept iff the expression evaluates numerically to 0; per the
// resolved Open Question in spec.md §9/SPEC_FULL.md §Open Questions,
// an evaluator error or a non-numeric TEXT result is a safe default —
// the row is kept rather than treated as a deletion. One expr.Expr is
// parsed once and reused across every row, per spec.md §4.2.5/§4.5.
func execDeleteRows(reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" || p.Expression == "" {
		return Result{}, badParameter("DELETE_ROWS requires tableName and expression")
	}
	compiled, err := expr.Parse(p.Expression)
	if err != nil {
		return Result{}, expressionError(err, "parsing DELETE_ROWS expression %q", p.Expression)
	}

	var res Result
	err = reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}

		ctx := &expr.Context{Table: t, Tables: h, Clock: env.Clock}
		kept := make([]schema.Row, 0, len(t.Rows))
		for i, row := range t.Rows {
			ctx.Row = row
			ctx.Index = i
			v, evalErr := expr.Eval(compiled, ctx)
			if evalErr != nil || v.Type == schema.TEXT {
				kept = append(kept, row)
				continue
			}
			f, _ := v.AsFloat()
			if f != 0 {
				continue // delete
			}
			kept = append(kept, row)
		}
		t.Rows = kept
		res = Result{Table: t}
		return nil
	})
	return res, err
}
