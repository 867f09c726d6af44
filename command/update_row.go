package command

import (
	"gridbase/registry"
	"gridbase/rules"
)

// execUpdateRow implements the update side of spec.md §4.3's row
// ingress: the same FIXUP/CHECK machinery as ADD_ROW, without INIT,
// applied to an existing row located by RowIndex.
func execUpdateRow(reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" {
		return Result{}, badParameter("UPDATE_ROW requires tableName")
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		if p.RowIndex < 0 || p.RowIndex >= len(t.Rows) {
			return badParameter("row index %d out of range for table %q", p.RowIndex, p.TableName)
		}

		rs, loadErr := loadRuleSet(env, p.TableName)
		if loadErr != nil {
			return ioError(loadErr, "loading rules for %q", p.TableName)
		}

		existing := t.Rows[p.RowIndex]
		row, errCols, ingressErr := rules.Ingress(rs, t, p.Fields, true, existing, h, env.Clock)
		if ingressErr != nil {
			return expressionError(ingressErr, "row ingress for %q", p.TableName)
		}
		if len(errCols) > 0 {
			return validationFailure(errCols)
		}

		t.Rows[p.RowIndex] = row
		res = Result{Table: t, RowIndex: p.RowIndex}
		return nil
	})
	return res, err
}
