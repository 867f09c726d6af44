package command

import (
	"gridbase/registry"
	"gridbase/rules"
)

// execAddRow implements the add side of spec.md §4.3's row-ingress
// state machine — the operation the rules engine is invoked from but
// that the seventeen named commands don't themselves enumerate. A
// fresh row starts at the type-default, runs every INIT rule, accepts
// Params.Fields as user input (converted to column type), runs FIXUP,
// then CHECK; the row commits to the table iff the accumulated error
// set is empty, otherwise the table is left untouched and a
// ValidationFailure carrying the offending columns is returned.
func execAddRow(reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" {
		return Result{}, badParameter("ADD_ROW requires tableName")
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}

		rs, loadErr := loadRuleSet(env, p.TableName)
		if loadErr != nil {
			return ioError(loadErr, "loading rules for %q", p.TableName)
		}

		row, errCols, ingressErr := rules.Ingress(rs, t, p.Fields, false, nil, h, env.Clock)
		if ingressErr != nil {
			return expressionError(ingressErr, "row ingress for %q", p.TableName)
		}
		if len(errCols) > 0 {
			return validationFailure(errCols)
		}

		t.Rows = append(t.Rows, row)
		res = Result{Table: t, RowIndex: len(t.Rows) - 1}
		return nil
	})
	return res, err
}

func loadRuleSet(env Env, tableName string) (*rules.RuleSet, error) {
	if env.Rules == nil {
		return &rules.RuleSet{}, nil
	}
	path, found := rules.PathFor(env.DataDir, tableName)
	if !found {
		return &rules.RuleSet{}, nil
	}
	return env.Rules.Load(path)
}
