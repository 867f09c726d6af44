package rules

import (
	"gridbase/expr"
	"gridbase/schema"
)

// Ingress runs the row-ingress state machine of spec.md §4.3 over a
// single row: Fresh → Initialized → TypedAndFilled → FixedUp → Checked
// → Committed | Rejected. fields holds the user-supplied raw text per
// column for TypedAndFilled; forUpdate skips the INIT step (the
// row-update path reuses the same Fixup/Check machinery without it).
//
// The returned row is always populated, even on rejection, so a
// caller that wants to show the user what would have been committed
// can. errColumns is the accumulated CHECK/type failure set: commit
// iff it is empty.
func Ingress(rs *RuleSet, tbl *schema.Table, fields map[string]string, forUpdate bool, existing schema.Row, tables expr.Tables, clock expr.Clock) (schema.Row, []string, error) {
	var row schema.Row
	if forUpdate {
		row = existing.Clone()
	} else {
		row = tbl.ZeroRow()
	}

	ctx := &expr.Context{Row: row, Table: tbl, Tables: tables, Clock: clock}

	var errColumns []string
	addErr := func(col string) {
		for _, c := range errColumns {
			if c == col {
				return
			}
		}
		errColumns = append(errColumns, col)
	}

	if !forUpdate {
		for _, r := range rs.Inits() {
			ctx.Row = row
			v, err := expr.Eval(r.Expr, ctx)
			if err != nil {
				addErr(r.Column)
				continue
			}
			row[r.Column] = v
		}
	}

	for name, raw := range fields {
		col, ok := tbl.Column(name)
		if !ok {
			continue
		}
		v, err := schema.ParseStrict(raw, col.Type)
		if err != nil {
			addErr(name)
			continue
		}
		row[name] = v
	}

	for _, r := range rs.Fixups() {
		ctx.Row = row
		v, err := expr.Eval(r.Expr, ctx)
		if err != nil {
			addErr(r.Column)
			continue
		}
		row[r.Column] = v
	}

	for _, r := range rs.Checks() {
		ctx.Row = row
		v, err := expr.Eval(r.Expr, ctx)
		if err != nil || v.IsBlank() {
			addErr(r.Column)
		}
	}

	return row, errColumns, nil
}
