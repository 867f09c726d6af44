package command

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gridbase/registry"
	"gridbase/schema"
)

// execSortTable implements SORT_TABLE{tableName, columnName,
// order}: a stable sort by columnName, numeric by value for INT/REAL,
// and by string order for TEXT. TEXT ordering is an Open Question
// spec.md §9 leaves unresolved; SPEC_FULL.md §4.5 resolves it as
// Unicode codepoint order (Go's native string "<") by default, with an
// opt-in locale-aware comparator via golang.org/x/text/collate when
// Params.Locale is set.
func execSortTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.ColumnName == "" {
		return Result{}, badParameter("SORT_TABLE requires tableName and columnName")
	}
	desc := p.Order == "desc"

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		col, ok := t.Column(p.ColumnName)
		if !ok {
			return notFound("column %q not found in table %q", p.ColumnName, p.TableName)
		}

		less := lessFor(col, p.ColumnName, p.Locale)
		sort.SliceStable(t.Rows, func(i, j int) bool {
			if desc {
				return less(t.Rows[j], t.Rows[i])
			}
			return less(t.Rows[i], t.Rows[j])
		})
		res = Result{Table: t}
		return nil
	})
	return res, err
}

func lessFor(col schema.Column, name, locale string) func(a, b schema.Row) bool {
	if col.Type == schema.TEXT {
		if locale != "" {
			c := collate.New(language.Make(locale))
			return func(a, b schema.Row) bool {
				return c.CompareString(a[name].Text, b[name].Text) < 0
			}
		}
		return func(a, b schema.Row) bool {
			return a[name].Text < b[name].Text
		}
	}
	return func(a, b schema.Row) bool {
		af, _ := a[name].AsFloat()
		bf, _ := b[name].AsFloat()
		return af < bf
	}
}
