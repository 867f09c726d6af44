package command

import "gridbase/registry"

// execDeleteTable implements DELETE_TABLE{tableName}: removes the
// table from the registry only, leaving any on-disk file untouched per
// spec.md §3's lifecycle rule. Deleting a table that is not registered
// fails with NotFound.
func execDeleteTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" {
		return Result{}, badParameter("DELETE_TABLE requires tableName")
	}
	err := reg.Mutate(func(h *registry.Handle) error {
		if _, ok := h.Get(p.TableName); !ok {
			return notFound("table %q not found", p.TableName)
		}
		h.Remove(p.TableName)
		return nil
	})
	return Result{}, err
}
