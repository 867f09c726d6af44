package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execRenameTable implements RENAME_TABLE{tableName, newName}: moves
// the table in the registry, failing with Exists if newName is taken
// and BadParameter if newName is not a valid identifier.
func execRenameTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.NewName == "" {
		return Result{}, badParameter("RENAME_TABLE requires tableName and newName")
	}
	if !schema.ValidIdentifier(p.NewName) {
		return Result{}, badParameter("invalid table name %q", p.NewName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		if err := h.Rename(p.TableName, p.NewName); err != nil {
			if _, ok := h.Get(p.TableName); !ok {
				return notFound("table %q not found", p.TableName)
			}
			return exists("table %q already exists", p.NewName)
		}
		t, _ := h.Get(p.NewName)
		res = Result{Table: t, NewName: p.NewName}
		return nil
	})
	return res, err
}
