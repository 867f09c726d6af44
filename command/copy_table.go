package command

import (
	"gridbase/registry"
	"gridbase/schema"
)

// execCopyTable implements COPY_TABLE{tableName, newName}: deep-copy
// tableName into newName, failing with Exists if newName is already
// registered. Params used: TableName, NewName.
func execCopyTable(reg *registry.Registry, p Params) (Result, error) {
	if p.TableName == "" || p.NewName == "" {
		return Result{}, badParameter("COPY_TABLE requires tableName and newName")
	}
	if !schema.ValidIdentifier(p.NewName) {
		return Result{}, badParameter("invalid table name %q", p.NewName)
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		src, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		if _, already := h.Get(p.NewName); already {
			return exists("table %q already exists", p.NewName)
		}
		dst := src.CloneWithName(p.NewName)
		if err := h.Insert(dst); err != nil {
			return wrapError(Exists, err, "inserting %q", p.NewName)
		}
		res = Result{Table: dst, NewName: p.NewName}
		return nil
	})
	return res, err
}
