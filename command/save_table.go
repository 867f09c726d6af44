package command

import (
	"context"
	"path/filepath"

	"gridbase/csvtable"
	"gridbase/registry"
)

// execSaveTable implements SAVE_TABLE{tableName}: writes the table to
// "<dataDir>/<tableName>.CSV" using the csvtable codec's serialization
// rules. With CSV load and rule-file load, this is one of the I/O
// suspension points of spec.md §5. ctx is checked once, before the
// write starts; a write already under way is not interrupted.
func execSaveTable(ctx context.Context, reg *registry.Registry, p Params, env Env) (Result, error) {
	if p.TableName == "" {
		return Result{}, badParameter("SAVE_TABLE requires tableName")
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	var res Result
	err := reg.Mutate(func(h *registry.Handle) error {
		t, ok := h.Get(p.TableName)
		if !ok {
			return notFound("table %q not found", p.TableName)
		}
		path := filepath.Join(env.DataDir, p.TableName+".CSV")
		if writeErr := csvtable.WriteFile(path, t); writeErr != nil {
			return ioError(writeErr, "writing %s", path)
		}
		t.SourceFile = path
		res = Result{Table: t}
		return nil
	})
	return res, err
}
