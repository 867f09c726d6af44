package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"gridbase/csvtable"
	"gridbase/schema"
)

// LoadDir (re)loads every "*.csv"/"*.CSV" file under dataDir, replacing
// any currently registered table that is file-backed (has a non-empty
// SourceFile) while preserving tables created purely in memory, per
// spec.md §4.4: "Loading from disk clears file-backed tables and
// refreshes them while preserving in-memory-only tables (those whose
// source_file does not resolve on disk)."
func (r *Registry) LoadDir(dataDir string) error {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return errors.Wrapf(err, "reading data directory %s", dataDir)
	}

	var fresh []*schema.Table
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dataDir, e.Name())
		t, err := csvtable.ParseFile(path)
		if err != nil {
			return errors.Wrapf(err, "loading %s", path)
		}
		fresh = append(fresh, t)
	}

	return r.Mutate(func(h *Handle) error {
		fileBacked := make(map[string]bool)
		for _, name := range h.List() {
			t, _ := h.Get(name)
			if t.SourceFile != "" {
				if _, err := os.Stat(t.SourceFile); err == nil {
					fileBacked[name] = true
				}
			}
		}
		h.ReplaceAll(fresh, fileBacked)
		return nil
	})
}
