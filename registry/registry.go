package registry

import (
	"sync"

	"github.com/pkg/errors"

	"gridbase/schema"
)

// Registry is the process-wide mapping from table name to table,
// guarded by a single sync.RWMutex per spec.md §5: a mutating command
// takes the full write lock for its run-to-completion duration via
// Mutate, a read-only caller takes the read lock via View. Insertion
// order is tracked separately from the map so List returns names in
// the order tables were added.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*schema.Table
	order  []string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{tables: make(map[string]*schema.Table)}
}

// Table implements expr.Tables: it resolves a table by name for
// cross-table functions (TOTAL) evaluated outside a Mutate/View block.
func (r *Registry) Table(name string) (*schema.Table, bool) {
	return r.Get(name)
}

// Get returns the table registered under name, if any. Safe to call
// outside of a Mutate/View block; it takes its own read lock.
func (r *Registry) Get(name string) (*schema.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// List returns every registered table name in insertion order. Safe
// to call outside of a Mutate/View block.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Handle is the unlocked view of the registry a Mutate/View callback
// operates through — every method assumes the caller already holds
// the appropriate lock, which only Mutate and View may take.
type Handle struct {
	r *Registry
}

// Get returns the table registered under name, if any.
func (h *Handle) Get(name string) (*schema.Table, bool) {
	t, ok := h.r.tables[name]
	return t, ok
}

// Table implements expr.Tables from inside a Mutate/View callback. A
// command body must use this, not the Registry's own Table method,
// since the registry's lock is already held by this goroutine and
// sync.RWMutex is not reentrant — calling through Registry.Table
// (which takes its own RLock) from here deadlocks permanently.
func (h *Handle) Table(name string) (*schema.Table, bool) {
	return h.Get(name)
}

// List returns every registered table name in insertion order.
func (h *Handle) List() []string {
	out := make([]string, len(h.r.order))
	copy(out, h.r.order)
	return out
}

// Insert adds t under its own Name. It fails with an "already exists"
// error if that name is already registered — spec.md §3's "commands
// that would collide must fail with a name-exists error".
func (h *Handle) Insert(t *schema.Table) error {
	if _, exists := h.r.tables[t.Name]; exists {
		return errors.Errorf("table %q already exists", t.Name)
	}
	h.r.tables[t.Name] = t
	h.r.order = append(h.r.order, t.Name)
	return nil
}

// Remove deletes name from the registry. It is a no-op if name is not
// present.
func (h *Handle) Remove(name string) {
	if _, ok := h.r.tables[name]; !ok {
		return
	}
	delete(h.r.tables, name)
	for i, n := range h.r.order {
		if n == name {
			h.r.order = append(h.r.order[:i], h.r.order[i+1:]...)
			break
		}
	}
}

// Rename moves the table registered under old to new, failing if old
// is missing, new already exists, or new is not a valid identifier.
// The table's SourceFile is updated to "<new>.CSV" per spec.md §4.4.
func (h *Handle) Rename(old, new string) error {
	t, ok := h.r.tables[old]
	if !ok {
		return errors.Errorf("table %q not found", old)
	}
	if !schema.ValidIdentifier(new) {
		return errors.Errorf("invalid table name %q", new)
	}
	if _, exists := h.r.tables[new]; exists {
		return errors.Errorf("table %q already exists", new)
	}
	h.Remove(old)
	t.Name = new
	t.SourceFile = new + ".CSV"
	return h.Insert(t)
}

// ReplaceAll clears every table whose SourceFile matches an entry in
// fileBacked (tracked by name) and installs fresh ones, while leaving
// every table not named there untouched — the "preserve in-memory-only
// tables" rule of spec.md §4.4's disk-reload semantics.
func (h *Handle) ReplaceAll(fresh []*schema.Table, fileBackedNames map[string]bool) {
	for name := range fileBackedNames {
		h.Remove(name)
	}
	for _, t := range fresh {
		h.r.tables[t.Name] = t
		h.r.order = append(h.r.order, t.Name)
	}
}

// Mutate runs fn with the registry's write lock held for fn's entire
// duration — the "logical write lock over the registry" spec.md §5
// requires each mutating command to hold. Every command.Execute call
// that mutates the registry wraps its body in this.
func (r *Registry) Mutate(fn func(*Handle) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&Handle{r: r})
}

// View is Mutate's read-only counterpart, for a command body that only
// inspects the registry under a consistent snapshot (e.g. reading
// several tables to validate before any of them are touched).
func (r *Registry) View(fn func(*Handle) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(&Handle{r: r})
}
