// Package registry holds the process-wide, named mapping of in-memory
// tables: the sole owner of the tables it holds, per spec.md §3's
// ownership invariant. It is modeled on the teacher's
// catalog.Catalog — "load-or-fresh, validate, mutate, error on
// collision" — repurposed from a JSON-backed schema catalog to a flat
// table-instance registry, since persistence in this system is the
// csvtable codec's job, not the registry's.
package registry
