// Package command implements the full catalog of table transformations
// of spec.md §4.5 over a gridbase/registry.Registry. Every command body
// lives in its own file, one operation per file, following the
// teacher's database/insert.go, database/select.go, database/join.go
// layout; command.Execute is the type-switch dispatcher in the shape
// of the teacher's executor/executor.go.
package command
