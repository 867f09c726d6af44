package command

import "gridbase/schema"

// Result is what every command returns on success: the affected table
// (schema + rows, per spec.md §6's "commands return the updated table")
// and, for a command that creates a new table, its name.
type Result struct {
	Table      *schema.Table
	NewName    string
	RowIndex   int      // ADD_ROW: index the new row landed at
	ErrColumns []string // row-ingress commands with partial failure info
}
