package command

import "gridbase/schema"

// Params carries every parameter any command might need. Each command
// function documents which fields it reads; unused fields are ignored.
// A flat struct (rather than per-command types) is what lets
// command.Execute's single entry point — "execute(command_name,
// params)" in spec.md §6 — take one parameter shape for every command.
type Params struct {
	TableName      string            `json:"tableName,omitempty"`
	OtherTable     string            `json:"tableName1,omitempty"` // JOIN_TABLE's second table
	NewName        string            `json:"newName,omitempty"`
	ColumnName     string            `json:"columnName,omitempty"`
	NewColumnName  string            `json:"newColumnName,omitempty"`
	ColumnType     schema.ColumnType `json:"columnType,omitempty"`
	Columns        []string          `json:"columns,omitempty"`
	Expression     string            `json:"expression,omitempty"`
	Regex          string            `json:"regex,omitempty"`
	Replacement    string            `json:"replacement,omitempty"`
	JoinColumn     string            `json:"joinColumn,omitempty"`
	GroupColumn    string            `json:"groupColumn,omitempty"`
	Order          string            `json:"order,omitempty"` // "asc" | "desc"
	Locale         string            `json:"locale,omitempty"` // opt-in SORT_TABLE collation
	SelectedTables []string          `json:"selectedTables,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"` // ADD_ROW / UPDATE_ROW user-supplied raw fields
	RowIndex       int               `json:"rowIndex,omitempty"`
}
