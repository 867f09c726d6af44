// Package schema provides the typed value and table model shared by every
// other package in gridbase.
//
// A cell is a tagged Value over exactly three variants: TEXT, INT, and
// REAL. A Column names and types one position in a Table's schema; a Row
// is a mapping from column name to Value that must carry exactly the
// columns the schema declares, in the schema's declared types. A Table
// owns its Schema and Rows outright. Both are exported fields that the
// in-place commands edit directly; Clone produces a fully independent
// copy so commands that build new tables never alias the tables they
// were built from.
//
// Key Types:
//   - ColumnType: TEXT, INT, or REAL
//   - Column: a typed, named schema position
//   - Value: a tagged TEXT/INT/REAL cell
//   - Row: column name -> Value
//   - Table: Name, Schema, Rows, SourceFile
package schema
