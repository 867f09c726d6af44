// Package csvtable implements gridbase's on-disk table format: a
// schema header line followed by one row per line, per spec.md §4.1.
//
// The header is "name[:TYPE]" pairs; a missing or unrecognized type
// defaults to TEXT. Fields may be double-quoted, with "" encoding a
// literal quote inside a quoted field; quoted fields may embed commas
// and newlines. encoding/csv is not used here: the REAL-cell
// '$'/','-stripping coercion and fixed one-decimal-digit rendering are
// bespoke to this format and encoding/csv has no hook for either.
//
// Key Responsibilities:
//   - Parsing a schema header into []schema.Column
//   - Parsing rows with short-row padding and extra-field dropping
//   - Serializing a *schema.Table back to the same textual format
//   - Deriving a table name from a filename (stripping a case-insensitive .csv suffix)
package csvtable
