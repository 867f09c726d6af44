package csvtable

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"gridbase/schema"
)

// TableNameFromFile derives a table name from a filename by stripping a
// case-insensitive ".csv" suffix.
func TableNameFromFile(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".csv") {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Parse reads a table from data, using name as the table's name and
// (if the reader came from disk) sourceFile as its SourceFile.
func Parse(data string, name string, sourceFile string) (*schema.Table, error) {
	records := splitRecords(data)
	if len(records) == 0 {
		return nil, errors.New("empty table: missing schema header")
	}

	columns := parseHeader(records[0])
	if len(columns) == 0 {
		return nil, errors.New("empty schema header")
	}
	if err := schema.ValidateColumns(columns); err != nil {
		return nil, errors.Wrapf(err, "schema header of %q", name)
	}

	t := &schema.Table{Name: name, Schema: columns, SourceFile: sourceFile}
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, parseRow(columns, rec))
	}
	return t, nil
}

// ParseFile loads and parses a table from path.
func ParseFile(path string) (*schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(string(data), TableNameFromFile(path), path)
}

func parseHeader(rec []field) []schema.Column {
	var columns []schema.Column
	for _, f := range rec {
		tok := f.value()
		if tok == "" {
			continue
		}
		name, typeTok, hasType := strings.Cut(tok, ":")
		name = strings.TrimSpace(name)
		col := schema.Column{Name: name, Type: schema.TEXT}
		if hasType {
			col.Type = schema.ParseColumnType(typeTok)
		}
		columns = append(columns, col)
	}
	return columns
}

// parseRow builds a row matching columns from a raw record: short rows
// pad with the column's type-default, extra trailing fields are dropped.
func parseRow(columns []schema.Column, rec []field) schema.Row {
	row := make(schema.Row, len(columns))
	for i, col := range columns {
		if i >= len(rec) {
			row[col.Name] = schema.Zero(col.Type)
			continue
		}
		row[col.Name] = parseField(col.Type, rec[i].value())
	}
	return row
}

// parseField applies the CSV ingress coercion rule for one cell: REAL
// strips '$'/',' before parsing and defaults to 0.0 on failure; INT
// defaults to 0 on failure; TEXT is taken verbatim. schema.Value.CoerceTo
// already implements exactly this defaulting rule.
func parseField(t schema.ColumnType, raw string) schema.Value {
	return schema.NewText(raw).CoerceTo(t)
}

// Write serializes t to w in the textual table format.
func Write(w io.Writer, t *schema.Table) error {
	bw := &errWriter{w: w}
	bw.writeString(headerLine(t.Schema))
	bw.writeString("\n")
	for _, row := range t.Rows {
		bw.writeString(rowLine(t.Schema, row))
		bw.writeString("\n")
	}
	return bw.err
}

// WriteFile serializes t to path, creating parent directories as needed.
func WriteFile(path string, t *schema.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	return Write(f, t)
}

func headerLine(columns []schema.Column) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c.Name + ":" + string(c.Type)
	}
	return strings.Join(parts, ",")
}

func rowLine(columns []schema.Column, row schema.Row) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = quoteField(row[c.Name].String())
	}
	return strings.Join(parts, ",")
}

func quoteField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}
