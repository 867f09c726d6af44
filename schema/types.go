package schema

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ColumnType is one of the three scalar variants gridbase tables support.
type ColumnType string

const (
	TEXT ColumnType = "TEXT"
	INT  ColumnType = "INT"
	REAL ColumnType = "REAL"
)

// ParseColumnType maps a header token to a ColumnType. The match is
// case-insensitive; anything unrecognized defaults to TEXT per the CSV
// codec's schema-header rule.
func ParseColumnType(s string) ColumnType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INT":
		return INT
	case "REAL":
		return REAL
	case "TEXT":
		return TEXT
	default:
		return TEXT
	}
}

// Column is a single, typed, named position in a table's schema.
type Column struct {
	Name string
	Type ColumnType
}

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name matches the identifier lexical
// class: a letter or underscore followed by letters, digits, or
// underscores. Column names, table names, and expression identifiers
// all share this class.
func ValidIdentifier(name string) bool {
	return identifierRE.MatchString(name)
}

// ValidateColumns checks the identifier class and in-schema uniqueness
// of a candidate column list. It does not check against any existing
// table; callers combine it with their own collision checks.
func ValidateColumns(columns []Column) error {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if !ValidIdentifier(col.Name) {
			return errors.Errorf("invalid column name %q", col.Name)
		}
		if seen[col.Name] {
			return errors.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
	}
	return nil
}
