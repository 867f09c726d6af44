package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidatesIdentifiersAndDuplicates(t *testing.T) {
	_, err := New("1bad", []Column{{Name: "a", Type: TEXT}})
	require.Error(t, err)

	_, err = New("t", []Column{{Name: "a", Type: TEXT}, {Name: "a", Type: INT}})
	require.Error(t, err)

	tbl, err := New("t", []Column{{Name: "a", Type: TEXT}})
	require.NoError(t, err)
	require.Equal(t, "t", tbl.Name)
	require.Empty(t, tbl.Rows)
}

func TestColumnLookup(t *testing.T) {
	tbl, err := New("t", []Column{{Name: "a", Type: TEXT}, {Name: "b", Type: INT}})
	require.NoError(t, err)

	require.True(t, tbl.HasColumn("b"))
	require.False(t, tbl.HasColumn("c"))
	require.Equal(t, 1, tbl.ColumnIndex("b"))
	require.Equal(t, -1, tbl.ColumnIndex("c"))

	col, ok := tbl.Column("a")
	require.True(t, ok)
	require.Equal(t, TEXT, col.Type)
}

func TestZeroRowUsesTypeSpecificZeroes(t *testing.T) {
	tbl, err := New("t", []Column{{Name: "a", Type: TEXT}, {Name: "n", Type: INT}, {Name: "f", Type: REAL}})
	require.NoError(t, err)

	row := tbl.ZeroRow()
	require.Equal(t, NewText(""), row["a"])
	require.Equal(t, NewInt(0), row["n"])
	require.Equal(t, NewReal(0), row["f"])
}

func TestCloneIsIndependent(t *testing.T) {
	tbl, err := New("t", []Column{{Name: "a", Type: INT}})
	require.NoError(t, err)
	tbl.Rows = []Row{{"a": NewInt(1)}}

	clone := tbl.Clone()
	clone.Rows[0]["a"] = NewInt(99)
	clone.Schema[0].Name = "changed"

	require.Equal(t, NewInt(1), tbl.Rows[0]["a"])
	require.Equal(t, "a", tbl.Schema[0].Name)
}

func TestCloneWithNameResetsSourceFile(t *testing.T) {
	tbl, err := New("t", []Column{{Name: "a", Type: INT}})
	require.NoError(t, err)
	tbl.SourceFile = "t.csv"

	clone := tbl.CloneWithName("t2")
	require.Equal(t, "t2", clone.Name)
	require.Equal(t, "", clone.SourceFile)
	require.Equal(t, "t.csv", tbl.SourceFile)
}

func TestRowCloneIsIndependent(t *testing.T) {
	r := Row{"a": NewInt(1)}
	clone := r.Clone()
	clone["a"] = NewInt(2)
	require.Equal(t, NewInt(1), r["a"])
}
