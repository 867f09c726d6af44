package csvtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gridbase/schema"
)

func TestParseRoundTrip(t *testing.T) {
	data := "Date:TEXT,Amount:REAL\n2024-01-01,100.5\n2024-01-02,200.0"
	tbl, err := Parse(data, "sales", "")
	require.NoError(t, err)
	require.Equal(t, []schema.Column{{Name: "Date", Type: schema.TEXT}, {Name: "Amount", Type: schema.REAL}}, tbl.Schema)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "100.5", tbl.Rows[0]["Amount"].String())

	var buf strings.Builder
	require.NoError(t, Write(&buf, tbl))
	reparsed, err := Parse(buf.String(), "sales", "")
	require.NoError(t, err)
	require.Equal(t, tbl.Schema, reparsed.Schema)
	require.Equal(t, tbl.Rows, reparsed.Rows)
}

func TestParseDefaultsUnknownTypeToText(t *testing.T) {
	tbl, err := Parse("Name:WIDGET\nhi", "t", "")
	require.NoError(t, err)
	require.Equal(t, schema.TEXT, tbl.Schema[0].Type)
}

func TestParseShortRowPadsWithZero(t *testing.T) {
	tbl, err := Parse("A:TEXT,B:INT\nonly-a", "t", "")
	require.NoError(t, err)
	require.Equal(t, schema.NewInt(0), tbl.Rows[0]["B"])
}

func TestParseExtraFieldsDropped(t *testing.T) {
	tbl, err := Parse("A:TEXT\na,b,c", "t", "")
	require.NoError(t, err)
	require.Len(t, tbl.Rows[0], 1)
	require.Equal(t, "a", tbl.Rows[0]["A"].Text)
}

func TestParseRealStripsCurrency(t *testing.T) {
	tbl, err := Parse("A:REAL\n\"$1,200.50\"", "t", "")
	require.NoError(t, err)
	require.Equal(t, 1200.5, tbl.Rows[0]["A"].Real)
}

func TestParseInvalidNumericDefaults(t *testing.T) {
	tbl, err := Parse("A:INT,B:REAL\nabc,xyz", "t", "")
	require.NoError(t, err)
	require.Equal(t, schema.NewInt(0), tbl.Rows[0]["A"])
	require.Equal(t, schema.NewReal(0), tbl.Rows[0]["B"])
}

func TestQuotedFieldWithEmbeddedCommaAndQuote(t *testing.T) {
	tbl, err := Parse(`Name:TEXT` + "\n" + `"Smith, ""Bob"""`, "t", "")
	require.NoError(t, err)
	require.Equal(t, `Smith, "Bob"`, tbl.Rows[0]["Name"].Text)
}

func TestWriteQuotesFieldsThatNeedIt(t *testing.T) {
	tbl := &schema.Table{
		Name:   "t",
		Schema: []schema.Column{{Name: "Name", Type: schema.TEXT}},
		Rows:   []schema.Row{{"Name": schema.NewText(`a,b"c`)}},
	}
	var buf strings.Builder
	require.NoError(t, Write(&buf, tbl))
	require.Contains(t, buf.String(), `"a,b""c"`)
}

func TestTableNameFromFile(t *testing.T) {
	require.Equal(t, "sales", TableNameFromFile("/data/sales.CSV"))
	require.Equal(t, "sales", TableNameFromFile("sales.csv"))
	require.Equal(t, "sales.bak", TableNameFromFile("sales.bak"))
}

func TestRealFormattingOneFractionalDigit(t *testing.T) {
	// amount is a variable so the product is computed in float64 at run
	// time (110.55000000000001), as the evaluator computes Amount * 1.1.
	// The constant expression 100.5*1.1 would be folded exactly and
	// stored as 110.5499999..., which renders "110.5".
	amount := 100.5
	require.Equal(t, "110.6", schema.NewReal(amount*1.1).String())
	require.Equal(t, "0.0", schema.NewReal(0).String())
}
