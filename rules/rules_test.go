package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gridbase/schema"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestParseRules(t *testing.T) {
	rs, err := Parse("INIT Date TODAY()\nCHECK Amount Amount > 0\n\n")
	require.NoError(t, err)
	require.Len(t, rs.Rules, 2)
	require.Equal(t, Init, rs.Rules[0].Op)
	require.Equal(t, "Date", rs.Rules[0].Column)
	require.Len(t, rs.Inits(), 1)
	require.Len(t, rs.Checks(), 1)
	require.Empty(t, rs.Fixups())
}

func TestParseRejectsUnknownOperation(t *testing.T) {
	_, err := Parse("FROB Amount 1")
	require.Error(t, err)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := Parse("INIT Date")
	require.Error(t, err)
}

func TestIngressAddAppliesInitThenCheckFails(t *testing.T) {
	tbl, err := schema.New("sales", []schema.Column{
		{Name: "Date", Type: schema.TEXT},
		{Name: "Amount", Type: schema.REAL},
	})
	require.NoError(t, err)

	rs, err := Parse("INIT Date TODAY()\nCHECK Amount Amount > 0")
	require.NoError(t, err)

	clk := fixedClock{t: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)}
	row, errCols, err := Ingress(rs, tbl, map[string]string{"Amount": "-5"}, false, nil, nil, clk)
	require.NoError(t, err)
	require.Equal(t, []string{"Amount"}, errCols)
	require.Equal(t, schema.NewText("2026/08/03"), row["Date"])
	require.Equal(t, schema.NewReal(-5), row["Amount"])
}

func TestIngressAddCommitsWhenChecksPass(t *testing.T) {
	tbl, err := schema.New("sales", []schema.Column{
		{Name: "Amount", Type: schema.REAL},
	})
	require.NoError(t, err)

	rs, err := Parse("CHECK Amount Amount > 0")
	require.NoError(t, err)

	_, errCols, err := Ingress(rs, tbl, map[string]string{"Amount": "10"}, false, nil, nil, nil)
	require.NoError(t, err)
	require.Empty(t, errCols)
}

func TestIngressUpdateSkipsInit(t *testing.T) {
	tbl, err := schema.New("sales", []schema.Column{
		{Name: "Date", Type: schema.TEXT},
		{Name: "Amount", Type: schema.REAL},
	})
	require.NoError(t, err)

	rs, err := Parse("INIT Date TODAY()")
	require.NoError(t, err)

	existing := schema.Row{"Date": schema.NewText("2020/01/01"), "Amount": schema.NewReal(5)}
	row, errCols, err := Ingress(rs, tbl, map[string]string{"Amount": "6"}, true, existing, nil, nil)
	require.NoError(t, err)
	require.Empty(t, errCols)
	require.Equal(t, schema.NewText("2020/01/01"), row["Date"])
	require.Equal(t, schema.NewReal(6), row["Amount"])
}

func TestIngressFixupOverwritesField(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "Total", Type: schema.INT}})
	require.NoError(t, err)

	rs, err := Parse("FIXUP Total Total * 2")
	require.NoError(t, err)

	row, errCols, err := Ingress(rs, tbl, map[string]string{"Total": "5"}, false, nil, nil, nil)
	require.NoError(t, err)
	require.Empty(t, errCols)
	require.Equal(t, schema.NewInt(10), row["Total"])
}
