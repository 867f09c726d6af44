package expr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gridbase/schema"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func mustParse(t *testing.T, src string) Expr {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err)
	return e
}

func evalStr(t *testing.T, src string, row schema.Row) schema.Value {
	t.Helper()
	e := mustParse(t, src)
	v, err := Eval(e, &Context{Row: row})
	require.NoError(t, err)
	return v
}

func TestPrecedenceNotBindsLooserThanComparison(t *testing.T) {
	// !a = b parses as !(a = b), not (!a) = b, per the precedence table.
	v := evalStr(t, "!a = b", schema.Row{"a": schema.NewInt(1), "b": schema.NewInt(0)})
	require.Equal(t, schema.NewInt(1), v) // a=b is false, !false is true
}

func TestPrecedenceUnaryMinusBindsTighterThanCaret(t *testing.T) {
	// -2^2 parses as (-2)^2 == 4, not -(2^2) == -4. Both operands are
	// INT and the result is integral, so it stays INT.
	v := evalStr(t, "-2^2", nil)
	require.Equal(t, schema.NewInt(4), v)
}

func TestPrecedenceArithmeticBeforeComparison(t *testing.T) {
	v := evalStr(t, "1 + 1 = 2", nil)
	require.Equal(t, schema.NewInt(1), v)
}

func TestTernaryShortCircuits(t *testing.T) {
	// The untaken branch names an unknown identifier, so evaluating it
	// would fail.
	e := mustParse(t, "x != 0 ? 1 / undefined_field : 99")
	v, err := Eval(e, &Context{Row: schema.Row{"x": schema.NewInt(0)}})
	require.NoError(t, err)
	require.Equal(t, schema.NewInt(99), v)
}

func TestOrAndShortCircuit(t *testing.T) {
	// left side true for ||, false for && — right side never evaluated,
	// so an unknown identifier on the right must not produce an error.
	v := evalStr(t, "1 || undefined_field", nil)
	require.Equal(t, schema.NewInt(1), v)

	v = evalStr(t, "0 && undefined_field", nil)
	require.Equal(t, schema.NewInt(0), v)
}

func TestComparisonTypeMismatch(t *testing.T) {
	e := mustParse(t, "a = b")
	_, err := Eval(e, &Context{Row: schema.Row{"a": schema.NewText("x"), "b": schema.NewInt(1)}})
	require.Error(t, err)
	require.True(t, IsTypeError(err))
}

func TestTextConcatenation(t *testing.T) {
	v := evalStr(t, "a + b", schema.Row{"a": schema.NewText("foo"), "b": schema.NewText("bar")})
	require.Equal(t, schema.NewText("foobar"), v)
}

func TestArithmeticIntStaysIntWhenResultIsIntegral(t *testing.T) {
	v := evalStr(t, "a * b", schema.Row{"a": schema.NewInt(4), "b": schema.NewInt(3)})
	require.Equal(t, schema.NewInt(12), v)
}

func TestArithmeticDivisionPromotesToReal(t *testing.T) {
	v := evalStr(t, "a / b", schema.Row{"a": schema.NewInt(5), "b": schema.NewInt(2)})
	require.Equal(t, schema.NewReal(2.5), v)
}

func TestIndexedFieldRefOutOfRangeIsBlankText(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "a", Type: schema.INT}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{{"a": schema.NewInt(1)}}
	e := mustParse(t, "a[1]")
	v, err := Eval(e, &Context{Row: tbl.Rows[0], Index: 0, Table: tbl})
	require.NoError(t, err)
	require.Equal(t, schema.NewText(""), v)
}

func TestIndexedFieldRefResolvesNeighborRow(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "a", Type: schema.INT}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{
		{"a": schema.NewInt(10)},
		{"a": schema.NewInt(20)},
	}
	e := mustParse(t, "a[1]")
	v, err := Eval(e, &Context{Row: tbl.Rows[0], Index: 0, Table: tbl})
	require.NoError(t, err)
	require.Equal(t, schema.NewInt(20), v)
}

func TestBlankFunction(t *testing.T) {
	v := evalStr(t, "BLANK(a)", schema.Row{"a": schema.NewText("")})
	require.Equal(t, schema.NewInt(1), v)

	v = evalStr(t, "BLANK(a)", schema.Row{"a": schema.NewText("x")})
	require.Equal(t, schema.NewInt(0), v)
}

func TestLengthCountsRunesNotBytes(t *testing.T) {
	v := evalStr(t, "LENGTH(a)", schema.Row{"a": schema.NewText("café")})
	require.Equal(t, schema.NewInt(4), v)
}

func TestUpperAndAppend(t *testing.T) {
	v := evalStr(t, "UPPER(a)", schema.Row{"a": schema.NewText("abc")})
	require.Equal(t, schema.NewText("ABC"), v)

	v = evalStr(t, "APPEND(a, b)", schema.Row{"a": schema.NewText("foo"), "b": schema.NewInt(7)})
	require.Equal(t, schema.NewText("foo7"), v)
}

func TestCurrRowAndNumRows(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "a", Type: schema.INT}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{{"a": schema.NewInt(1)}, {"a": schema.NewInt(2)}}
	e := mustParse(t, "CURR_ROW() + NUM_ROWS()")
	v, err := Eval(e, &Context{Row: tbl.Rows[1], Index: 1, Table: tbl})
	require.NoError(t, err)
	require.Equal(t, schema.NewInt(3), v)
}

func TestSumAndTotalAgreeOverFullRange(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "amount", Type: schema.REAL}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{
		{"amount": schema.NewReal(1.5)},
		{"amount": schema.NewReal(2.5)},
		{"amount": schema.NewReal(3)},
	}
	sumExpr := mustParse(t, "SUM(amount, 0, NUM_ROWS() - 1)")
	v, err := Eval(sumExpr, &Context{Table: tbl})
	require.NoError(t, err)
	require.Equal(t, schema.NewReal(7), v)

	reg := stubTables{"t": tbl}
	totalExpr := mustParse(t, "TOTAL('t', amount)")
	v, err = Eval(totalExpr, &Context{Tables: reg})
	require.NoError(t, err)
	require.Equal(t, schema.NewReal(7), v)
}

func TestSumOutOfBoundsRangeIsZero(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "amount", Type: schema.INT}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{{"amount": schema.NewInt(5)}}
	e := mustParse(t, "SUM(amount, 0, 9)")
	v, err := Eval(e, &Context{Table: tbl})
	require.NoError(t, err)
	require.Equal(t, schema.NewReal(0), v)
}

func TestSumRejectsTextColumn(t *testing.T) {
	tbl, err := schema.New("t", []schema.Column{{Name: "name", Type: schema.TEXT}})
	require.NoError(t, err)
	tbl.Rows = []schema.Row{{"name": schema.NewText("x")}}
	e := mustParse(t, "SUM(name, 0, 0)")
	_, err = Eval(e, &Context{Table: tbl})
	require.Error(t, err)
	require.True(t, IsTypeError(err))
}

func TestTotalMissingTableOrColumnIsZero(t *testing.T) {
	e := mustParse(t, "TOTAL('missing', amount)")
	v, err := Eval(e, &Context{Tables: stubTables{}})
	require.NoError(t, err)
	require.Equal(t, schema.NewReal(0), v)
}

func TestRegexpAndReplace(t *testing.T) {
	v := evalStr(t, "REGEXP('[0-9]+', a)", schema.Row{"a": schema.NewText("order 42 shipped")})
	require.Equal(t, schema.NewText("42"), v)

	v = evalStr(t, "REPLACE(a, '[0-9]+', 'N')", schema.Row{"a": schema.NewText("order 42 shipped")})
	require.Equal(t, schema.NewText("order N shipped"), v)
}

func TestDateFunctionsUseInjectedClock(t *testing.T) {
	clk := fixedClock{t: time.Date(2026, 8, 3, 14, 5, 9, 0, time.UTC)}
	e := mustParse(t, "TODAY()")
	v, err := Eval(e, &Context{Clock: clk})
	require.NoError(t, err)
	require.Equal(t, schema.NewText("2026/08/03"), v)

	e = mustParse(t, "YEAR() + '-' + MONTH() + '-' + DAY()")
	v, err = Eval(e, &Context{Clock: clk})
	require.NoError(t, err)
	require.Equal(t, schema.NewText("2026-08-03"), v)
}

func TestUnknownIdentifierErrors(t *testing.T) {
	e := mustParse(t, "nope")
	_, err := Eval(e, &Context{Row: schema.Row{}})
	require.Error(t, err)
	require.False(t, IsTypeError(err))
}

func TestUnaryMinusOnTextIsTypeError(t *testing.T) {
	e := mustParse(t, "-a")
	_, err := Eval(e, &Context{Row: schema.Row{"a": schema.NewText("x")}})
	require.Error(t, err)
	require.True(t, IsTypeError(err))
}

type stubTables map[string]*schema.Table

func (s stubTables) Table(name string) (*schema.Table, bool) {
	t, ok := s[name]
	return t, ok
}
