package expr

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"gridbase/schema"
)

type builtin struct {
	arity int // -1 means "checked by the handler itself"
	call  func(args []Expr, ctx *Context) (schema.Value, error)
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"BLANK":    {arity: 1, call: fnBlank},
		"TODAY":    {arity: 0, call: fnToday},
		"DAY":      {arity: 0, call: fnDay},
		"MONTH":    {arity: 0, call: fnMonth},
		"YEAR":     {arity: 0, call: fnYear},
		"NOW":      {arity: 0, call: fnNow},
		"LENGTH":   {arity: 1, call: fnLength},
		"APPEND":   {arity: 2, call: fnAppend},
		"UPPER":    {arity: 1, call: fnUpper},
		"TOTAL":    {arity: 2, call: fnTotal},
		"REGEXP":   {arity: 2, call: fnRegexp},
		"REPLACE":  {arity: 3, call: fnReplace},
		"CURR_ROW": {arity: 0, call: fnCurrRow},
		"NUM_ROWS": {arity: 0, call: fnNumRows},
		"SUM":      {arity: 3, call: fnSum},
	}
}

func isBuiltinFunction(name string) bool {
	_, ok := builtins[strings.ToUpper(name)]
	return ok
}

func evalCall(n Call, ctx *Context) (schema.Value, error) {
	fn, ok := builtins[strings.ToUpper(n.Name)]
	if !ok {
		return schema.Value{}, errors.Errorf("unknown function %q", n.Name)
	}
	if fn.arity >= 0 && len(n.Args) != fn.arity {
		return schema.Value{}, errors.Errorf("%s expects %d argument(s), got %d", n.Name, fn.arity, len(n.Args))
	}
	return fn.call(n.Args, ctx)
}

func clock(ctx *Context) Clock {
	if ctx.Clock == nil {
		return SystemClock{}
	}
	return ctx.Clock
}

// bareColumnName extracts a column name from an argument passed "as
// written" rather than evaluated: a bare identifier, or a string
// literal naming the column.
func bareColumnName(e Expr) (string, bool) {
	switch n := e.(type) {
	case FieldRef:
		return n.Name, true
	case Literal:
		if n.Value.Type == schema.TEXT {
			return n.Value.Text, true
		}
	}
	return "", false
}

func fnBlank(args []Expr, ctx *Context) (schema.Value, error) {
	var v schema.Value
	if fr, ok := args[0].(FieldRef); ok {
		if rowVal, exists := ctx.Row[fr.Name]; exists {
			v = rowVal
		} else {
			v = schema.NewText(fr.Name)
		}
	} else {
		var err error
		v, err = Eval(args[0], ctx)
		if err != nil {
			return schema.Value{}, err
		}
	}
	return boolValue(v.IsBlank()), nil
}

func fnToday(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewText(clock(ctx).Now().Format("2006/01/02")), nil
}

func fnDay(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewText(clock(ctx).Now().Format("02")), nil
}

func fnMonth(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewText(clock(ctx).Now().Format("01")), nil
}

func fnYear(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewText(clock(ctx).Now().Format("2006")), nil
}

func fnNow(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewText(clock(ctx).Now().Format("15:04:05")), nil
}

func fnLength(args []Expr, ctx *Context) (schema.Value, error) {
	v, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	return schema.NewInt(int64(utf8.RuneCountInString(v.String()))), nil
}

func fnAppend(args []Expr, ctx *Context) (schema.Value, error) {
	a, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	b, err := Eval(args[1], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	return schema.NewText(a.String() + b.String()), nil
}

func fnUpper(args []Expr, ctx *Context) (schema.Value, error) {
	v, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	return schema.NewText(strings.ToUpper(v.String())), nil
}

func fnTotal(args []Expr, ctx *Context) (schema.Value, error) {
	tableVal, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	colName, ok := bareColumnName(args[1])
	if !ok {
		colVal, err := Eval(args[1], ctx)
		if err != nil {
			return schema.Value{}, err
		}
		colName = colVal.String()
	}

	if ctx.Tables == nil {
		return schema.NewReal(0), nil
	}
	tbl, found := ctx.Tables.Table(tableVal.String())
	if !found {
		return schema.NewReal(0), nil
	}
	col, found := tbl.Column(colName)
	if !found {
		return schema.NewReal(0), nil
	}
	if col.Type == schema.TEXT {
		return schema.Value{}, newTypeError("TOTAL cannot sum TEXT column %q", colName)
	}

	var sum float64
	for _, row := range tbl.Rows {
		if f, ok := row[colName].AsFloat(); ok {
			sum += f
		}
	}
	return schema.NewReal(sum), nil
}

func fnRegexp(args []Expr, ctx *Context) (schema.Value, error) {
	patVal, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	sVal, err := Eval(args[1], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	re, err := regexp.Compile(patVal.String())
	if err != nil {
		return schema.NewText(""), nil
	}
	return schema.NewText(re.FindString(sVal.String())), nil
}

func fnReplace(args []Expr, ctx *Context) (schema.Value, error) {
	colVal, err := Eval(args[0], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	patVal, err := Eval(args[1], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	tmplVal, err := Eval(args[2], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	re, err := regexp.Compile(patVal.String())
	if err != nil {
		return colVal, nil
	}
	return schema.NewText(re.ReplaceAllString(colVal.String(), tmplVal.String())), nil
}

func fnCurrRow(_ []Expr, ctx *Context) (schema.Value, error) {
	return schema.NewInt(int64(ctx.Index)), nil
}

func fnNumRows(_ []Expr, ctx *Context) (schema.Value, error) {
	if ctx.Table == nil {
		return schema.NewInt(0), nil
	}
	return schema.NewInt(int64(len(ctx.Table.Rows))), nil
}

func fnSum(args []Expr, ctx *Context) (schema.Value, error) {
	colName, ok := bareColumnName(args[0])
	if !ok {
		colVal, err := Eval(args[0], ctx)
		if err != nil {
			return schema.Value{}, err
		}
		colName = colVal.String()
	}
	startVal, err := Eval(args[1], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	finishVal, err := Eval(args[2], ctx)
	if err != nil {
		return schema.Value{}, err
	}
	startF, ok := startVal.AsFloat()
	if !ok {
		return schema.Value{}, newTypeError("SUM start must be numeric")
	}
	finishF, ok := finishVal.AsFloat()
	if !ok {
		return schema.Value{}, newTypeError("SUM finish must be numeric")
	}
	start, finish := int(startF), int(finishF)

	if ctx.Table == nil || start > finish || start < 0 || finish >= len(ctx.Table.Rows) {
		return schema.NewReal(0), nil
	}
	col, found := ctx.Table.Column(colName)
	if !found {
		return schema.NewReal(0), nil
	}
	if col.Type == schema.TEXT {
		return schema.Value{}, newTypeError("SUM cannot sum TEXT column %q", colName)
	}

	var sum float64
	for i := start; i <= finish; i++ {
		if f, ok := ctx.Table.Rows[i][colName].AsFloat(); ok {
			sum += f
		}
	}
	return schema.NewReal(sum), nil
}
