package expr

import (
	"math"

	"github.com/pkg/errors"

	"gridbase/schema"
)

// Eval walks e against ctx and produces a Value, or an error — a
// *TypeError for an operator/type mismatch, any other error for a
// generic parse/evaluation failure. Eval is a pure function of (e, ctx);
// ctx.Row/ctx.Index are the only fields callers rebind between rows.
func Eval(e Expr, ctx *Context) (schema.Value, error) {
	switch n := e.(type) {
	case Literal:
		return n.Value, nil
	case FieldRef:
		return evalFieldRef(n, ctx)
	case IndexedFieldRef:
		return evalIndexedFieldRef(n, ctx)
	case UnaryOp:
		return evalUnary(n, ctx)
	case BinaryOp:
		return evalBinary(n, ctx)
	case Conditional:
		return evalConditional(n, ctx)
	case Call:
		return evalCall(n, ctx)
	default:
		return schema.Value{}, errors.Errorf("unsupported expression node %T", e)
	}
}

func evalFieldRef(n FieldRef, ctx *Context) (schema.Value, error) {
	if v, ok := ctx.Row[n.Name]; ok {
		return v, nil
	}
	if isBuiltinFunction(n.Name) {
		return schema.Value{}, errors.Errorf("%s is a function and requires arguments", n.Name)
	}
	return schema.Value{}, errors.Errorf("unknown identifier %q", n.Name)
}

func evalIndexedFieldRef(n IndexedFieldRef, ctx *Context) (schema.Value, error) {
	offsetVal, err := Eval(n.Offset, ctx)
	if err != nil {
		return schema.Value{}, err
	}
	f, ok := offsetVal.AsFloat()
	if !ok {
		return schema.Value{}, newTypeError("indexed field offset must be numeric, got TEXT")
	}
	idx := ctx.Index + int(math.Round(f))
	if ctx.Table == nil || idx < 0 || idx >= len(ctx.Table.Rows) {
		return schema.NewText(""), nil
	}
	v, ok := ctx.Table.Rows[idx][n.Name]
	if !ok {
		return schema.NewText(""), nil
	}
	return v, nil
}

func evalUnary(n UnaryOp, ctx *Context) (schema.Value, error) {
	x, err := Eval(n.X, ctx)
	if err != nil {
		return schema.Value{}, err
	}
	switch n.Op {
	case "!":
		return boolValue(!x.Truthy()), nil
	case "-":
		f, ok := x.AsFloat()
		if !ok {
			return schema.Value{}, newTypeError("unary - requires a numeric operand, got TEXT %q", x.Text)
		}
		if x.Type == schema.INT {
			return schema.NewInt(-x.Int), nil
		}
		return schema.NewReal(-f), nil
	default:
		return schema.Value{}, errors.Errorf("unknown unary operator %q", n.Op)
	}
}

func evalConditional(n Conditional, ctx *Context) (schema.Value, error) {
	cond, err := Eval(n.Cond, ctx)
	if err != nil {
		return schema.Value{}, err
	}
	if cond.Truthy() {
		return Eval(n.Then, ctx)
	}
	return Eval(n.Else, ctx)
}

func evalBinary(n BinaryOp, ctx *Context) (schema.Value, error) {
	switch n.Op {
	case "||":
		l, err := Eval(n.L, ctx)
		if err != nil {
			return schema.Value{}, err
		}
		if l.Truthy() {
			return boolValue(true), nil
		}
		r, err := Eval(n.R, ctx)
		if err != nil {
			return schema.Value{}, err
		}
		return boolValue(r.Truthy()), nil
	case "&&":
		l, err := Eval(n.L, ctx)
		if err != nil {
			return schema.Value{}, err
		}
		if !l.Truthy() {
			return boolValue(false), nil
		}
		r, err := Eval(n.R, ctx)
		if err != nil {
			return schema.Value{}, err
		}
		return boolValue(r.Truthy()), nil
	}

	l, err := Eval(n.L, ctx)
	if err != nil {
		return schema.Value{}, err
	}
	r, err := Eval(n.R, ctx)
	if err != nil {
		return schema.Value{}, err
	}

	switch n.Op {
	case "=", "!=", "<", ">":
		return evalComparison(n.Op, l, r)
	case "+", "-", "*", "/", "^":
		return evalArith(n.Op, l, r)
	default:
		return schema.Value{}, errors.Errorf("unknown binary operator %q", n.Op)
	}
}

func boolValue(b bool) schema.Value {
	if b {
		return schema.NewInt(1)
	}
	return schema.NewInt(0)
}

func evalComparison(op string, l, r schema.Value) (schema.Value, error) {
	bothText := l.Type == schema.TEXT && r.Type == schema.TEXT
	lf, lok := l.AsFloat()
	rf, rok := r.AsFloat()
	bothNumeric := lok && rok

	if !bothText && !bothNumeric {
		return schema.Value{}, newTypeError("cannot compare %s with %s", l.Type, r.Type)
	}

	var lt, eq bool
	if bothText {
		eq = l.Text == r.Text
		lt = l.Text < r.Text
	} else {
		eq = lf == rf
		lt = lf < rf
	}

	switch op {
	case "=":
		return boolValue(eq), nil
	case "!=":
		return boolValue(!eq), nil
	case "<":
		return boolValue(lt), nil
	case ">":
		return boolValue(!lt && !eq), nil
	}
	return schema.Value{}, errors.Errorf("unknown comparison operator %q", op)
}

func evalArith(op string, l, r schema.Value) (schema.Value, error) {
	if op == "+" && l.Type == schema.TEXT && r.Type == schema.TEXT {
		return schema.NewText(l.Text + r.Text), nil
	}

	lf, lok := l.AsFloat()
	rf, rok := r.AsFloat()
	if !lok || !rok {
		return schema.Value{}, newTypeError("operator %q requires numeric operands", op)
	}

	var res float64
	switch op {
	case "+":
		res = lf + rf
	case "-":
		res = lf - rf
	case "*":
		res = lf * rf
	case "/":
		res = lf / rf
	case "^":
		res = math.Pow(lf, rf)
	}

	bothInt := l.Type == schema.INT && r.Type == schema.INT
	if bothInt && !math.IsInf(res, 0) && !math.IsNaN(res) && res == math.Trunc(res) {
		return schema.NewInt(int64(res)), nil
	}
	return schema.NewReal(res), nil
}
