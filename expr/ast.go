package expr

import "gridbase/schema"

// Expr is a node in the parsed expression tree. There are exactly seven
// variants: Literal, FieldRef, IndexedFieldRef, UnaryOp, BinaryOp,
// Conditional, and Call.
type Expr interface {
	exprNode()
}

// Literal is a constant INT, REAL, or TEXT value.
type Literal struct {
	Value schema.Value
}

// FieldRef resolves to the current row's value for Name when Name
// matches a schema column. Outside of bare-argument function positions,
// a FieldRef whose Name is not a column is an unknown-identifier error.
type FieldRef struct {
	Name string
}

// IndexedFieldRef is "name[offset]": the value of column Name in the row
// at current_index + round(offset), or empty TEXT out of range.
type IndexedFieldRef struct {
	Name   string
	Offset Expr
}

// UnaryOp is a prefix operator: "!" or "-".
type UnaryOp struct {
	Op string
	X  Expr
}

// BinaryOp is an infix operator.
type BinaryOp struct {
	Op   string
	L, R Expr
}

// Conditional is "cond ? then : else".
type Conditional struct {
	Cond, Then, Else Expr
}

// Call is a function call. Args are unevaluated AST nodes: most
// functions evaluate each argument before the call, but BLANK, TOTAL,
// and SUM interpret a bare-identifier argument as a column name rather
// than evaluating it — see bareColumnName in functions.go.
type Call struct {
	Name string
	Args []Expr
}

func (Literal) exprNode()         {}
func (FieldRef) exprNode()        {}
func (IndexedFieldRef) exprNode() {}
func (UnaryOp) exprNode()         {}
func (BinaryOp) exprNode()        {}
func (Conditional) exprNode()     {}
func (Call) exprNode()            {}
