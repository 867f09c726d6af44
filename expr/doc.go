// Package expr implements the augmented expression language used by
// commands (ADD_COLUMN, SET_VALUE, DELETE_ROWS) and by per-table rule
// files (INIT/FIXUP/CHECK).
//
// A Lexer tokenizes source text; Parse runs a precedence-climbing
// recursive-descent parser over the token stream and produces an AST
// (Literal, FieldRef, IndexedFieldRef, UnaryOp, BinaryOp, Conditional,
// Call); Eval walks that AST against a Context. An expression is parsed
// once per command and reused across every row of a batch by rebinding
// Context.Row/Context.Index, which are plain field assignments.
//
// Grounded on the precedence-climbing recursive-descent shape shown in
// the retrieval pack's tinySQL reference (parseOr -> parseAnd -> ... ->
// parseUnary -> parsePrimary), generalized to this language's
// conditional/logical/comparison/arithmetic ladder and to field and
// function call syntax the reference grammar lacks.
package expr
