// Package rules parses and applies the rule files that drive row
// ingress: one sidecar <table>.RUL file per table, each line an
// OPERATION (INIT, FIXUP, CHECK) against a column and an expression.
package rules
