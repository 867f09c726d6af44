package rules

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"

	"gridbase/expr"
)

// Op is one of the three rule verbs.
type Op string

const (
	Init  Op = "INIT"
	Fixup Op = "FIXUP"
	Check Op = "CHECK"
)

// Rule is a single "OPERATION column expression" line: column and the
// compiled form of its expression text.
type Rule struct {
	Op     Op
	Column string
	Source string
	Expr   expr.Expr
}

// RuleSet is every rule read from one file, preserving source order.
type RuleSet struct {
	Rules []Rule
}

// Inits/Fixups/Checks filter Rules by Op, preserving file order.
func (rs *RuleSet) Inits() []Rule  { return rs.filter(Init) }
func (rs *RuleSet) Fixups() []Rule { return rs.filter(Fixup) }
func (rs *RuleSet) Checks() []Rule { return rs.filter(Check) }

func (rs *RuleSet) filter(op Op) []Rule {
	var out []Rule
	for _, r := range rs.Rules {
		if r.Op == op {
			out = append(out, r)
		}
	}
	return out
}

// Parse reads a rule file's text into a RuleSet. Blank lines are
// skipped; every other line must start with a known operation keyword
// followed by a column name and an expression running to end of line.
func Parse(text string) (*RuleSet, error) {
	rs := &RuleSet{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rule, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "rule file line %d", lineNo)
		}
		rs.Rules = append(rs.Rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading rule file")
	}
	return rs, nil
}

func parseLine(line string) (Rule, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 3 {
		return Rule{}, errors.Errorf("malformed rule line %q", line)
	}
	op := Op(strings.ToUpper(fields[0]))
	switch op {
	case Init, Fixup, Check:
	default:
		return Rule{}, errors.Errorf("unknown rule operation %q", fields[0])
	}
	column := fields[1]
	source := fields[2]
	e, err := expr.Parse(source)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "parsing expression for column %q", column)
	}
	return Rule{Op: op, Column: column, Source: source, Expr: e}, nil
}
