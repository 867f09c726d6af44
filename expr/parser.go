package expr

import (
	"github.com/pkg/errors"

	"gridbase/schema"
)

// Parse tokenizes and parses src into an AST, following the precedence
// table of spec.md §4.2.2 from lowest to highest binding: conditional,
// ||, &&, prefix !, non-associative comparison, +/-, * //, right-assoc
// ^, prefix unary -, then calls/groups/field access.
func Parse(src string) (Expr, error) {
	toks, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, errors.Errorf("unexpected token %s", p.cur())
	}
	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) advance()    { p.pos++ }
func (p *parser) is(k tokenKind) bool {
	return p.cur().kind == k
}
func (p *parser) expect(k tokenKind, what string) (token, error) {
	if !p.is(k) {
		return token{}, errors.Errorf("expected %s but found %s", what, p.cur())
	}
	t := p.cur()
	p.advance()
	return t, nil
}

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.is(tokQuestion) {
		return cond, nil
	}
	p.advance()
	thenE, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}
	elseE, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return Conditional{Cond: cond, Then: thenE, Else: elseE}, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.is(tokOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: "||", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.is(tokAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: "&&", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.is(tokNot) {
		p.advance()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: "!", X: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	var op string
	switch p.cur().kind {
	case tokEq:
		op = "="
	case tokNe:
		op = "!="
	case tokLt:
		op = "<"
	case tokGt:
		op = ">"
	default:
		return left, nil
	}
	p.advance()
	right, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	return BinaryOp{Op: op, L: left, R: right}, nil
}

func (p *parser) parseAddSub() (Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.is(tokPlus) || p.is(tokMinus) {
		op := "+"
		if p.is(tokMinus) {
			op = "-"
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseMulDiv() (Expr, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.is(tokStar) || p.is(tokSlash) {
		op := "*"
		if p.is(tokSlash) {
			op = "/"
		}
		p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parsePow() (Expr, error) {
	left, err := p.parseUnaryMinus()
	if err != nil {
		return nil, err
	}
	if p.is(tokCaret) {
		p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: "^", L: left, R: right}, nil
	}
	return left, nil
}

func (p *parser) parseUnaryMinus() (Expr, error) {
	if p.is(tokMinus) {
		p.advance()
		x, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: "-", X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch t.kind {
	case tokInt:
		p.advance()
		return Literal{Value: schema.NewInt(parseIntLiteral(t.text))}, nil
	case tokReal:
		p.advance()
		return Literal{Value: schema.NewReal(parseRealLiteral(t.text))}, nil
	case tokString:
		p.advance()
		return Literal{Value: schema.NewText(t.text)}, nil
	case tokLParen:
		p.advance()
		e, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		p.advance()
		name := t.text
		switch p.cur().kind {
		case tokLParen:
			return p.parseCall(name)
		case tokLBracket:
			p.advance()
			offset, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "']'"); err != nil {
				return nil, err
			}
			return IndexedFieldRef{Name: name, Offset: offset}, nil
		default:
			return FieldRef{Name: name}, nil
		}
	}
	return nil, errors.Errorf("unexpected token %s", t)
}

func (p *parser) parseCall(name string) (Expr, error) {
	p.advance() // consume '('
	var args []Expr
	if !p.is(tokRParen) {
		for {
			arg, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.is(tokComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return Call{Name: name, Args: args}, nil
}
