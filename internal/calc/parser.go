package calc

import "fmt"

// Expr is a node of a parsed expression.
type Expr interface {
	Pos() int
}

// NumberExpr is an integer or decimal literal.
type NumberExpr struct {
	Tok Token
}

// UnaryExpr is a prefix negation or plus.
type UnaryExpr struct {
	Op Token
	X  Expr
}

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Op   Token
	X, Y Expr
}

// FactorialExpr is the postfix factorial x!.
type FactorialExpr struct {
	Op Token
	X  Expr
}

// CallExpr is a builtin function call name(args...).
type CallExpr struct {
	Name Token
	Args []Expr
}

func (e *NumberExpr) Pos() int    { return e.Tok.Offset }
func (e *UnaryExpr) Pos() int     { return e.Op.Offset }
func (e *BinaryExpr) Pos() int    { return e.Op.Offset }
func (e *FactorialExpr) Pos() int { return e.Op.Offset }
func (e *CallExpr) Pos() int      { return e.Name.Offset }

// Operator precedence: a larger number binds tighter.
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * / %
	precUnary          = 3 // -x +x
	precPower          = 4 // ^
	precPostfix        = 5 // !
)

// binaryPrec returns the precedence of kind and whether it is right
// associative, or -1 for tokens that are not binary operators.
func binaryPrec(kind Kind) (int, bool) {
	switch kind {
	case Plus, Minus:
		return precAdditive, false
	case Star, Slash, Percent:
		return precMultiplicative, false
	case Caret:
		return precPower, true
	default:
		return -1, false
	}
}

type parser struct {
	toks []Token
	pos  int
}

// Parse builds an expression tree from src.
func Parse(src string) (Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("unexpected %s", tok.Kind)}
	}
	return expr, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind Kind) (Token, error) {
	tok := p.next()
	if tok.Kind != kind {
		return tok, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, found %s", kind, tok.Kind)}
	}
	return tok, nil
}

// parseExpr implements precedence climbing for binary operators.
func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		prec, right := binaryPrec(op.Kind)
		if prec < 0 || prec < minPrec {
			return left, nil
		}
		p.next()
		nextMin := prec + 1
		if right {
			nextMin = prec
		}
		rhs, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, X: left, Y: rhs}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()
	if tok.Kind == Minus || tok.Kind == Plus {
		p.next()
		// -2^2 is -(2^2): the operand binds at power precedence.
		x, err := p.parseExpr(precPower)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok, X: x}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == Bang {
		x = &FactorialExpr{Op: p.next(), X: x}
	}
	return x, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.Kind {
	case Int, Decimal:
		return &NumberExpr{Tok: tok}, nil
	case LParen:
		x, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}
		return x, nil
	case Ident:
		return p.parseCall(tok)
	default:
		return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("unexpected %s", tok.Kind)}
	}
}

func (p *parser) parseCall(name Token) (Expr, error) {
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	call := &CallExpr{Name: name}
	if p.peek().Kind == RParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		tok := p.next()
		switch tok.Kind {
		case Comma:
			continue
		case RParen:
			return call, nil
		default:
			return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("expected ',' or ')', found %s", tok.Kind)}
		}
	}
}
