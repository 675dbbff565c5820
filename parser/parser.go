package parser

import (
	"feel/types"
	"strconv"
)

// Operator precedence levels (higher = tighter binding)
const (
	PREC_LOWEST     = iota
	PREC_OR         // or
	PREC_AND        // and
	PREC_IN         // in
	PREC_BETWEEN    // between .. and ..
	PREC_COMPARISON // = != < <= > >=
	PREC_ADDITIVE   // + -
	PREC_MULTIPLY   // * /
	PREC_EXPONENT   // **
	PREC_UNARY      // unary -
)

// Parser parses FEEL source text into an expression tree. The whole
// token stream is buffered up front; a few constructs (ranges vs lists
// and groups, index vs filter) need more lookahead than one token.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	p := &Parser{}
	lexer := NewLexer(input)
	for {
		tok := lexer.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return p
}

// Parse parses a complete expression and requires the whole input to be
// consumed
func Parse(input string) (Expr, error) {
	p := NewParser(input)
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != TOKEN_EOF {
		return nil, p.errorf("unexpected token %q after expression", p.cur().Value)
	}
	return expr, nil
}

// cur returns the current token
func (p *Parser) cur() Token {
	return p.at(0)
}

// peek returns the next token without advancing
func (p *Parser) peek() Token {
	return p.at(1)
}

// at returns the token offset positions ahead of the current one
func (p *Parser) at(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

// next advances to the next token
func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// expect consumes a token of the given type or fails
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return tok, p.errorf("expected %s, got %q", tt, tok.Value)
	}
	p.next()
	return tok, nil
}

// errorf builds a parse error carrying the current source position
func (p *Parser) errorf(format string, args ...any) error {
	tok := p.cur()
	e := types.NewParseError(format, args...)
	e.Msg += " (line " + strconv.Itoa(tok.Position.Line) + ", column " + strconv.Itoa(tok.Position.Column) + ")"
	return e
}

// infixPrecedence returns the binding power of an infix token
func infixPrecedence(tt TokenType) (int, bool) {
	switch tt {
	case TOKEN_OR:
		return PREC_OR, true
	case TOKEN_AND:
		return PREC_AND, true
	case TOKEN_IN:
		return PREC_IN, true
	case TOKEN_BETWEEN:
		return PREC_BETWEEN, true
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return PREC_COMPARISON, true
	case TOKEN_PLUS, TOKEN_MINUS:
		return PREC_ADDITIVE, true
	case TOKEN_STAR, TOKEN_SLASH:
		return PREC_MULTIPLY, true
	case TOKEN_POW:
		return PREC_EXPONENT, true
	}
	return 0, false
}

// ParseExpression parses an expression using precedence climbing.
// Operators bind while their precedence is at least minPrec.
func (p *Parser) ParseExpression(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := infixPrecedence(p.cur().Type)
		if !ok || prec < minPrec {
			return left, nil
		}
		left, err = p.parseInfix(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// parseInfix parses one infix construct with the given precedence,
// using left as the already-parsed left operand
func (p *Parser) parseInfix(left Expr, prec int) (Expr, error) {
	tok := p.cur()
	pos := tok.Position

	switch tok.Type {
	case TOKEN_BETWEEN:
		// bounds bind tighter than the surrounding and/or; the `and`
		// between the bounds belongs to between itself
		p.next()
		low, err := p.ParseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_AND); err != nil {
			return nil, err
		}
		high, err := p.ParseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		return &BetweenExpr{Pos: pos, Value: left, Low: low, High: high}, nil

	case TOKEN_POW:
		// right-associative
		p.next()
		right, err := p.ParseExpression(prec)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Pos: pos, Op: OpPow, Left: left, Right: right}, nil
	}

	p.next()
	right, err := p.ParseExpression(prec + 1)
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TOKEN_OR:
		return &OrExpr{Pos: pos, Left: left, Right: right}, nil
	case TOKEN_AND:
		return &AndExpr{Pos: pos, Left: left, Right: right}, nil
	case TOKEN_IN:
		return &InExpr{Pos: pos, Value: left, Target: right}, nil
	case TOKEN_EQ:
		return &BinaryExpr{Pos: pos, Op: OpEq, Left: left, Right: right}, nil
	case TOKEN_NE:
		return &NotEqualExpr{Pos: pos, Left: left, Right: right}, nil
	case TOKEN_LT:
		return &BinaryExpr{Pos: pos, Op: OpLt, Left: left, Right: right}, nil
	case TOKEN_GT:
		return &BinaryExpr{Pos: pos, Op: OpGt, Left: left, Right: right}, nil
	case TOKEN_LE:
		return &BinaryExpr{Pos: pos, Op: OpLe, Left: left, Right: right}, nil
	case TOKEN_GE:
		return &BinaryExpr{Pos: pos, Op: OpGe, Left: left, Right: right}, nil
	case TOKEN_PLUS:
		return &BinaryExpr{Pos: pos, Op: OpAdd, Left: left, Right: right}, nil
	case TOKEN_MINUS:
		return &BinaryExpr{Pos: pos, Op: OpSub, Left: left, Right: right}, nil
	case TOKEN_STAR:
		return &BinaryExpr{Pos: pos, Op: OpMul, Left: left, Right: right}, nil
	case TOKEN_SLASH:
		return &BinaryExpr{Pos: pos, Op: OpDiv, Left: left, Right: right}, nil
	}
	return nil, p.errorf("unexpected operator %q", tok.Value)
}

// parseUnary parses a prefix minus or hands off to postfix parsing
func (p *Parser) parseUnary() (Expr, error) {
	if p.cur().Type == TOKEN_MINUS {
		pos := p.cur().Position
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		// a signed number literal stays a literal
		if lit, ok := operand.(*NumberLit); ok {
			if lit.Value.IsInt() {
				lit.Value = types.NewInt(-lit.Value.Int())
			} else {
				lit.Value = types.NewFloat(-lit.Value.Float())
			}
			lit.Pos = pos
			return lit, nil
		}
		return &BinaryExpr{Pos: pos, Op: OpSub, Left: &NumberLit{Pos: pos, Value: types.NewInt(0)}, Right: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// index/filter brackets and dotted key paths
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Type {
		case TOKEN_LBRACKET:
			expr, err = p.parseIndexOrFilter(expr)
			if err != nil {
				return nil, err
			}
		case TOKEN_DOT:
			expr, err = p.parseKeyPath(expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

// parseIndexOrFilter parses expr[...]: a bare integer literal is list
// access, anything else is a filter predicate
func (p *Parser) parseIndexOrFilter(list Expr) (Expr, error) {
	pos := p.cur().Position
	p.next() // consume [

	if idx, n, ok := p.peekIntIndex(); ok {
		for i := 0; i < n; i++ {
			p.next()
		}
		if _, err := p.expect(TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		return &ListItemExpr{Pos: pos, List: list, Index: idx}, nil
	}

	pred, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_RBRACKET); err != nil {
		return nil, err
	}
	return &ListFilterExpr{Pos: pos, List: list, Predicate: pred}, nil
}

// peekIntIndex matches an optionally signed integer literal directly
// followed by ] and returns its value and token count
func (p *Parser) peekIntIndex() (int64, int, bool) {
	numAt, sign := 0, int64(1)
	if p.cur().Type == TOKEN_MINUS {
		numAt, sign = 1, -1
	}
	if p.at(numAt).Type != TOKEN_NUMBER || p.at(numAt+1).Type != TOKEN_RBRACKET {
		return 0, 0, false
	}
	idx, err := strconv.ParseInt(p.at(numAt).Value, 10, 64)
	if err != nil {
		return 0, 0, false // decimal literal: treat as a filter
	}
	return sign * idx, numAt + 1, true
}

// parseKeyPath parses a dotted access chain: expr.a.b
func (p *Parser) parseKeyPath(expr Expr) (Expr, error) {
	pos := p.cur().Position
	var keys []string
	for p.cur().Type == TOKEN_DOT {
		p.next()
		key, err := p.expect(TOKEN_NAME)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key.Value)
	}
	return &ContextItemExpr{Pos: pos, Expr: expr, Keys: keys}, nil
}

// parsePrimary parses an atom: literals, collections, groups, ranges,
// quantifiers, calls and variables
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	pos := tok.Position

	switch tok.Type {
	case TOKEN_NUMBER:
		num, err := types.ParseNumber(tok.Value)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", tok.Value)
		}
		p.next()
		return &NumberLit{Pos: pos, Value: num}, nil

	case TOKEN_STRING:
		p.next()
		return &StringLit{Pos: pos, Value: tok.Literal}, nil

	case TOKEN_TRUE:
		p.next()
		return &BoolLit{Pos: pos, Value: true}, nil

	case TOKEN_FALSE:
		p.next()
		return &BoolLit{Pos: pos, Value: false}, nil

	case TOKEN_NULL:
		p.next()
		return &NullLit{Pos: pos}, nil

	case TOKEN_LPAREN:
		return p.parseGroupOrRange()

	case TOKEN_LBRACKET:
		return p.parseListOrRange()

	case TOKEN_LBRACE:
		return p.parseContext()

	case TOKEN_SOME, TOKEN_EVERY:
		return p.parseQuantifier()

	case TOKEN_NAME:
		return p.parseNameExpr()
	}

	return nil, p.errorf("unexpected token %q", tok.Value)
}
