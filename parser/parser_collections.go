package parser

// parseGroupOrRange parses a parenthesized group or an open-low range:
// (expr) or (low..high] / (low..high)
func (p *Parser) parseGroupOrRange() (Expr, error) {
	pos := p.cur().Position
	p.next() // consume (

	first, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	if p.cur().Type == TOKEN_RANGE {
		return p.parseRangeTail(pos, first, false)
	}

	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return first, nil
}

// parseListOrRange parses a list literal or a closed-low range:
// [e, e, ...] or [low..high] / [low..high)
func (p *Parser) parseListOrRange() (Expr, error) {
	pos := p.cur().Position
	p.next() // consume [

	if p.cur().Type == TOKEN_RBRACKET {
		p.next()
		return &ListExpr{Pos: pos}, nil
	}

	first, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	if p.cur().Type == TOKEN_RANGE {
		return p.parseRangeTail(pos, first, true)
	}

	items := []Expr{first}
	for p.cur().Type == TOKEN_COMMA {
		p.next()
		item, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expect(TOKEN_RBRACKET); err != nil {
		return nil, err
	}
	return &ListExpr{Pos: pos, Items: items}, nil
}

// parseRangeTail parses ..high and the closing bracket of a range whose
// low endpoint and low bound kind are already known
func (p *Parser) parseRangeTail(pos Position, low Expr, lowClosed bool) (Expr, error) {
	p.next() // consume ..

	high, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	var highClosed bool
	switch p.cur().Type {
	case TOKEN_RBRACKET:
		highClosed = true
	case TOKEN_RPAREN:
		highClosed = false
	default:
		return nil, p.errorf("expected ] or ) to close range, got %q", p.cur().Value)
	}
	p.next()

	return &RangeExpr{Pos: pos, Low: low, High: high, LowClosed: lowClosed, HighClosed: highClosed}, nil
}

// parseContext parses a context literal: {key: value, ...} with bare
// name or quoted string keys
func (p *Parser) parseContext() (Expr, error) {
	pos := p.cur().Position
	p.next() // consume {

	ctx := &ContextExpr{Pos: pos}
	if p.cur().Type == TOKEN_RBRACE {
		p.next()
		return ctx, nil
	}

	for {
		keyTok := p.cur()
		var key string
		switch keyTok.Type {
		case TOKEN_NAME:
			key = keyTok.Value
		case TOKEN_STRING:
			key = keyTok.Literal
		default:
			return nil, p.errorf("expected context key, got %q", keyTok.Value)
		}
		p.next()

		if _, err := p.expect(TOKEN_COLON); err != nil {
			return nil, err
		}
		val, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		ctx.Pairs = append(ctx.Pairs, &PairExpr{Pos: keyTok.Position, Key: key, Value: val})

		if p.cur().Type != TOKEN_COMMA {
			break
		}
		p.next()
	}

	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return ctx, nil
}

// parseQuantifier parses: some|every name in list [, name in list ...]
// satisfies predicate
func (p *Parser) parseQuantifier() (Expr, error) {
	pos := p.cur().Position
	every := p.cur().Type == TOKEN_EVERY
	p.next()

	var pairs []IterPair
	for {
		name, err := p.expect(TOKEN_NAME)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_IN); err != nil {
			return nil, err
		}
		list, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, IterPair{Name: name.Value, List: list})

		if p.cur().Type != TOKEN_COMMA {
			break
		}
		p.next()
	}

	if _, err := p.expect(TOKEN_SATISFIES); err != nil {
		return nil, err
	}
	pred, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	if every {
		return &ListEveryExpr{Pos: pos, Pairs: pairs, Satisfies: pred}, nil
	}
	return &ListSomeExpr{Pos: pos, Pairs: pairs, Satisfies: pred}, nil
}
