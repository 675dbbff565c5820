package parser

import (
	"regexp"
	"strings"
)

// tzOffsetSuffix matches a fixed-offset zone at the end of a temporal
// literal, e.g. +08:00 or -08:10
var tzOffsetSuffix = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)

// parseNameExpr parses everything that starts with a NAME token: the
// builtin grammar forms, context- and registry-resolved calls, and
// plain variables
func (p *Parser) parseNameExpr() (Expr, error) {
	pos := p.cur().Position

	// multi-word builtins first; `and`/`or` inside a name only occur in
	// these fixed forms, the lexer keywords them everywhere else
	switch {
	case p.matchCall("date", "and", "time"):
		return p.parseDateTimeLit(pos)
	case p.matchCall("day", "of", "week"):
		return p.parseUnaryBuiltin(pos, 3, func(arg Expr) Expr { return &DayOfWeekExpr{Pos: pos, Expr: arg} })
	case p.matchCall("month", "of", "year"):
		return p.parseUnaryBuiltin(pos, 3, func(arg Expr) Expr { return &MonthOfYearExpr{Pos: pos, Expr: arg} })
	case p.matchCall("get", "or", "else"):
		return p.parseBinaryBuiltin(pos, 3, func(a, b Expr) Expr { return &GetOrElseExpr{Pos: pos, Value: a, Default: b} })
	case p.matchCall("is", "defined"):
		return p.parseUnaryBuiltin(pos, 2, func(arg Expr) Expr { return &IsDefinedExpr{Pos: pos, Expr: arg} })
	case p.matchCall("starts", "with"):
		return p.parseBinaryBuiltin(pos, 2, func(a, b Expr) Expr { return &StringOpExpr{Pos: pos, Op: StrStartsWith, Left: a, Right: b} })
	case p.matchCall("ends", "with"):
		return p.parseBinaryBuiltin(pos, 2, func(a, b Expr) Expr { return &StringOpExpr{Pos: pos, Op: StrEndsWith, Left: a, Right: b} })
	case p.matchCall("list", "contains"):
		return p.parseListOpBuiltin(pos, 2, 2, ListContains)
	case p.matchCall("date"):
		return p.parseDateLit(pos)
	case p.matchCall("time"):
		return p.parseTimeLit(pos)
	case p.matchCall("now"):
		p.skip(2)
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &NowExpr{Pos: pos}, nil
	case p.matchCall("today"):
		p.skip(2)
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &TodayExpr{Pos: pos}, nil
	case p.matchCall("string"):
		return p.parseUnaryBuiltin(pos, 1, func(arg Expr) Expr { return &ToStringExpr{Pos: pos, Expr: arg} })
	case p.matchCall("not"):
		return p.parseUnaryBuiltin(pos, 1, func(arg Expr) Expr { return &NotExpr{Pos: pos, Expr: arg} })
	case p.matchCall("contains"):
		return p.parseBinaryBuiltin(pos, 1, func(a, b Expr) Expr { return &StringOpExpr{Pos: pos, Op: StrContains, Left: a, Right: b} })
	case p.matchCall("matches"):
		return p.parseBinaryBuiltin(pos, 1, func(a, b Expr) Expr { return &StringOpExpr{Pos: pos, Op: StrMatches, Left: a, Right: b} })
	case p.matchCall("count"):
		return p.parseListOpBuiltin(pos, 1, 1, ListCount)
	case p.matchCall("all"):
		return p.parseListOpBuiltin(pos, 1, 1, ListAll)
	case p.matchCall("any"):
		return p.parseListOpBuiltin(pos, 1, 1, ListAny)
	case p.matchCall("before"):
		return p.parseBinaryBuiltin(pos, 1, func(a, b Expr) Expr { return &BeforeExpr{Pos: pos, Left: a, Right: b} })
	case p.matchCall("after"):
		return p.parseBinaryBuiltin(pos, 1, func(a, b Expr) Expr { return &AfterExpr{Pos: pos, Left: a, Right: b} })
	case p.matchCall("includes"):
		return p.parseBinaryBuiltin(pos, 1, func(a, b Expr) Expr { return &IncludesExpr{Pos: pos, Left: a, Right: b} })
	}

	// generic call: the longest run of NAME tokens before ( forms the
	// function name
	nameLen := 0
	for p.at(nameLen).Type == TOKEN_NAME {
		nameLen++
	}
	if nameLen > 0 && p.at(nameLen).Type == TOKEN_LPAREN {
		return p.parseCall(pos, nameLen)
	}

	name := p.cur().Value
	p.next()
	return &VariableExpr{Pos: pos, Name: name}, nil
}

// matchCall reports whether the upcoming tokens spell the given words
// immediately followed by an opening parenthesis. Words may be NAME
// tokens or the keywords and/or (for names like `date and time`).
func (p *Parser) matchCall(words ...string) bool {
	for i, w := range words {
		tok := p.at(i)
		switch tok.Type {
		case TOKEN_NAME, TOKEN_AND, TOKEN_OR:
			if tok.Value != w {
				return false
			}
		default:
			return false
		}
	}
	return p.at(len(words)).Type == TOKEN_LPAREN
}

// skip advances over n tokens
func (p *Parser) skip(n int) {
	for i := 0; i < n; i++ {
		p.next()
	}
}

// parseUnaryBuiltin consumes a nameLen-word builtin taking one argument
func (p *Parser) parseUnaryBuiltin(pos Position, nameLen int, build func(Expr) Expr) (Expr, error) {
	p.skip(nameLen + 1)
	args, err := p.parseArgList(1)
	if err != nil {
		return nil, err
	}
	return build(args[0]), nil
}

// parseBinaryBuiltin consumes a nameLen-word builtin taking two
// arguments
func (p *Parser) parseBinaryBuiltin(pos Position, nameLen int, build func(a, b Expr) Expr) (Expr, error) {
	p.skip(nameLen + 1)
	args, err := p.parseArgList(2)
	if err != nil {
		return nil, err
	}
	return build(args[0], args[1]), nil
}

// parseListOpBuiltin consumes a list aggregate call
func (p *Parser) parseListOpBuiltin(pos Position, nameLen, arity int, op ListOp) (Expr, error) {
	p.skip(nameLen + 1)
	args, err := p.parseArgList(arity)
	if err != nil {
		return nil, err
	}
	return &ListOpExpr{Pos: pos, Op: op, Args: args}, nil
}

// parseArgList parses comma-separated expressions up to the closing
// parenthesis and checks the exact argument count
func (p *Parser) parseArgList(arity int) ([]Expr, error) {
	var args []Expr
	if p.cur().Type != TOKEN_RPAREN {
		for {
			arg, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Type != TOKEN_COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	if len(args) != arity {
		return nil, p.errorf("expected %d arguments, got %d", arity, len(args))
	}
	return args, nil
}

// parseDateLit parses date("YYYY-MM-DD"). A non-literal argument falls
// back to an ordinary context-resolved call named date.
func (p *Parser) parseDateLit(pos Position) (Expr, error) {
	if p.at(2).Type == TOKEN_STRING && p.at(3).Type == TOKEN_RPAREN {
		literal := p.at(2).Literal
		p.skip(4)
		return &DateLit{Pos: pos, Literal: literal}, nil
	}
	p.skip(2)
	return p.parseCallArgsInto(pos, "date")
}

// parseTimeLit parses time("HH:MM:SS[zone]"), splitting the zone suffix
func (p *Parser) parseTimeLit(pos Position) (Expr, error) {
	if p.at(2).Type == TOKEN_STRING && p.at(3).Type == TOKEN_RPAREN {
		literal := p.at(2).Literal
		p.skip(4)
		clock, tz := splitZoneSuffix(literal)
		return &TimeLit{Pos: pos, Literal: clock, TZ: tz}, nil
	}
	p.skip(2)
	return p.parseCallArgsInto(pos, "time")
}

// parseDateTimeLit parses date and time("YYYY-MM-DDTHH:MM:SS[zone]")
func (p *Parser) parseDateTimeLit(pos Position) (Expr, error) {
	if p.at(4).Type != TOKEN_STRING || p.at(5).Type != TOKEN_RPAREN {
		return nil, p.errorf("date and time expects a single string literal")
	}
	literal := p.at(4).Literal
	p.skip(6)

	rest, tz := splitZoneSuffix(literal)
	datePart, timePart, found := strings.Cut(rest, "T")
	if !found {
		return nil, p.errorf("invalid date and time literal %q", literal)
	}
	return &DateTimeLit{
		Pos:  pos,
		Date: &DateLit{Pos: pos, Literal: datePart},
		Time: &TimeLit{Pos: pos, Literal: strings.TrimSpace(timePart), TZ: tz},
	}, nil
}

// splitZoneSuffix splits a trailing Z, @Area/City or ±HH:MM zone marker
// off a temporal literal
func splitZoneSuffix(s string) (string, *TZInfo) {
	if strings.HasSuffix(s, "Z") {
		return strings.TrimSpace(strings.TrimSuffix(s, "Z")), &TZInfo{Kind: TZName, Value: "UTC"}
	}
	if i := strings.IndexByte(s, '@'); i >= 0 {
		return strings.TrimSpace(s[:i]), &TZInfo{Kind: TZName, Value: s[i+1:]}
	}
	if loc := tzOffsetSuffix.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[0]]), &TZInfo{Kind: TZOffset, Value: s[loc[0]:]}
	}
	return s, nil
}

// parseCall parses a generic call whose name spans nameLen NAME tokens.
// Single-word calls resolve through the evaluation context; multi-word
// calls and calls with named arguments resolve through the function
// registry.
func (p *Parser) parseCall(pos Position, nameLen int) (Expr, error) {
	words := make([]string, nameLen)
	for i := 0; i < nameLen; i++ {
		words[i] = p.at(i).Value
	}
	name := strings.Join(words, " ")
	p.skip(nameLen + 1) // name tokens and (

	args, named, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}

	if nameLen == 1 && named == nil {
		return &FunctionCallExpr{Pos: pos, Name: name, Args: args}, nil
	}
	return &FuncInvocationExpr{Pos: pos, Name: name, Args: args, NamedArgs: named}, nil
}

// parseCallArgsInto finishes a call whose name and opening parenthesis
// were already consumed: positional arguments make a context-resolved
// call, named arguments a registry-resolved invocation
func (p *Parser) parseCallArgsInto(pos Position, name string) (Expr, error) {
	args, named, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	if named != nil {
		return &FuncInvocationExpr{Pos: pos, Name: name, NamedArgs: named}, nil
	}
	return &FunctionCallExpr{Pos: pos, Name: name, Args: args}, nil
}

// parseCallArgs parses a call argument list: either all positional or
// all named (name: value) arguments, up to the closing parenthesis
func (p *Parser) parseCallArgs() ([]Expr, []NamedArg, error) {
	if p.cur().Type == TOKEN_RPAREN {
		p.next()
		return nil, nil, nil
	}

	if p.cur().Type == TOKEN_NAME && p.peek().Type == TOKEN_COLON {
		var named []NamedArg
		for {
			name, err := p.expect(TOKEN_NAME)
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(TOKEN_COLON); err != nil {
				return nil, nil, err
			}
			val, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, nil, err
			}
			named = append(named, NamedArg{Name: name.Value, Value: val})
			if p.cur().Type != TOKEN_COMMA {
				break
			}
			p.next()
		}
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, nil, err
		}
		return nil, named, nil
	}

	var args []Expr
	for {
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, arg)
		if p.cur().Type != TOKEN_COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, nil, err
	}
	return args, nil, nil
}
