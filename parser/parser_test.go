package parser

import (
	"fmt"
	"testing"
)

func mustParse(t *testing.T, input string) Expr {
	t.Helper()
	expr, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return expr
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr := mustParse(t, "1+2*3")
	add, ok := expr.(*BinaryExpr)
	if !ok || add.Op != OpAdd {
		t.Fatalf("root = %T, want + BinaryExpr", expr)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != OpMul {
		t.Fatalf("right of + = %T, want * BinaryExpr", add.Right)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	expr := mustParse(t, "2 ** 3 ** 2")
	pow, ok := expr.(*BinaryExpr)
	if !ok || pow.Op != OpPow {
		t.Fatalf("root = %T", expr)
	}
	if _, ok := pow.Right.(*BinaryExpr); !ok {
		t.Fatal("** should nest to the right")
	}
	if _, ok := pow.Left.(*NumberLit); !ok {
		t.Fatal("left of ** should stay a literal")
	}
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	expr := mustParse(t, "-4")
	lit, ok := expr.(*NumberLit)
	if !ok {
		t.Fatalf("got %T, want NumberLit", expr)
	}
	if !lit.Value.IsInt() || lit.Value.Int() != -4 {
		t.Errorf("value = %s", lit.Value.String())
	}
}

func TestParseBetweenBinding(t *testing.T) {
	// the trailing `and true` belongs to the enclosing conjunction
	expr := mustParse(t, "5 between 3 and 7 and true")
	and, ok := expr.(*AndExpr)
	if !ok {
		t.Fatalf("root = %T, want AndExpr", expr)
	}
	if _, ok := and.Left.(*BetweenExpr); !ok {
		t.Fatalf("left of and = %T, want BetweenExpr", and.Left)
	}
}

func TestParseRanges(t *testing.T) {
	tests := []struct {
		input      string
		lowClosed  bool
		highClosed bool
	}{
		{"[1..3]", true, true},
		{"[1..3)", true, false},
		{"(1..3]", false, true},
		{"(1..3)", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := mustParse(t, tt.input)
			r, ok := expr.(*RangeExpr)
			if !ok {
				t.Fatalf("got %T, want RangeExpr", expr)
			}
			if r.LowClosed != tt.lowClosed || r.HighClosed != tt.highClosed {
				t.Errorf("bounds = %v/%v, want %v/%v", r.LowClosed, r.HighClosed, tt.lowClosed, tt.highClosed)
			}
		})
	}
}

func TestParseGroupIsNotRange(t *testing.T) {
	expr := mustParse(t, "(1 + 2) * 3")
	mul, ok := expr.(*BinaryExpr)
	if !ok || mul.Op != OpMul {
		t.Fatalf("root = %T", expr)
	}
	if _, ok := mul.Left.(*BinaryExpr); !ok {
		t.Fatalf("group should unwrap to the inner expression, got %T", mul.Left)
	}
}

func TestParseListVersusIndexVersusFilter(t *testing.T) {
	expr := mustParse(t, "[1,2,3][2]")
	item, ok := expr.(*ListItemExpr)
	if !ok {
		t.Fatalf("got %T, want ListItemExpr", expr)
	}
	if item.Index != 2 {
		t.Errorf("index = %d", item.Index)
	}

	expr = mustParse(t, "[1,2,3][-1]")
	item, ok = expr.(*ListItemExpr)
	if !ok {
		t.Fatalf("got %T, want ListItemExpr", expr)
	}
	if item.Index != -1 {
		t.Errorf("index = %d", item.Index)
	}

	expr = mustParse(t, "[1,2,3][item > 2]")
	if _, ok := expr.(*ListFilterExpr); !ok {
		t.Fatalf("got %T, want ListFilterExpr", expr)
	}
}

func TestParseContextLiteral(t *testing.T) {
	expr := mustParse(t, `{a: 1, "b c": 2}`)
	ctx, ok := expr.(*ContextExpr)
	if !ok {
		t.Fatalf("got %T, want ContextExpr", expr)
	}
	if len(ctx.Pairs) != 2 || ctx.Pairs[0].Key != "a" || ctx.Pairs[1].Key != "b c" {
		t.Errorf("pairs = %+v", ctx.Pairs)
	}
}

func TestParseDottedPath(t *testing.T) {
	expr := mustParse(t, "{a: {c: 3}}.a.c")
	path, ok := expr.(*ContextItemExpr)
	if !ok {
		t.Fatalf("got %T, want ContextItemExpr", expr)
	}
	if len(path.Keys) != 2 || path.Keys[0] != "a" || path.Keys[1] != "c" {
		t.Errorf("keys = %v", path.Keys)
	}
}

func TestParseQuantifier(t *testing.T) {
	expr := mustParse(t, "every x in [1,2], y in [3,4] satisfies x < y")
	ev, ok := expr.(*ListEveryExpr)
	if !ok {
		t.Fatalf("got %T, want ListEveryExpr", expr)
	}
	if len(ev.Pairs) != 2 || ev.Pairs[0].Name != "x" || ev.Pairs[1].Name != "y" {
		t.Errorf("pairs = %+v", ev.Pairs)
	}

	expr = mustParse(t, "some x in xs satisfies x > 2")
	if _, ok := expr.(*ListSomeExpr); !ok {
		t.Fatalf("got %T, want ListSomeExpr", expr)
	}
}

func TestParseBuiltinForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`date("2017-03-10")`, "*parser.DateLit"},
		{`time("00:00:00")`, "*parser.TimeLit"},
		{`date and time("2017-03-10T00:00:00")`, "*parser.DateTimeLit"},
		{`now()`, "*parser.NowExpr"},
		{`today()`, "*parser.TodayExpr"},
		{`day of week(d)`, "*parser.DayOfWeekExpr"},
		{`month of year(d)`, "*parser.MonthOfYearExpr"},
		{`string(1)`, "*parser.ToStringExpr"},
		{`not(true)`, "*parser.NotExpr"},
		{`contains("a", "b")`, "*parser.StringOpExpr"},
		{`starts with("a", "b")`, "*parser.StringOpExpr"},
		{`ends with("a", "b")`, "*parser.StringOpExpr"},
		{`matches("a", "b")`, "*parser.StringOpExpr"},
		{`list contains([1], 1)`, "*parser.ListOpExpr"},
		{`count([1])`, "*parser.ListOpExpr"},
		{`all([true])`, "*parser.ListOpExpr"},
		{`any([true])`, "*parser.ListOpExpr"},
		{`before(1, 2)`, "*parser.BeforeExpr"},
		{`after(1, 2)`, "*parser.AfterExpr"},
		{`includes([1..2], 1)`, "*parser.IncludesExpr"},
		{`get or else(null, 1)`, "*parser.GetOrElseExpr"},
		{`is defined(x)`, "*parser.IsDefinedExpr"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := mustParse(t, tt.input)
			got := fmt.Sprintf("%T", expr)
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTemporalZoneSplitting(t *testing.T) {
	expr := mustParse(t, `time("00:00:00+08:00")`)
	lit := expr.(*TimeLit)
	if lit.Literal != "00:00:00" {
		t.Errorf("clock part = %q", lit.Literal)
	}
	if lit.TZ == nil || lit.TZ.Kind != TZOffset || lit.TZ.Value != "+08:00" {
		t.Errorf("tz = %+v", lit.TZ)
	}

	expr = mustParse(t, `time("00:00:00@America/Los_Angeles")`)
	lit = expr.(*TimeLit)
	if lit.TZ == nil || lit.TZ.Kind != TZName || lit.TZ.Value != "America/Los_Angeles" {
		t.Errorf("tz = %+v", lit.TZ)
	}

	expr = mustParse(t, `time("00:00:00Z")`)
	lit = expr.(*TimeLit)
	if lit.TZ == nil || lit.TZ.Kind != TZName || lit.TZ.Value != "UTC" {
		t.Errorf("tz = %+v", lit.TZ)
	}

	expr = mustParse(t, `date and time("2017-03-10T00:00:00 +08:00")`)
	dt := expr.(*DateTimeLit)
	if dt.Date.Literal != "2017-03-10" || dt.Time.Literal != "00:00:00" {
		t.Errorf("parts = %q / %q", dt.Date.Literal, dt.Time.Literal)
	}
	if dt.Time.TZ == nil || dt.Time.TZ.Value != "+08:00" {
		t.Errorf("tz = %+v", dt.Time.TZ)
	}
}

func TestParseCallPathways(t *testing.T) {
	expr := mustParse(t, "f(1, 2)")
	call, ok := expr.(*FunctionCallExpr)
	if !ok {
		t.Fatalf("single-word call = %T, want FunctionCallExpr", expr)
	}
	if call.Name != "f" || len(call.Args) != 2 {
		t.Errorf("call = %+v", call)
	}

	expr = mustParse(t, "hello world with params(1, 2)")
	inv, ok := expr.(*FuncInvocationExpr)
	if !ok {
		t.Fatalf("multi-word call = %T, want FuncInvocationExpr", expr)
	}
	if inv.Name != "hello world with params" || len(inv.Args) != 2 {
		t.Errorf("invocation = %+v", inv)
	}

	expr = mustParse(t, "hello world with params(a:1, b:2)")
	inv = expr.(*FuncInvocationExpr)
	if len(inv.NamedArgs) != 2 || inv.NamedArgs[0].Name != "a" || inv.NamedArgs[1].Name != "b" {
		t.Errorf("named args = %+v", inv.NamedArgs)
	}
	if len(inv.Args) != 0 {
		t.Errorf("positional args should be empty, got %d", len(inv.Args))
	}
}

func TestParseVariable(t *testing.T) {
	expr := mustParse(t, "rate")
	v, ok := expr.(*VariableExpr)
	if !ok || v.Name != "rate" {
		t.Fatalf("got %T %+v", expr, expr)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"1 +",
		"[1, 2",
		"{a: }",
		"some x in satisfies true",
		"1 ? 2",
		"date and time(42)",
		"count(1, 2)",
		"1 2",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should fail", input)
			}
		})
	}
}
