package eval

import (
	"testing"

	"feel/types"
)

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Value
	}{
		{"1 + 2", types.NewInt(3)},
		{"10 - 3", types.NewInt(7)},
		{"4 * 5", types.NewInt(20)},
		{"20 / 4", types.NewInt(5)},
		{"5 / 2", types.NewFloat(2.5)},
		{"2 ** 3", types.NewInt(8)},
		{"2 ** -1", types.NewFloat(0.5)},
		{"-5", types.NewInt(-5)},
		{"1 + 2 * 3", types.NewInt(7)},
		{"(1 + 2) * 3", types.NewInt(9)},
		{"1 + 2.5", types.NewFloat(3.5)},
		{"1.5 * 2", types.NewFloat(3.0)},
		{`"foo" + "bar"`, types.NewStr("foobar")},
		{"[1] + [2, 3]", types.NewList(types.NewInt(1), types.NewInt(2), types.NewInt(3))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input, nil)
			if !result.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.String(), result.String())
			}
		})
	}
}

func TestEvalArithmeticErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  types.ErrorKind
	}{
		{"1 / 0", types.ErrEvaluation},
		{"1.5 / 0", types.ErrEvaluation},
		{`1 + "a"`, types.ErrValidation},
		{`"a" - "b"`, types.ErrEvaluation},
		{"true + false", types.ErrEvaluation},
		{`1 < "a"`, types.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := evalExpr(t, tt.input, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			kind, ok := types.KindOf(err)
			if !ok || kind != tt.kind {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestEvalComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 = 1", true},
		{"1 = 2", false},
		{"1 = 1.0", true},
		{"1 != 1", false},
		{`1 != "a"`, true},
		{"2 > 1", true},
		{"2 < 1", false},
		{"1 >= 1", true},
		{"1 <= 1", true},
		{`"abc" < "abd"`, true},
		{`"a" = "a"`, true},
		{"[1,2] = [1,2]", true},
		{"[1,2] = [2,1]", false},
		{"{a: 1} = {a: 1}", true},
		{"null = null", true},
		{"5 between 3 and 7", true},
		{"2 between 3 and 7", false},
		{"8 between 3 and 7", false},
		{"3 between 3 and 7", true},
		{"7 between 3 and 7", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input, nil)
			if !result.Equal(types.NewBool(tt.expected)) {
				t.Errorf("expected %v, got %s", tt.expected, result.String())
			}
		})
	}
}

func TestEvalStringPredicates(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{`starts with("abc", "a")`, true},
		{`starts with("abc", "b")`, false},
		{`ends with("cba", "a")`, true},
		{`ends with("cba", "b")`, false},
		{`contains("abc", "b")`, true},
		{`contains("abc", "d")`, false},
		{`matches("foobar", "^fo*bar")`, true},
		{`matches("foobar", "o+bar")`, false},
		{`matches("foobar", "fo+")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input, nil)
			if !result.Equal(types.NewBool(tt.expected)) {
				t.Errorf("expected %v, got %s", tt.expected, result.String())
			}
		})
	}
}

func TestEvalMatchesBadPattern(t *testing.T) {
	_, err := evalExpr(t, `matches("x", "(")`, nil)
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
	kind, _ := types.KindOf(err)
	if kind != types.ErrEvaluation {
		t.Errorf("error = %v", err)
	}
}

func TestEvalListAggregates(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Value
	}{
		{"count([])", types.NewInt(0)},
		{"count([1,2,3,4])", types.NewInt(4)},
		{`count("abc")`, types.NewInt(3)},
		{"all([])", types.NewBool(true)},
		{"all([true, false])", types.NewBool(false)},
		{"all([1, 2])", types.NewBool(true)},
		{"all([1, 0])", types.NewBool(false)},
		{"any([])", types.NewBool(false)},
		{"any([false, true])", types.NewBool(true)},
		{"list contains([1, 2, 3], 2)", types.NewBool(true)},
		{"list contains([1, 2, 3], 5)", types.NewBool(false)},
		{`list contains(["a"], "a")`, types.NewBool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input, nil)
			if !result.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.String(), result.String())
			}
		})
	}
}

func TestEvalGetOrElse(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Value
	}{
		{`get or else(null, "abc")`, types.NewStr("abc")},
		{"get or else(0, 1)", types.NewInt(0)},
		{"get or else(null, null)", types.Null},
		{`get or else("", "x")`, types.NewStr("")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input, nil)
			if !result.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.String(), result.String())
			}
		})
	}
}
