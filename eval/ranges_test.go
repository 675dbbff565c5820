package eval

import (
	"testing"

	"feel/types"
)

func TestEvalInOverRangesAndLists(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"5 in [1,3,5,7]", true},
		{"4 in [1,3,5,7]", false},
		{"5 in [1..10]", true},
		{"3 in [1..3]", true},
		{"5 in [1..3]", false},
		{"1 in (1..3]", false},
		{"3 in [1..3)", false},
		{"2 in (1..3)", true},
		{"5 in (1..3]", false},
		{"1.2 in (-1.1..3.2)", true},
		{"1.2 in (-1.2..1.2)", false},
		{"-1.3 in (-1.2..1.2)", false},
		{"1.2 in (-1.1..1.2]", true},
		{"0 in [-1.1..100)", true},
		{"5 in [10..1]", false},
		{`"b" in "abc"`, true},
		{`"d" in "abc"`, false},
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

func TestEvalRangeConstruction(t *testing.T) {
	result := mustEval(t, "[1..10)", nil)
	r, ok := result.(types.RangeValue)
	if !ok {
		t.Fatalf("got %T", result)
	}
	if !r.LowClosed || r.HighClosed {
		t.Errorf("bounds = %v/%v", r.LowClosed, r.HighClosed)
	}
	if !r.Low.Equal(types.NewInt(1)) || !r.High.Equal(types.NewInt(10)) {
		t.Errorf("endpoints = %s, %s", r.Low.String(), r.High.String())
	}
}

func TestEvalRangeEndpointExpressions(t *testing.T) {
	vars := map[string]types.Value{"lo": types.NewInt(1), "hi": types.NewInt(10)}
	if got := mustEval(t, "5 in [lo..hi]", vars); !got.Equal(types.NewBool(true)) {
		t.Errorf("got %s", got.String())
	}
}

func TestEvalBefore(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"before(1,10)", true},
		{"before(10,1)", false},
		{"before([1..5],10)", true},
		{"before(1,[2..5])", true},
		{"before((1..5),5)", true},
		{"before([1..5],5)", false},
		{"before(2,(2..5])", true},
		{"before(2,[2..5])", false},
		{"before([1..5], [6..10])", true},
		{"before([1..5], [3..10])", false},
		{"before([1..5), [5..10])", true},
		{"before([1..5], [5..10])", false},
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

func TestEvalAfter(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"after(12, [2..5])", true},
		{"after([2..5], 12)", false},
		{"after([6..10], [1..5])", true},
		{"after([5..10], [1..5])", false},
		{"after((5..10], [1..5])", true},
		{"after(2, 1)", true},
		{"after(1, 2)", false},
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

func TestEvalIncludes(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"includes([5..10], 6)", true},
		{"includes([5..10], 5)", true},
		{"includes((5..10], 5)", false},
		{"includes([3..4], 5)", false},
		{"includes([1..10], [4..6])", true},
		{"includes([5..8], [1..5])", false},
		{"includes([1..10], (1..10))", true},
		{"includes([1..5), [1..5])", false},
		{"includes((1..5], (1..5])", true},
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

func TestEvalIncludesNeedsARange(t *testing.T) {
	_, err := evalExpr(t, "includes(1, 2)", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	kind, _ := types.KindOf(err)
	if kind != types.ErrEvaluation {
		t.Errorf("error = %v", err)
	}
}
