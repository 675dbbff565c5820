package eval

import (
	"strings"

	"feel/parser"
	"feel/types"
)

// evalRange builds a range value; the bound kinds come straight from
// the syntax. Low ≤ High is not checked here — a reversed range just
// contains nothing.
func (e *Evaluator) evalRange(node *parser.RangeExpr, env *Environment) (types.Value, error) {
	low, err := e.Eval(node.Low, env)
	if err != nil {
		return nil, err
	}
	high, err := e.Eval(node.High, env)
	if err != nil {
		return nil, err
	}
	return types.NewRange(low, high, node.LowClosed, node.HighClosed), nil
}

// evalBetween checks low ≤ value ≤ high
func (e *Evaluator) evalBetween(node *parser.BetweenExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	low, err := e.Eval(node.Low, env)
	if err != nil {
		return nil, err
	}
	high, err := e.Eval(node.High, env)
	if err != nil {
		return nil, err
	}

	cmpLow, err := compareValues(low, val)
	if err != nil {
		return nil, err
	}
	if cmpLow > 0 {
		return types.NewBool(false), nil
	}
	cmpHigh, err := compareValues(val, high)
	if err != nil {
		return nil, err
	}
	return types.NewBool(cmpHigh <= 0), nil
}

// evalIn tests membership: endpoint comparison for ranges, deep
// membership for lists, substring for strings
func (e *Evaluator) evalIn(node *parser.InExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	target, err := e.Eval(node.Target, env)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case types.RangeValue:
		ok, err := rangeIncludesPoint(t, val)
		if err != nil {
			return nil, err
		}
		return types.NewBool(ok), nil
	case types.ListValue:
		return types.NewBool(t.Contains(val)), nil
	case types.StrValue:
		s, ok := val.(types.StrValue)
		if !ok {
			return nil, types.NewEvaluationError("in over a string needs a string, got %s", val.Type())
		}
		return types.NewBool(strings.Contains(t.Value(), s.Value())), nil
	}
	return nil, types.NewEvaluationError("in expects a range, list or string, got %s", target.Type())
}

// rangeIncludesPoint checks a point against a range honoring the bound
// kinds
func rangeIncludesPoint(r types.RangeValue, val types.Value) (bool, error) {
	cmpLow, err := compareValues(val, r.Low)
	if err != nil {
		return false, err
	}
	if r.LowClosed {
		if cmpLow < 0 {
			return false, nil
		}
	} else if cmpLow <= 0 {
		return false, nil
	}

	cmpHigh, err := compareValues(val, r.High)
	if err != nil {
		return false, err
	}
	if r.HighClosed {
		return cmpHigh <= 0, nil
	}
	return cmpHigh < 0, nil
}

// evalBefore orders two points, ranges or a mix. A closed range end
// meeting a point keeps the comparison strict; an open end relaxes it
// to allow touching.
func (e *Evaluator) evalBefore(node *parser.BeforeExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	allowTouch := false
	if r, ok := left.(types.RangeValue); ok {
		if !r.HighClosed {
			allowTouch = true
		}
		left = r.High
	}
	if r, ok := right.(types.RangeValue); ok {
		if !r.LowClosed {
			allowTouch = true
		}
		right = r.Low
	}

	cmp, err := compareValues(left, right)
	if err != nil {
		return nil, err
	}
	if allowTouch {
		return types.NewBool(cmp <= 0), nil
	}
	return types.NewBool(cmp < 0), nil
}

// evalAfter is the mirror of before
func (e *Evaluator) evalAfter(node *parser.AfterExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	allowTouch := false
	if r, ok := left.(types.RangeValue); ok {
		if !r.LowClosed {
			allowTouch = true
		}
		left = r.Low
	}
	if r, ok := right.(types.RangeValue); ok {
		if !r.HighClosed {
			allowTouch = true
		}
		right = r.High
	}

	cmp, err := compareValues(left, right)
	if err != nil {
		return nil, err
	}
	if allowTouch {
		return types.NewBool(cmp >= 0), nil
	}
	return types.NewBool(cmp > 0), nil
}

// evalIncludes checks set containment of a point or a range inside a
// range. Where the outer bound is open and the inner closed, the
// containment must be strict at that end.
func (e *Evaluator) evalIncludes(node *parser.IncludesExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	outer, ok := left.(types.RangeValue)
	if !ok {
		return nil, types.NewEvaluationError("includes expects a range, got %s", left.Type())
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	if inner, ok := right.(types.RangeValue); ok {
		cmpLow, err := compareValues(outer.Low, inner.Low)
		if err != nil {
			return nil, err
		}
		lowOK := cmpLow <= 0
		if !outer.LowClosed && inner.LowClosed {
			lowOK = cmpLow < 0
		}

		cmpHigh, err := compareValues(outer.High, inner.High)
		if err != nil {
			return nil, err
		}
		highOK := cmpHigh >= 0
		if !outer.HighClosed && inner.HighClosed {
			highOK = cmpHigh > 0
		}
		return types.NewBool(lowOK && highOK), nil
	}

	cmpLow, err := compareValues(outer.Low, right)
	if err != nil {
		return nil, err
	}
	lowOK := cmpLow <= 0
	if !outer.LowClosed {
		lowOK = cmpLow < 0
	}

	cmpHigh, err := compareValues(outer.High, right)
	if err != nil {
		return nil, err
	}
	highOK := cmpHigh >= 0
	if !outer.HighClosed {
		highOK = cmpHigh > 0
	}
	return types.NewBool(lowOK && highOK), nil
}
