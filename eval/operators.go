package eval

import (
	"math"
	"regexp"
	"strings"

	"feel/parser"
	"feel/types"
)

// evalBinary evaluates a same-type binary operation: both operands must
// share a type, then the operation dispatches on it
func (e *Evaluator) evalBinary(node *parser.BinaryExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}
	if err := validateSameType(left, right, types.TYPE_ANY); err != nil {
		return nil, err
	}

	switch node.Op {
	case parser.OpAdd:
		return evalAdd(left, right)
	case parser.OpSub:
		return evalArith(node.Op, left, right)
	case parser.OpMul:
		return evalArith(node.Op, left, right)
	case parser.OpDiv:
		return evalDivide(left, right)
	case parser.OpPow:
		return evalPower(left, right)
	case parser.OpEq:
		return types.NewBool(left.Equal(right)), nil
	case parser.OpLt, parser.OpGt, parser.OpLe, parser.OpGe:
		cmp, err := compareValues(left, right)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case parser.OpLt:
			return types.NewBool(cmp < 0), nil
		case parser.OpGt:
			return types.NewBool(cmp > 0), nil
		case parser.OpLe:
			return types.NewBool(cmp <= 0), nil
		default:
			return types.NewBool(cmp >= 0), nil
		}
	}
	return nil, types.NewEvaluationError("unknown binary operation %s", node.Op)
}

// evalNotEqual compares without operand type validation
func (e *Evaluator) evalNotEqual(node *parser.NotEqualExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}
	return types.NewBool(!left.Equal(right)), nil
}

// evalAdd adds numbers and concatenates strings and lists
func evalAdd(left, right types.Value) (types.Value, error) {
	switch l := left.(type) {
	case types.NumberValue:
		r := right.(types.NumberValue)
		if l.IsInt() && r.IsInt() {
			return types.NewInt(l.Int() + r.Int()), nil
		}
		return types.NewFloat(l.Float() + r.Float()), nil
	case types.StrValue:
		r := right.(types.StrValue)
		return types.NewStr(l.Value() + r.Value()), nil
	case types.ListValue:
		r := right.(types.ListValue)
		elems := make([]types.Value, 0, l.Len()+r.Len())
		elems = append(elems, l.Elements()...)
		elems = append(elems, r.Elements()...)
		return types.NewList(elems...), nil
	}
	return nil, types.NewEvaluationError("unsupported operand type %s for +", left.Type())
}

// evalArith handles - and *, defined for numbers only
func evalArith(op parser.BinaryOp, left, right types.Value) (types.Value, error) {
	l, ok := left.(types.NumberValue)
	if !ok {
		return nil, types.NewEvaluationError("unsupported operand type %s for %s", left.Type(), op)
	}
	r := right.(types.NumberValue)
	if l.IsInt() && r.IsInt() {
		if op == parser.OpSub {
			return types.NewInt(l.Int() - r.Int()), nil
		}
		return types.NewInt(l.Int() * r.Int()), nil
	}
	if op == parser.OpSub {
		return types.NewFloat(l.Float() - r.Float()), nil
	}
	return types.NewFloat(l.Float() * r.Float()), nil
}

// evalDivide divides numbers; the result stays integral only when the
// division is exact. Division by zero is an evaluation error.
func evalDivide(left, right types.Value) (types.Value, error) {
	l, ok := left.(types.NumberValue)
	if !ok {
		return nil, types.NewEvaluationError("unsupported operand type %s for /", left.Type())
	}
	r := right.(types.NumberValue)
	if r.Float() == 0 {
		return nil, types.NewEvaluationError("division by zero")
	}
	if l.IsInt() && r.IsInt() && l.Int()%r.Int() == 0 {
		return types.NewInt(l.Int() / r.Int()), nil
	}
	return types.NewFloat(l.Float() / r.Float()), nil
}

// evalPower raises numbers; an integral base with a non-negative
// integral exponent stays integral
func evalPower(left, right types.Value) (types.Value, error) {
	l, ok := left.(types.NumberValue)
	if !ok {
		return nil, types.NewEvaluationError("unsupported operand type %s for **", left.Type())
	}
	r := right.(types.NumberValue)
	if l.IsInt() && r.IsInt() && r.Int() >= 0 {
		result := int64(1)
		base, exp := l.Int(), r.Int()
		for i := int64(0); i < exp; i++ {
			result *= base
		}
		return types.NewInt(result), nil
	}
	return types.NewFloat(math.Pow(l.Float(), r.Float())), nil
}

// compareValues orders two values of the same comparable type:
// -1, 0 or 1
func compareValues(left, right types.Value) (int, error) {
	switch l := left.(type) {
	case types.NumberValue:
		if r, ok := right.(types.NumberValue); ok {
			return l.Cmp(r), nil
		}
	case types.StrValue:
		if r, ok := right.(types.StrValue); ok {
			return strings.Compare(l.Value(), r.Value()), nil
		}
	case types.DateValue:
		if r, ok := right.(types.DateValue); ok {
			return l.Cmp(r), nil
		}
	case types.TimeValue:
		if r, ok := right.(types.TimeValue); ok {
			return l.Cmp(r), nil
		}
	case types.DateTimeValue:
		if r, ok := right.(types.DateTimeValue); ok {
			return l.Cmp(r), nil
		}
	}
	return 0, types.NewEvaluationError("cannot order %s and %s", left.Type(), right.Type())
}

// evalStringOp evaluates the string predicates; both operands must be
// strings
func (e *Evaluator) evalStringOp(node *parser.StringOpExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}
	if err := validateSameType(left, right, types.TYPE_STR); err != nil {
		return nil, err
	}
	l := left.(types.StrValue).Value()
	r := right.(types.StrValue).Value()

	switch node.Op {
	case parser.StrContains:
		return types.NewBool(strings.Contains(l, r)), nil
	case parser.StrStartsWith:
		return types.NewBool(strings.HasPrefix(l, r)), nil
	case parser.StrEndsWith:
		return types.NewBool(strings.HasSuffix(l, r)), nil
	case parser.StrMatches:
		// anchored at the start only, like a prefix match
		re, err := regexp.Compile("^(?:" + r + ")")
		if err != nil {
			return nil, types.NewEvaluationError("invalid pattern %q: %s", r, err.Error())
		}
		return types.NewBool(re.MatchString(l)), nil
	}
	return nil, types.NewEvaluationError("unknown string operation %s", node.Op)
}

// evalListOp evaluates the list aggregates
func (e *Evaluator) evalListOp(node *parser.ListOpExpr, env *Environment) (types.Value, error) {
	first, err := e.Eval(node.Args[0], env)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case parser.ListContains:
		item, err := e.Eval(node.Args[1], env)
		if err != nil {
			return nil, err
		}
		switch l := first.(type) {
		case types.ListValue:
			return types.NewBool(l.Contains(item)), nil
		case types.StrValue:
			if s, ok := item.(types.StrValue); ok {
				return types.NewBool(strings.Contains(l.Value(), s.Value())), nil
			}
		}
		return nil, types.NewEvaluationError("list contains expects a list, got %s", first.Type())

	case parser.ListCount:
		switch l := first.(type) {
		case types.ListValue:
			return types.NewInt(int64(l.Len())), nil
		case types.StrValue:
			return types.NewInt(int64(len(l.Value()))), nil
		case *types.ContextValue:
			return types.NewInt(int64(l.Len())), nil
		}
		return nil, types.NewEvaluationError("count expects a list, got %s", first.Type())

	case parser.ListAll:
		l, ok := first.(types.ListValue)
		if !ok {
			return nil, types.NewEvaluationError("all expects a list, got %s", first.Type())
		}
		for _, elem := range l.Elements() {
			if !elem.Truthy() {
				return types.NewBool(false), nil
			}
		}
		return types.NewBool(true), nil

	case parser.ListAny:
		l, ok := first.(types.ListValue)
		if !ok {
			return nil, types.NewEvaluationError("any expects a list, got %s", first.Type())
		}
		for _, elem := range l.Elements() {
			if elem.Truthy() {
				return types.NewBool(true), nil
			}
		}
		return types.NewBool(false), nil
	}
	return nil, types.NewEvaluationError("unknown list operation %s", node.Op)
}
