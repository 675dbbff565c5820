// Package eval interprets FEEL expression trees against an evaluation
// environment. Apart from now() and today(), which read the system
// clock, evaluation is a pure function of the tree and the environment;
// the only other process state it reads is the function registry.
package eval

import (
	"log"

	"feel/functions"
	"feel/parser"
	"feel/types"
)

// Evaluator walks the AST and computes values
type Evaluator struct {
	funcs *functions.Registry
}

// NewEvaluator creates an evaluator backed by the default function
// registry
func NewEvaluator() *Evaluator {
	return &Evaluator{funcs: functions.Default()}
}

// NewEvaluatorWithRegistry creates an evaluator with an explicit
// registry
func NewEvaluatorWithRegistry(r *functions.Registry) *Evaluator {
	return &Evaluator{funcs: r}
}

// Eval evaluates an expression node and returns its value. Errors are
// typed *types.Error values; they bubble to the caller except where a
// node's contract swallows them (list filters, is defined).
func (e *Evaluator) Eval(node parser.Expr, env *Environment) (types.Value, error) {
	switch n := node.(type) {
	case *parser.NullLit:
		return types.Null, nil
	case *parser.NumberLit:
		return n.Value, nil
	case *parser.StringLit:
		return types.NewStr(n.Value), nil
	case *parser.BoolLit:
		return types.NewBool(n.Value), nil
	case *parser.ListExpr:
		return e.evalList(n, env)
	case *parser.ContextExpr:
		return e.evalContext(n, env)
	case *parser.VariableExpr:
		return e.evalVariable(n, env)
	case *parser.ContextItemExpr:
		return e.evalContextItem(n, env)
	case *parser.ListItemExpr:
		return e.evalListItem(n, env)
	case *parser.ListFilterExpr:
		return e.evalListFilter(n, env)
	case *parser.ListEveryExpr:
		return e.evalQuantifier(n.Pairs, n.Satisfies, env, true)
	case *parser.ListSomeExpr:
		return e.evalQuantifier(n.Pairs, n.Satisfies, env, false)
	case *parser.BinaryExpr:
		return e.evalBinary(n, env)
	case *parser.NotEqualExpr:
		return e.evalNotEqual(n, env)
	case *parser.AndExpr:
		return e.evalAnd(n, env)
	case *parser.OrExpr:
		return e.evalOr(n, env)
	case *parser.NotExpr:
		return e.evalNot(n, env)
	case *parser.BetweenExpr:
		return e.evalBetween(n, env)
	case *parser.RangeExpr:
		return e.evalRange(n, env)
	case *parser.InExpr:
		return e.evalIn(n, env)
	case *parser.DateLit:
		return e.evalDateLit(n)
	case *parser.TimeLit:
		return e.evalTimeLit(n)
	case *parser.DateTimeLit:
		return e.evalDateTimeLit(n)
	case *parser.NowExpr:
		return e.evalNow(n)
	case *parser.TodayExpr:
		return e.evalToday(n)
	case *parser.DayOfWeekExpr:
		return e.evalDayOfWeek(n, env)
	case *parser.MonthOfYearExpr:
		return e.evalMonthOfYear(n, env)
	case *parser.BeforeExpr:
		return e.evalBefore(n, env)
	case *parser.AfterExpr:
		return e.evalAfter(n, env)
	case *parser.IncludesExpr:
		return e.evalIncludes(n, env)
	case *parser.StringOpExpr:
		return e.evalStringOp(n, env)
	case *parser.ListOpExpr:
		return e.evalListOp(n, env)
	case *parser.GetOrElseExpr:
		return e.evalGetOrElse(n, env)
	case *parser.IsDefinedExpr:
		return e.evalIsDefined(n, env)
	case *parser.ToStringExpr:
		return e.evalToString(n, env)
	case *parser.FunctionCallExpr:
		return e.evalFunctionCall(n, env)
	case *parser.FuncInvocationExpr:
		return e.evalFuncInvocation(n, env)
	default:
		// unreachable if the parser is correct
		return nil, types.NewEvaluationError("unknown AST node %T", node)
	}
}

// evalVariable looks a name up in the environment; a missing name
// yields null, not an error
func (e *Evaluator) evalVariable(node *parser.VariableExpr, env *Environment) (types.Value, error) {
	val, ok := env.Get(node.Name)
	if !ok {
		return types.Null, nil
	}
	return val, nil
}

// evalList evaluates list items left to right
func (e *Evaluator) evalList(node *parser.ListExpr, env *Environment) (types.Value, error) {
	elems := make([]types.Value, len(node.Items))
	for i, item := range node.Items {
		val, err := e.Eval(item, env)
		if err != nil {
			return nil, err
		}
		elems[i] = val
	}
	return types.NewList(elems...), nil
}

// evalContext builds a context value; a repeated key overwrites the
// earlier entry
func (e *Evaluator) evalContext(node *parser.ContextExpr, env *Environment) (types.Value, error) {
	ctx := types.NewContext()
	for _, pair := range node.Pairs {
		val, err := e.Eval(pair.Value, env)
		if err != nil {
			return nil, err
		}
		ctx.Set(pair.Key, val)
	}
	return ctx, nil
}

// evalContextItem walks a dotted key path; any non-context intermediate
// yields null
func (e *Evaluator) evalContextItem(node *parser.ContextItemExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Expr, env)
	if err != nil {
		return nil, err
	}
	for _, key := range node.Keys {
		ctx, ok := val.(*types.ContextValue)
		if !ok {
			return types.Null, nil
		}
		entry, ok := ctx.Get(key)
		if !ok {
			return types.Null, nil
		}
		val = entry
	}
	return val, nil
}

// evalListItem accesses a list element by 1-based index; negative
// indexes count from the end. Index zero, an out-of-range index or a
// non-list operand all yield null.
func (e *Evaluator) evalListItem(node *parser.ListItemExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.List, env)
	if err != nil {
		return nil, err
	}
	list, ok := val.(types.ListValue)
	if !ok {
		return types.Null, nil
	}
	idx := node.Index
	n := int64(list.Len())
	if idx == 0 || idx > n || -idx > n {
		return types.Null, nil
	}
	if idx > 0 {
		return list.Elements()[idx-1], nil
	}
	return list.Elements()[n+idx], nil
}

// evalListFilter keeps the elements whose predicate is truthy. The
// predicate sees only the element: a context element exposes its own
// keys, any other element is bound as `item`. A predicate error drops
// the element.
func (e *Evaluator) evalListFilter(node *parser.ListFilterExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.List, env)
	if err != nil {
		return nil, err
	}
	list, ok := val.(types.ListValue)
	if !ok {
		return types.Null, nil
	}

	var result []types.Value
	for _, elem := range list.Elements() {
		sub := NewEnvironment()
		if ctx, ok := elem.(*types.ContextValue); ok {
			for _, k := range ctx.Keys() {
				v, _ := ctx.Get(k)
				sub.Set(k, v)
			}
		} else {
			sub.Set("item", elem)
		}

		pred, err := e.Eval(node.Predicate, sub)
		if err != nil {
			log.Printf("filter predicate failed, dropping element: %v", err)
			continue
		}
		if pred.Truthy() {
			result = append(result, elem)
		}
	}
	return types.NewList(result...), nil
}

// evalQuantifier runs every/some over parallel lists. All bound lists
// must have the same length. The predicate result is compared against
// the boolean literally: only false fails `every`, only true satisfies
// `some`.
func (e *Evaluator) evalQuantifier(pairs []parser.IterPair, satisfies parser.Expr, env *Environment, every bool) (types.Value, error) {
	lists := make([]types.ListValue, len(pairs))
	for i, pair := range pairs {
		val, err := e.Eval(pair.List, env)
		if err != nil {
			return nil, err
		}
		list, ok := val.(types.ListValue)
		if !ok {
			return nil, types.NewEvaluationError("quantifier binding %q is not a list", pair.Name)
		}
		lists[i] = list
	}
	if err := validateListsLength(lists); err != nil {
		return nil, err
	}

	n := 0
	if len(lists) > 0 {
		n = lists[0].Len()
	}
	for i := 0; i < n; i++ {
		sub := NewNestedEnvironment(env)
		for j, pair := range pairs {
			sub.Set(pair.Name, lists[j].Elements()[i])
		}
		pred, err := e.Eval(satisfies, sub)
		if err != nil {
			return nil, err
		}
		if every && types.IsFalse(pred) {
			return types.NewBool(false), nil
		}
		if !every && types.IsTrue(pred) {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(every), nil
}

// evalAnd short-circuits on a falsy left operand; the deciding operand
// is returned as-is
func (e *Evaluator) evalAnd(node *parser.AndExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	if !left.Truthy() {
		return left, nil
	}
	return e.Eval(node.Right, env)
}

// evalOr short-circuits on a truthy left operand
func (e *Evaluator) evalOr(node *parser.OrExpr, env *Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	if left.Truthy() {
		return left, nil
	}
	return e.Eval(node.Right, env)
}

// evalNot returns the negated truthiness of its operand; not(null) is
// true
func (e *Evaluator) evalNot(node *parser.NotExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Expr, env)
	if err != nil {
		return nil, err
	}
	return types.NewBool(!val.Truthy()), nil
}

// evalGetOrElse returns the value unless it is null, then the default
func (e *Evaluator) evalGetOrElse(node *parser.GetOrElseExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	def, err := e.Eval(node.Default, env)
	if err != nil {
		return nil, err
	}
	if types.IsNull(val) {
		return def, nil
	}
	return val, nil
}

// evalIsDefined reports whether the operand evaluates to a non-null
// value; evaluation errors count as undefined
func (e *Evaluator) evalIsDefined(node *parser.IsDefinedExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Expr, env)
	if err != nil {
		log.Printf("is defined operand failed, treating as undefined: %v", err)
		return types.NewBool(false), nil
	}
	return types.NewBool(!types.IsNull(val)), nil
}

// evalToString converts the operand to its canonical textual form
func (e *Evaluator) evalToString(node *parser.ToStringExpr, env *Environment) (types.Value, error) {
	val, err := e.Eval(node.Expr, env)
	if err != nil {
		return nil, err
	}
	return types.NewStr(val.String()), nil
}

// evalFunctionCall resolves a single-word call against the evaluation
// context; a missing or non-callable binding is an error
func (e *Evaluator) evalFunctionCall(node *parser.FunctionCallExpr, env *Environment) (types.Value, error) {
	bound, ok := env.Get(node.Name)
	if !ok || types.IsNull(bound) {
		return nil, types.NewUnknownFunctionError(node.Name)
	}
	fn, ok := bound.(types.FuncValue)
	if !ok {
		return nil, types.NewEvaluationError("%s is not callable, got %s", node.Name, bound.Type())
	}

	args := make([]types.Value, len(node.Args))
	for i, argExpr := range node.Args {
		arg, err := e.Eval(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return fn.Fn(args)
}

// evalFuncInvocation resolves a call against the function registry. A
// failed resolution yields null; validation failures from the
// definition's input schema propagate.
func (e *Evaluator) evalFuncInvocation(node *parser.FuncInvocationExpr, env *Environment) (types.Value, error) {
	def, ok := e.funcs.Get(node.Name)
	if !ok {
		log.Printf("func object %s not found", node.Name)
		return types.Null, nil
	}

	if len(node.NamedArgs) > 0 {
		named := make(map[string]types.Value, len(node.NamedArgs))
		for _, arg := range node.NamedArgs {
			val, err := e.Eval(arg.Value, env)
			if err != nil {
				return nil, err
			}
			named[arg.Name] = val
		}
		return def.Invoke(nil, named)
	}

	args := make([]types.Value, len(node.Args))
	for i, argExpr := range node.Args {
		val, err := e.Eval(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return def.Invoke(args, nil)
}
