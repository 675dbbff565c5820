// Package feel evaluates expressions written in the Friendly Enough
// Expression Language against a context mapping. The pipeline is
// text → tokens → expression tree → value; evaluation is side-effect
// free and an expression tree may be reused across evaluations.
package feel

import (
	"log"

	"feel/eval"
	"feel/parser"
	"feel/types"
)

// Parse parses an expression into a reusable tree without evaluating
// it. Hosts that run the same expression against many contexts parse
// once and evaluate with EvaluateExpr.
func Parse(expression string) (parser.Expr, error) {
	return parser.Parse(expression)
}

// Evaluate parses and evaluates an expression. Context entries are
// plain Go values converted with types.ValueOf. Failures are returned
// as *types.Error values.
func Evaluate(expression string, context map[string]any) (types.Value, error) {
	vals := make(map[string]types.Value, len(context))
	for name, v := range context {
		vals[name] = types.ValueOf(v)
	}
	return EvaluateValues(expression, vals)
}

// EvaluateValues is Evaluate for hosts that already hold FEEL values
func EvaluateValues(expression string, context map[string]types.Value) (types.Value, error) {
	ast, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	return EvaluateExpr(ast, context)
}

// EvaluateExpr evaluates an already-parsed expression tree
func EvaluateExpr(ast parser.Expr, context map[string]types.Value) (types.Value, error) {
	ev := eval.NewEvaluator()
	return ev.Eval(ast, eval.NewEnvironmentFrom(context))
}

// EvaluateOrNull evaluates an expression and maps every failure to
// null. The error is logged; callers that need the failure use
// Evaluate.
func EvaluateOrNull(expression string, context map[string]any) types.Value {
	result, err := Evaluate(expression, context)
	if err != nil {
		log.Printf("evaluate expression error: %v", err)
		return types.Null
	}
	return result
}
