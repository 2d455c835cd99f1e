package calc

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// CoulombConstant is k in Coulomb's law, in N·m²/C².
const CoulombConstant = 9e9

// functions available to formula expressions
var functions = map[string]govaluate.ExpressionFunction{
	"abs": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs expects 1 argument, got %d", len(args))
		}
		f, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("abs expects a number, got %T", args[0])
		}
		return math.Abs(f), nil
	},
}

// formula is a compiled expression tagged with the kind of quantity it yields.
type formula struct {
	kind       Kind
	expression *govaluate.EvaluableExpression
}

func mustCompile(kind Kind, expression string) formula {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
	if err != nil {
		panic(fmt.Sprintf("calc: compile %q: %v", expression, err))
	}
	return formula{kind: kind, expression: expr}
}

var (
	forceFormula   = mustCompile(KindForce, "mass * acceleration")
	energyFormula  = mustCompile(KindEnergy, "0.5 * mass * velocity ** 2")
	currentFormula = mustCompile(KindCurrent, "voltage / resistance")
	coulombFormula = mustCompile(KindForce, "k * abs(q1 * q2) / distance ** 2")
)

// evaluate runs the formula with the given parameters.
func (f formula) evaluate(params map[string]interface{}) (Result, error) {
	out, err := f.expression.Evaluate(params)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate %s: %w", f.expression.String(), err)
	}

	value, ok := out.(float64)
	if !ok {
		return Result{}, fmt.Errorf("evaluate %s: unexpected result type %T", f.expression.String(), out)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Result{}, fmt.Errorf("evaluate %s: %w", f.expression.String(), ErrNonFiniteResult)
	}

	return Result{Value: value, Kind: f.kind}, nil
}
