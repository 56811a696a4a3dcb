package analyzer

import (
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/transform"
	"github.com/kvsql/kvsql/types"
	"github.com/kvsql/kvsql/types/evaluator"
)

// ConstantCalculation folds every unary/binary/cast/is-null node whose
// operands are all constant into a single expression.Literal, evaluated
// through the same evaluator factory BindEvaluator uses. It runs over
// every expression-bearing operator's expression list (filter predicates,
// join on-clauses, projections, aggregate group-by/agg-calls, sort keys).
type ConstantCalculation struct{}

func (ConstantCalculation) Name() string { return "ConstantCalculation" }

func (ConstantCalculation) Pattern() Pattern {
	return Pattern{
		OperatorOK: func(n sql.Node) bool {
			_, ok := n.(sql.Expressioner)
			return ok
		},
		Children: ChildrenPredicate{Kind: ChildrenNone},
	}
}

func (ConstantCalculation) Apply(ctx *sql.Context, g *HepGraph, id HepNodeID) (sql.Node, bool, error) {
	exprNode := g.Node(id).(sql.Expressioner)
	exprs := exprNode.Expressions()
	changed := false
	newExprs := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		folded, same, err := transform.Expr(e, foldConstant)
		if err != nil {
			return nil, false, err
		}
		newExprs[i] = folded
		if same == transform.NewTree {
			changed = true
		}
	}
	if !changed {
		return g.Node(id), false, nil
	}
	newNode, err := exprNode.WithExpressions(newExprs...)
	if err != nil {
		return nil, false, err
	}
	return newNode, true, nil
}

func foldConstant(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	switch v := e.(type) {
	case *expression.Unary:
		val, ok := expression.UnpackConstant(v.Expr)
		if !ok {
			return e, transform.Same, nil
		}
		eval, err := evaluator.UnaryCreate(val.Logical, v.Op)
		if err != nil {
			return e, transform.Same, nil
		}
		out, err := eval.Eval(val)
		if err != nil {
			return e, transform.Same, nil
		}
		return expression.NewLiteral(out), transform.NewTree, nil

	case *expression.Binary:
		lv, lok := expression.UnpackConstant(v.Left)
		rv, rok := expression.UnpackConstant(v.Right)
		if !lok || !rok {
			return e, transform.Same, nil
		}
		commonTy := types.MaxLogicalType(lv.Logical, rv.Logical)
		evalTy := commonTy
		if v.Op == types.And || v.Op == types.Or {
			evalTy = types.Boolean
		} else {
			var err error
			lv, err = types.Cast(lv, commonTy)
			if err != nil {
				return e, transform.Same, nil
			}
			rv, err = types.Cast(rv, commonTy)
			if err != nil {
				return e, transform.Same, nil
			}
		}
		var eval evaluator.BinaryEvaluator
		var err error
		if v.Op == types.Like {
			eval, err = evaluator.BinaryCreateWithEscape(evalTy, v.Op, v.Escape)
		} else {
			eval, err = evaluator.BinaryCreate(evalTy, v.Op)
		}
		if err != nil {
			return e, transform.Same, nil
		}
		out, err := eval.Eval(lv, rv)
		if err != nil {
			return e, transform.Same, nil
		}
		return expression.NewLiteral(out), transform.NewTree, nil

	case *expression.Cast:
		val, ok := expression.UnpackConstant(v.Expr)
		if !ok {
			return e, transform.Same, nil
		}
		out, err := types.Cast(val, v.Ty)
		if err != nil {
			return e, transform.Same, nil
		}
		return expression.NewLiteral(out), transform.NewTree, nil

	case *expression.IsNull:
		val, ok := expression.UnpackConstant(v.Expr)
		if !ok {
			return e, transform.Same, nil
		}
		result := val.IsNull()
		if v.Negated {
			result = !result
		}
		return expression.NewLiteral(types.NewBoolean(result)), transform.NewTree, nil

	default:
		return e, transform.Same, nil
	}
}
