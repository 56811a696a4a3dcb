package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
	"github.com/kvsql/kvsql/types/evaluator"
)

// Unary is the ScalarExpression::Unary variant. Eval is a no-op until
// BindEvaluator has attached an evaluator.UnaryEvaluator matching the
// operand's logical type — evaluating an unbound Unary is an invariant
// violation, same as an unresolved ColumnRef.
type Unary struct {
	Op   types.UnaryOp
	Expr sql.Expression
	eval evaluator.UnaryEvaluator
}

func NewUnary(op types.UnaryOp, expr sql.Expression) *Unary {
	return &Unary{Op: op, Expr: expr}
}

func NewNot(expr sql.Expression) *Unary { return NewUnary(types.UnaryNot, expr) }

func (u *Unary) Type() types.LogicalType {
	if u.Op == types.UnaryNot {
		return types.Boolean
	}
	return u.Expr.Type()
}

func (u *Unary) Nullable() bool             { return u.Expr.Nullable() }
func (u *Unary) Children() []sql.Expression { return []sql.Expression{u.Expr} }

func (u *Unary) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: Unary takes exactly one child")
	}
	return &Unary{Op: u.Op, Expr: children[0], eval: u.eval}, nil
}

// BindEvaluator attaches the evaluator that Eval will dispatch to; called by
// expression.BindEvaluator once the operand's type is final.
func (u *Unary) BindEvaluator(eval evaluator.UnaryEvaluator) *Unary {
	return &Unary{Op: u.Op, Expr: u.Expr, eval: eval}
}

func (u *Unary) Evaluator() evaluator.UnaryEvaluator { return u.eval }

func (u *Unary) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if u.eval == nil {
		return nil, sql.ErrInvariantViolation.New("Unary expression evaluated before BindEvaluator ran")
	}
	v, err := u.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("unary operand did not evaluate to a types.Value")
	}
	out, err := u.eval.Eval(val)
	if err != nil {
		if err == evaluator.ErrOverflow {
			return nil, sql.ErrOverflow.New(u.String())
		}
		return nil, sql.ErrUnsupportedUnaryOp.New(u.Op.String(), val.Logical.String())
	}
	return out, nil
}

func (u *Unary) String() string {
	if u.Op == types.UnaryNot {
		return fmt.Sprintf("NOT %s", u.Expr.String())
	}
	return fmt.Sprintf("%s%s", u.Op.String(), u.Expr.String())
}
