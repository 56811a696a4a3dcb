package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Cast is the ScalarExpression::TypeCast variant.
type Cast struct {
	Expr sql.Expression
	Ty   types.LogicalType
}

func NewCast(expr sql.Expression, ty types.LogicalType) *Cast {
	return &Cast{Expr: expr, Ty: ty}
}

func (c *Cast) Type() types.LogicalType    { return c.Ty }
func (c *Cast) Nullable() bool             { return c.Expr.Nullable() }
func (c *Cast) Children() []sql.Expression { return []sql.Expression{c.Expr} }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: Cast takes exactly one child")
	}
	return &Cast{Expr: children[0], Ty: c.Ty}, nil
}

func (c *Cast) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := c.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("cast operand did not evaluate to a types.Value")
	}
	out, err := types.Cast(val, c.Ty)
	if err != nil {
		return nil, sql.ErrTypeMismatch.New(err.Error())
	}
	return out, nil
}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Expr.String(), c.Ty) }

// IsNull is the ScalarExpression::IsNull variant ("negatable": IS NULL /
// IS NOT NULL).
type IsNull struct {
	Expr    sql.Expression
	Negated bool
}

func NewIsNull(expr sql.Expression) *IsNull { return &IsNull{Expr: expr} }
func NewIsNotNull(expr sql.Expression) *IsNull {
	return &IsNull{Expr: expr, Negated: true}
}

func (n *IsNull) Type() types.LogicalType    { return types.Boolean }
func (n *IsNull) Nullable() bool             { return false }
func (n *IsNull) Children() []sql.Expression { return []sql.Expression{n.Expr} }

func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: IsNull takes exactly one child")
	}
	return &IsNull{Expr: children[0], Negated: n.Negated}, nil
}

func (n *IsNull) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := n.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("IS NULL operand did not evaluate to a types.Value")
	}
	result := val.IsNull()
	if n.Negated {
		result = !result
	}
	return types.NewBoolean(result), nil
}

func (n *IsNull) String() string {
	if n.Negated {
		return fmt.Sprintf("%s IS NOT NULL", n.Expr.String())
	}
	return fmt.Sprintf("%s IS NULL", n.Expr.String())
}
