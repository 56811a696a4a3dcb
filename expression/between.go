package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Between is the ScalarExpression::Between variant: expr [NOT] BETWEEN lo
// AND hi. The simplifier rewrites this into two comparisons combined with
// AND (per fix_expr in the original simplification rules) wherever it
// appears in a Filter predicate; anywhere else the variant is evaluated
// directly.
type Between struct {
	Expr    sql.Expression
	Lo, Hi  sql.Expression
	Negated bool
}

func NewBetween(expr, lo, hi sql.Expression) *Between {
	return &Between{Expr: expr, Lo: lo, Hi: hi}
}

func NewNotBetween(expr, lo, hi sql.Expression) *Between {
	return &Between{Expr: expr, Lo: lo, Hi: hi, Negated: true}
}

func (b *Between) Type() types.LogicalType    { return types.Boolean }
func (b *Between) Nullable() bool             { return true }
func (b *Between) Children() []sql.Expression { return []sql.Expression{b.Expr, b.Lo, b.Hi} }

func (b *Between) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("expression: Between takes exactly three children")
	}
	return &Between{Expr: children[0], Lo: children[1], Hi: children[2], Negated: b.Negated}, nil
}

func (b *Between) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	ev, err := b.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	v, ok := ev.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("BETWEEN operand did not evaluate to a types.Value")
	}
	if v.IsNull() {
		return types.Null(types.Boolean), nil
	}

	lov, err := b.Lo.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	lo, ok := lov.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("BETWEEN lower bound did not evaluate to a types.Value")
	}
	hiv, err := b.Hi.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	hi, ok := hiv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("BETWEEN upper bound did not evaluate to a types.Value")
	}
	if lo.IsNull() || hi.IsNull() {
		return types.Null(types.Boolean), nil
	}

	cmpLo, err := types.Compare(v, lo)
	if err != nil {
		return nil, sql.ErrTypeMismatch.New(err.Error())
	}
	cmpHi, err := types.Compare(v, hi)
	if err != nil {
		return nil, sql.ErrTypeMismatch.New(err.Error())
	}
	result := cmpLo >= 0 && cmpHi <= 0
	if b.Negated {
		result = !result
	}
	return types.NewBoolean(result), nil
}

func (b *Between) String() string {
	not := ""
	if b.Negated {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sBETWEEN %s AND %s", b.Expr.String(), not, b.Lo.String(), b.Hi.String())
}
