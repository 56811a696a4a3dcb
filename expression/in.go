package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// In is the ScalarExpression::In variant: expr [NOT] IN (list...).
type In struct {
	Expr    sql.Expression
	List    []sql.Expression
	Negated bool
}

func NewIn(expr sql.Expression, list []sql.Expression) *In {
	return &In{Expr: expr, List: list}
}

func NewNotIn(expr sql.Expression, list []sql.Expression) *In {
	return &In{Expr: expr, List: list, Negated: true}
}

func (i *In) Type() types.LogicalType { return types.Boolean }
func (i *In) Nullable() bool          { return true }

func (i *In) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(i.List)+1)
	children = append(children, i.Expr)
	children = append(children, i.List...)
	return children
}

func (i *In) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) < 1 {
		return nil, fmt.Errorf("expression: In takes at least one child")
	}
	return &In{Expr: children[0], List: children[1:], Negated: i.Negated}, nil
}

func (i *In) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	lv, err := i.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	l, ok := lv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("IN operand did not evaluate to a types.Value")
	}
	if l.IsNull() {
		return types.Null(types.Boolean), nil
	}

	sawNull := false
	for _, item := range i.List {
		rv, err := item.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		r, ok := rv.(types.Value)
		if !ok {
			return nil, sql.ErrTypeMismatch.New("IN list element did not evaluate to a types.Value")
		}
		if r.IsNull() {
			sawNull = true
			continue
		}
		cmp, err := types.Compare(l, r)
		if err != nil {
			return nil, sql.ErrTypeMismatch.New(err.Error())
		}
		if cmp == 0 {
			return types.NewBoolean(!i.Negated), nil
		}
	}
	if sawNull {
		return types.Null(types.Boolean), nil
	}
	return types.NewBoolean(i.Negated), nil
}

func (i *In) String() string {
	not := ""
	if i.Negated {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sIN (...)", i.Expr.String(), not)
}
