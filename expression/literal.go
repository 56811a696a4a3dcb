package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Literal is the ScalarExpression::Constant variant.
type Literal struct {
	Val types.Value
}

func NewLiteral(v types.Value) *Literal { return &Literal{Val: v} }

func (l *Literal) Type() types.LogicalType    { return l.Val.Logical }
func (l *Literal) Nullable() bool             { return l.Val.IsNull() }
func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: Literal takes no children")
	}
	return l, nil
}

func (l *Literal) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return l.Val, nil
}

func (l *Literal) String() string { return l.Val.String() }

// Alias is the ScalarExpression::Alias variant: either a plain renaming of
// an inner expression (the common case), used so the optimizer and
// executor can still identify the aliased output as a distinct column.
type Alias struct {
	Expr sql.Expression
	Name string
}

func NewAlias(name string, expr sql.Expression) *Alias {
	return &Alias{Expr: expr, Name: name}
}

func (a *Alias) Type() types.LogicalType    { return a.Expr.Type() }
func (a *Alias) Nullable() bool             { return a.Expr.Nullable() }
func (a *Alias) Children() []sql.Expression { return []sql.Expression{a.Expr} }

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: Alias takes exactly one child")
	}
	return &Alias{Expr: children[0], Name: a.Name}, nil
}

func (a *Alias) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return a.Expr.Eval(ctx, row)
}

func (a *Alias) String() string { return fmt.Sprintf("%s AS %s", a.Expr.String(), a.Name) }

// OutputName satisfies plan.namedExpression: an aliased projection keeps the
// alias as its output column name, with no owning relation.
func (a *Alias) OutputName() (name, relation string) { return a.Name, "" }
