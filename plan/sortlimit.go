package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
)

// Sort is the Operator::Sort variant.
type Sort struct {
	Orders []SortOrder
	Child  sql.Node
}

func NewSort(orders []SortOrder, child sql.Node) *Sort {
	return &Sort{Orders: orders, Child: child}
}

func (s *Sort) Schema() sql.Schema   { return s.Child.Schema() }
func (s *Sort) Children() []sql.Node { return []sql.Node{s.Child} }

func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Sort takes exactly one child")
	}
	return &Sort{Orders: s.Orders, Child: children[0]}, nil
}

func (s *Sort) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, len(s.Orders))
	for i, o := range s.Orders {
		exprs[i] = o.Expr
	}
	return exprs
}

func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(s.Orders) {
		return nil, fmt.Errorf("plan: Sort.WithExpressions arity mismatch")
	}
	orders := make([]SortOrder, len(s.Orders))
	for i, o := range s.Orders {
		orders[i] = SortOrder{Expr: exprs[i], Desc: o.Desc, NullsLast: o.NullsLast}
	}
	return &Sort{Orders: orders, Child: s.Child}, nil
}

func (s *Sort) String() string { return "Sort" }

// Limit is the Operator::Limit variant, carrying an optional offset.
type Limit struct {
	Count  int64
	Offset int64
	Child  sql.Node
}

func NewLimit(count, offset int64, child sql.Node) *Limit {
	return &Limit{Count: count, Offset: offset, Child: child}
}

func (l *Limit) Schema() sql.Schema   { return l.Child.Schema() }
func (l *Limit) Children() []sql.Node { return []sql.Node{l.Child} }

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Limit takes exactly one child")
	}
	return &Limit{Count: l.Count, Offset: l.Offset, Child: children[0]}, nil
}

func (l *Limit) String() string { return fmt.Sprintf("Limit(%d, offset=%d)", l.Count, l.Offset) }

// Union is the Operator::Union variant: concatenation of two same-shaped
// inputs, with optional duplicate elimination.
type Union struct {
	Distinct    bool
	Left, Right sql.Node
}

func NewUnion(left, right sql.Node, distinct bool) *Union {
	return &Union{Left: left, Right: right, Distinct: distinct}
}

func (u *Union) Schema() sql.Schema   { return u.Left.Schema() }
func (u *Union) Children() []sql.Node { return []sql.Node{u.Left, u.Right} }

func (u *Union) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("plan: Union takes exactly two children")
	}
	return &Union{Distinct: u.Distinct, Left: children[0], Right: children[1]}, nil
}

func (u *Union) String() string {
	if u.Distinct {
		return "Union(distinct)"
	}
	return "UnionAll"
}
