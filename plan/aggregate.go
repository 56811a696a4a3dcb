package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
)

// Aggregate is the Operator::Aggregate variant: GROUP BY GroupBy computing
// AggCalls per group (HashAgg) or over the whole input when GroupBy is
// empty (SimpleAgg).
type Aggregate struct {
	GroupBy  []sql.Expression
	AggCalls []sql.Expression // each must be an *expression.AggCall
	Child    sql.Node
}

func NewAggregate(groupBy, aggCalls []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{GroupBy: groupBy, AggCalls: aggCalls, Child: child}
}

func (a *Aggregate) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(a.GroupBy)+len(a.AggCalls))
	for _, e := range a.GroupBy {
		name := e.String()
		if n, ok := e.(namedExpression); ok {
			name, _ = n.OutputName()
		}
		out = append(out, &sql.Column{Name: name, Type: e.Type(), Nullable: e.Nullable()})
	}
	for _, e := range a.AggCalls {
		out = append(out, &sql.Column{Name: e.String(), Type: e.Type(), Nullable: e.Nullable()})
	}
	return out
}

func (a *Aggregate) Children() []sql.Node { return []sql.Node{a.Child} }

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Aggregate takes exactly one child")
	}
	return &Aggregate{GroupBy: a.GroupBy, AggCalls: a.AggCalls, Child: children[0]}, nil
}

func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupBy)+len(a.AggCalls))
	out = append(out, a.GroupBy...)
	out = append(out, a.AggCalls...)
	return out
}

func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(a.GroupBy)+len(a.AggCalls) {
		return nil, fmt.Errorf("plan: Aggregate.WithExpressions arity mismatch")
	}
	return &Aggregate{
		GroupBy:  append([]sql.Expression{}, exprs[:len(a.GroupBy)]...),
		AggCalls: append([]sql.Expression{}, exprs[len(a.GroupBy):]...),
		Child:    a.Child,
	}, nil
}

func (a *Aggregate) String() string {
	if len(a.GroupBy) == 0 {
		return "SimpleAgg"
	}
	return "HashAgg"
}
