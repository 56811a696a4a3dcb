package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/transform"
	"github.com/kvsql/kvsql/types"
)

func TestExprRewritesLeafBottomUp(t *testing.T) {
	expr := expression.NewPlus(
		expression.NewLiteral(types.NewInt32(1)),
		expression.NewLiteral(types.NewInt32(2)),
	)

	rewritten, identity, err := transform.Expr(expr, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		lit, ok := e.(*expression.Literal)
		if !ok {
			return e, transform.Same, nil
		}
		return expression.NewLiteral(types.NewInt32(99)), transform.NewTree, nil
	})
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	bound, err := expression.BindEvaluator(rewritten)
	require.NoError(t, err)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(198), v)
}

func TestExprNoMatchReportsSame(t *testing.T) {
	expr := expression.NewLiteral(types.NewInt32(1))
	_, identity, err := transform.Expr(expr, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		return e, transform.Same, nil
	})
	require.NoError(t, err)
	require.Equal(t, transform.Same, identity)
}

func TestInspectExprVisitsEveryNode(t *testing.T) {
	expr := expression.NewAnd(
		expression.NewColumnRef(1, "t", "a", types.Int32, false),
		expression.NewColumnRef(2, "t", "b", types.Int32, false),
	)
	var visited int
	transform.InspectExpr(expr, func(e sql.Expression) bool {
		visited++
		return true
	})
	require.Equal(t, 3, visited) // the And plus its two ColumnRef children
}

func TestInspectExprStopsDescendingWhenFalse(t *testing.T) {
	expr := expression.NewAnd(
		expression.NewColumnRef(1, "t", "a", types.Int32, false),
		expression.NewColumnRef(2, "t", "b", types.Int32, false),
	)
	var visited int
	transform.InspectExpr(expr, func(e sql.Expression) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}

func TestNodeRewritesBottomUp(t *testing.T) {
	filter := plan.NewFilter(
		expression.NewLiteral(types.NewBoolean(true)),
		plan.NewDummy(),
	)
	rewritten, identity, err := transform.Node(filter, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if _, ok := n.(*plan.Dummy); ok {
			return plan.NewFilter(expression.NewLiteral(types.NewBoolean(false)), plan.NewDummy()), transform.NewTree, nil
		}
		return n, transform.Same, nil
	})
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	outer := rewritten.(*plan.Filter)
	_, ok := outer.Child.(*plan.Filter)
	require.True(t, ok)
}

func TestNodeExprsRewritesOwnedExpressions(t *testing.T) {
	filter := plan.NewFilter(expression.NewLiteral(types.NewBoolean(true)), plan.NewDummy())
	rewritten, identity, err := transform.NodeExprs(filter, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if _, ok := e.(*expression.Literal); ok {
			return expression.NewLiteral(types.NewBoolean(false)), transform.NewTree, nil
		}
		return e, transform.Same, nil
	})
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	newFilter := rewritten.(*plan.Filter)
	v, err := newFilter.Predicate.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	b, _ := v.(types.Value).Bool()
	require.False(t, b)
}

func TestNodeExprsNoopOnNonExpressioner(t *testing.T) {
	d := plan.NewDummy()
	rewritten, identity, err := transform.NodeExprs(d, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		return e, transform.Same, nil
	})
	require.NoError(t, err)
	require.Equal(t, transform.Same, identity)
	require.Equal(t, d, rewritten)
}
