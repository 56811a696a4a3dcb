package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestIfExprBranches(t *testing.T) {
	ie := NewIf(NewLiteral(types.NewBoolean(true)), NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	v, err := ie.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(1), v)

	ie = NewIf(NewLiteral(types.NewBoolean(false)), NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	v, err = ie.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(2), v)
}

func TestIfExprNullConditionTakesElse(t *testing.T) {
	ie := NewIf(NewLiteral(types.Null(types.Boolean)), NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	v, err := ie.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(2), v)
}

func TestIfNullFallback(t *testing.T) {
	n := NewIfNull(NewLiteral(types.Null(types.Int32)), NewLiteral(types.NewInt32(9)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(9), v)
}

func TestIfNullPassesThroughNonNull(t *testing.T) {
	n := NewIfNull(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(9)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(1), v)
}

func TestNullIfEqualYieldsNull(t *testing.T) {
	n := NewNullIf(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(1)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.True(t, v.(types.Value).IsNull())
}

func TestNullIfDifferentReturnsFirst(t *testing.T) {
	n := NewNullIf(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(1), v)
}

func TestCoalesceFirstNonNull(t *testing.T) {
	c := NewCoalesce([]sql.Expression{
		NewLiteral(types.Null(types.Int32)),
		NewLiteral(types.Null(types.Int32)),
		NewLiteral(types.NewInt32(5)),
	})
	v, err := c.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(5), v)
}

func TestCoalesceAllNullYieldsNull(t *testing.T) {
	c := NewCoalesce([]sql.Expression{
		NewLiteral(types.Null(types.Int32)),
		NewLiteral(types.Null(types.Int32)),
	})
	v, err := c.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.True(t, v.(types.Value).IsNull())
}

func TestCaseWhenFirstMatch(t *testing.T) {
	cw := NewCaseWhen([]WhenClause{
		{Cond: NewLiteral(types.NewBoolean(false)), Result: NewLiteral(types.NewInt32(1))},
		{Cond: NewLiteral(types.NewBoolean(true)), Result: NewLiteral(types.NewInt32(2))},
	}, NewLiteral(types.NewInt32(3)))
	v, err := cw.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(2), v)
}

func TestCaseWhenFallsToElse(t *testing.T) {
	cw := NewCaseWhen([]WhenClause{
		{Cond: NewLiteral(types.NewBoolean(false)), Result: NewLiteral(types.NewInt32(1))},
	}, NewLiteral(types.NewInt32(3)))
	v, err := cw.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(3), v)
}

func TestCaseWhenNoElseYieldsNull(t *testing.T) {
	cw := NewCaseWhen([]WhenClause{
		{Cond: NewLiteral(types.NewBoolean(false)), Result: NewLiteral(types.NewInt32(1))},
	}, nil)
	v, err := cw.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.True(t, v.(types.Value).IsNull())
}

func TestTupleEvalBuildsTupleValue(t *testing.T) {
	tup := NewTuple([]sql.Expression{NewLiteral(types.NewInt32(1)), NewLiteral(types.NewText("a"))})
	v, err := tup.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	val := v.(types.Value)
	require.Equal(t, types.Tuple, val.Logical)
	items := val.Raw.([]types.Value)
	require.Len(t, items, 2)
}
