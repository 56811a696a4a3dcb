package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestTupleEvalBuildsValueTuple(t *testing.T) {
	tup := NewTuple([]sql.Expression{
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.NewText("x")),
	})
	v, err := tup.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewTuple([]types.Value{types.NewInt32(1), types.NewText("x")}), v)
}

func TestTupleEvalPropagatesItemError(t *testing.T) {
	tup := NewTuple([]sql.Expression{NewColumnRef(1, "t", "a", types.Int32, false)})
	_, err := tup.Eval(sql.NewEmptyContext(), nil)
	require.Error(t, err)
}

func TestTupleNullableIfAnyItemNullable(t *testing.T) {
	tup := NewTuple([]sql.Expression{
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.Null(types.Varchar)),
	})
	require.True(t, tup.Nullable())
}

func TestTupleNotNullableWhenNoItemIs(t *testing.T) {
	tup := NewTuple([]sql.Expression{NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2))})
	require.False(t, tup.Nullable())
}

func TestTupleStringRendersParenthesizedList(t *testing.T) {
	tup := NewTuple([]sql.Expression{NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2))})
	require.Equal(t, "(1, 2)", tup.String())
}

func TestTupleWithChildrenReplacesItems(t *testing.T) {
	tup := NewTuple([]sql.Expression{NewLiteral(types.NewInt32(1))})
	replaced, err := tup.WithChildren(NewLiteral(types.NewInt32(9)), NewLiteral(types.NewInt32(10)))
	require.NoError(t, err)
	out := replaced.(*Tuple)
	require.Len(t, out.Items, 2)
	require.Equal(t, "(9, 10)", out.String())
}
