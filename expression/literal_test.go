package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestLiteralEval(t *testing.T) {
	lit := NewLiteral(types.NewInt32(5))
	v, err := lit.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(5), v)
}

func TestLiteralWithChildrenRejectsAny(t *testing.T) {
	lit := NewLiteral(types.NewInt32(5))
	_, err := lit.WithChildren(NewLiteral(types.NewInt32(1)))
	require.Error(t, err)
}

func TestLiteralNullable(t *testing.T) {
	require.True(t, NewLiteral(types.Null(types.Int32)).Nullable())
	require.False(t, NewLiteral(types.NewInt32(1)).Nullable())
}

func TestAliasEvalDelegatesToChild(t *testing.T) {
	alias := NewAlias("total", NewLiteral(types.NewInt32(7)))
	v, err := alias.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(7), v)

	name, relation := alias.OutputName()
	require.Equal(t, "total", name)
	require.Equal(t, "", relation)
}

func TestAliasWithChildrenRebuilds(t *testing.T) {
	alias := NewAlias("total", NewLiteral(types.NewInt32(7)))
	rebuilt, err := alias.WithChildren(NewLiteral(types.NewInt32(9)))
	require.NoError(t, err)
	v, err := rebuilt.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(9), v)
}
