package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestCastEval(t *testing.T) {
	c := NewCast(NewLiteral(types.NewInt32(7)), types.Varchar)
	v, err := c.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, "7", v.(types.Value).Raw.(string))
}

func TestCastEvalErrorWraps(t *testing.T) {
	c := NewCast(NewLiteral(types.NewInt32(1000)), types.Int8)
	_, err := c.Eval(sql.NewEmptyContext(), nil)
	require.True(t, sql.ErrTypeMismatch.Is(err))
}

func TestIsNullEval(t *testing.T) {
	n := NewIsNull(NewLiteral(types.Null(types.Int32)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	b, _ := v.(types.Value).Bool()
	require.True(t, b)
}

func TestIsNotNullEval(t *testing.T) {
	n := NewIsNotNull(NewLiteral(types.NewInt32(1)))
	v, err := n.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	b, _ := v.(types.Value).Bool()
	require.True(t, b)
}
