package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestBetweenWithinRange(t *testing.T) {
	b := NewBetween(
		NewLiteral(types.NewInt32(5)),
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.NewInt32(10)),
	)
	v, err := b.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	ok, _ := v.(types.Value).Bool()
	require.True(t, ok)
}

func TestBetweenOutsideRange(t *testing.T) {
	b := NewBetween(
		NewLiteral(types.NewInt32(20)),
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.NewInt32(10)),
	)
	v, err := b.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	ok, _ := v.(types.Value).Bool()
	require.False(t, ok)
}

func TestNotBetweenNegates(t *testing.T) {
	b := NewNotBetween(
		NewLiteral(types.NewInt32(20)),
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.NewInt32(10)),
	)
	v, err := b.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	ok, _ := v.(types.Value).Bool()
	require.True(t, ok)
}

func TestBetweenNullOperandIsNull(t *testing.T) {
	b := NewBetween(
		NewLiteral(types.Null(types.Int32)),
		NewLiteral(types.NewInt32(1)),
		NewLiteral(types.NewInt32(10)),
	)
	v, err := b.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.True(t, v.(types.Value).IsNull())
}
