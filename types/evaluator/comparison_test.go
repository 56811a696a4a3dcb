package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/types"
)

func TestComparisonEvaluatorNullPropagates(t *testing.T) {
	e := &comparisonEvaluator{ty: types.Int32, op: types.Eq}
	v, err := e.Eval(types.Null(types.Int32), types.NewInt32(1))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestComparisonEvaluatorOperators(t *testing.T) {
	cases := []struct {
		op   types.BinaryOp
		l, r int32
		want bool
	}{
		{types.Gt, 2, 1, true},
		{types.Gt, 1, 2, false},
		{types.GtEq, 1, 1, true},
		{types.Lt, 1, 2, true},
		{types.LtEq, 2, 1, false},
		{types.NotEq, 1, 2, true},
	}
	for _, c := range cases {
		e := &comparisonEvaluator{ty: types.Int32, op: c.op}
		v, err := e.Eval(types.NewInt32(c.l), types.NewInt32(c.r))
		require.NoError(t, err)
		b, ok := v.Bool()
		require.True(t, ok)
		require.Equal(t, c.want, b)
	}
}

func TestLogicEvaluatorAndShortCircuitsOnFalse(t *testing.T) {
	e := &logicEvaluator{op: types.And}
	v, err := e.Eval(types.NewBoolean(false), types.Null(types.Boolean))
	require.NoError(t, err)
	b, ok := v.Bool()
	require.True(t, ok)
	require.False(t, b)
}

func TestLogicEvaluatorOrShortCircuitsOnTrue(t *testing.T) {
	e := &logicEvaluator{op: types.Or}
	v, err := e.Eval(types.NewBoolean(true), types.Null(types.Boolean))
	require.NoError(t, err)
	b, ok := v.Bool()
	require.True(t, ok)
	require.True(t, b)
}

func TestLogicEvaluatorAndNullWithoutFalseIsNull(t *testing.T) {
	e := &logicEvaluator{op: types.And}
	v, err := e.Eval(types.NewBoolean(true), types.Null(types.Boolean))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestLikeMatchWildcards(t *testing.T) {
	require.True(t, likeMatch("hello", "h%o", '\\'))
	require.True(t, likeMatch("hello", "h_llo", '\\'))
	require.False(t, likeMatch("hello", "h_o", '\\'))
}

func TestLikeMatchEscape(t *testing.T) {
	require.True(t, likeMatch("50%", `50\%`, '\\'))
	require.False(t, likeMatch("50x", `50\%`, '\\'))
}
