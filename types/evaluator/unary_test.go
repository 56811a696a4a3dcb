package evaluator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/types"
)

func TestNotEvaluatorNullStaysNull(t *testing.T) {
	e, err := UnaryCreate(types.Boolean, types.UnaryNot)
	require.NoError(t, err)
	v, err := e.Eval(types.Null(types.Boolean))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestIdentityEvaluatorIsNoop(t *testing.T) {
	e, err := UnaryCreate(types.Int32, types.UnaryPlus)
	require.NoError(t, err)
	v, err := e.Eval(types.NewInt32(7))
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(7), v)
}

func TestIdentityEvaluatorRejectsNonNumeric(t *testing.T) {
	_, err := UnaryCreate(types.Varchar, types.UnaryPlus)
	require.Error(t, err)
}

func TestNegateEvaluatorIntegerFlipsSign(t *testing.T) {
	e, err := UnaryCreate(types.Int32, types.UnaryMinus)
	require.NoError(t, err)
	v, err := e.Eval(types.NewInt32(5))
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(-5), v)
}

func TestNegateEvaluatorNullStaysNull(t *testing.T) {
	e, err := UnaryCreate(types.Int32, types.UnaryMinus)
	require.NoError(t, err)
	v, err := e.Eval(types.Null(types.Int32))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestNegateEvaluatorInt32MinOverflows(t *testing.T) {
	e, err := UnaryCreate(types.Int32, types.UnaryMinus)
	require.NoError(t, err)
	_, err = e.Eval(types.NewInt32(math.MinInt32))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestNegateEvaluatorInt64MinOverflows(t *testing.T) {
	e, err := UnaryCreate(types.Int64, types.UnaryMinus)
	require.NoError(t, err)
	_, err = e.Eval(types.NewInt64(math.MinInt64))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestNegateEvaluatorFloatFlipsSign(t *testing.T) {
	e, err := UnaryCreate(types.Float64, types.UnaryMinus)
	require.NoError(t, err)
	v, err := e.Eval(types.NewFloat64(1.5))
	require.NoError(t, err)
	require.Equal(t, types.NewFloat64(-1.5), v)
}

func TestNegateEvaluatorRejectsNonNumeric(t *testing.T) {
	_, err := UnaryCreate(types.Varchar, types.UnaryMinus)
	require.Error(t, err)
}

func TestUnaryCreateUnknownOpErrors(t *testing.T) {
	_, err := UnaryCreate(types.Int32, types.UnaryOp(99))
	require.Error(t, err)
}
