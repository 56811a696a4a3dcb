package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/types"
)

func TestArithmeticEvaluatorIntegerAdd(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Int32, op: types.Plus}
	v, err := e.Eval(types.NewInt32(2), types.NewInt32(3))
	require.NoError(t, err)
	require.Equal(t, int32(5), v.Raw.(int32))
}

func TestArithmeticEvaluatorOverflowErrors(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Int8, op: types.Plus}
	_, err := e.Eval(types.NewInt8(120), types.NewInt8(10))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestArithmeticEvaluatorDivisionPromotesToFloat(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Int32, op: types.Divide}
	v, err := e.Eval(types.NewInt32(7), types.NewInt32(2))
	require.NoError(t, err)
	require.Equal(t, types.Float64, v.Logical)
	require.Equal(t, 3.5, v.Raw.(float64))
}

func TestArithmeticEvaluatorDivisionByZeroIsNull(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Int32, op: types.Divide}
	v, err := e.Eval(types.NewInt32(7), types.NewInt32(0))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestArithmeticEvaluatorNullOperandIsNull(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Int32, op: types.Plus}
	v, err := e.Eval(types.Null(types.Int32), types.NewInt32(1))
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestArithmeticEvaluatorUnsignedSubtractUnderflow(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.UInt8, op: types.Minus}
	_, err := e.Eval(types.NewUInt8(1), types.NewUInt8(2))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestArithmeticEvaluatorFloatModulo(t *testing.T) {
	e := &arithmeticEvaluator{ty: types.Float64, op: types.Modulo}
	v, err := e.Eval(types.NewFloat64(5.5), types.NewFloat64(2))
	require.NoError(t, err)
	require.InDelta(t, 1.5, v.Raw.(float64), 1e-9)
}

func TestNegateEvaluatorInt64MinOverflows(t *testing.T) {
	e := &negateEvaluator{ty: types.Int64}
	_, err := e.Eval(types.NewInt64(-1 << 63))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestNegateEvaluatorBasic(t *testing.T) {
	e := &negateEvaluator{ty: types.Int32}
	v, err := e.Eval(types.NewInt32(5))
	require.NoError(t, err)
	require.Equal(t, int32(-5), v.Raw.(int32))
}

func TestIdentityEvaluatorIsNoop(t *testing.T) {
	e := &identityEvaluator{ty: types.Int32}
	v, err := e.Eval(types.NewInt32(5))
	require.NoError(t, err)
	require.Equal(t, int32(5), v.Raw.(int32))
}
