package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func mustBindEvaluator(t *testing.T, expr sql.Expression) sql.Expression {
	t.Helper()
	bound, err := BindEvaluator(expr)
	require.NoError(t, err)
	return bound
}

func TestBinaryEvalBeforeBindIsInvariantViolation(t *testing.T) {
	b := NewPlus(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	_, err := b.Eval(sql.NewEmptyContext(), nil)
	require.True(t, sql.ErrInvariantViolation.Is(err))
}

func TestBinaryEvalAddition(t *testing.T) {
	b := NewPlus(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	bound := mustBindEvaluator(t, b)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt32(3), v)
}

func TestBinaryEvalPromotesToCommonType(t *testing.T) {
	b := NewPlus(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewFloat64(2.5)))
	bound := mustBindEvaluator(t, b)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	val := v.(types.Value)
	require.Equal(t, types.Float64, val.Logical)
	require.Equal(t, 3.5, val.Raw.(float64))
}

func TestBinaryAndShortCircuitsOnFalseLeft(t *testing.T) {
	b := NewAnd(NewLiteral(types.NewBoolean(false)), NewColumnRef(1, "t", "x", types.Boolean, false))
	bound := mustBindEvaluator(t, b)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	val := v.(types.Value)
	b2, ok := val.Bool()
	require.True(t, ok)
	require.False(t, b2)
}

func TestBinaryOrShortCircuitsOnTrueLeft(t *testing.T) {
	b := NewOr(NewLiteral(types.NewBoolean(true)), NewColumnRef(1, "t", "x", types.Boolean, false))
	bound := mustBindEvaluator(t, b)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	val := v.(types.Value)
	b2, ok := val.Bool()
	require.True(t, ok)
	require.True(t, b2)
}

func TestBinaryOverflowWrapsAsErrOverflow(t *testing.T) {
	b := NewPlus(NewLiteral(types.NewInt8(120)), NewLiteral(types.NewInt8(10)))
	bound := mustBindEvaluator(t, b)
	_, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.True(t, sql.ErrOverflow.Is(err))
}

func TestBinaryComparisonType(t *testing.T) {
	b := NewEquals(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(1)))
	require.Equal(t, types.Boolean, b.Type())
}

func TestBinaryStringRendering(t *testing.T) {
	b := NewPlus(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(2)))
	require.Equal(t, "(1 + 2)", b.String())
}
