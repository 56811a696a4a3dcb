package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestScalarFunctionEvalAppliesBoundFn(t *testing.T) {
	upper := NewScalarFunction("UPPER", types.Varchar, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		return types.NewText("X"), nil
	}, []sql.Expression{NewLiteral(types.NewText("x"))})

	v, err := upper.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewText("X"), v)
}

func TestScalarFunctionEvalWithoutBoundFnErrors(t *testing.T) {
	f := NewScalarFunction("MYSTERY", types.Varchar, nil, nil)
	_, err := f.Eval(sql.NewEmptyContext(), nil)
	require.Error(t, err)
}

func TestScalarFunctionEvalWrapsArgumentError(t *testing.T) {
	boom := NewScalarFunction("ARG", types.Int32, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		return types.Value{}, nil
	}, []sql.Expression{NewColumnRef(1, "t", "a", types.Int32, false)})

	_, err := boom.Eval(sql.NewEmptyContext(), nil)
	require.Error(t, err)
}

func TestScalarFunctionStringRendersCallSyntax(t *testing.T) {
	f := NewScalarFunction("CONCAT", types.Varchar, nil, []sql.Expression{
		NewLiteral(types.NewText("a")),
		NewLiteral(types.NewText("b")),
	})
	require.Equal(t, `CONCAT(a, b)`, f.String())
}

func TestRegistryResolveReturnsBoundFunction(t *testing.T) {
	r := NewRegistry()
	r.Register("double", types.Int64, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		return types.NewInt64(args[0].Raw.(int64) * 2), nil
	})

	fn, ok := r.Resolve("DOUBLE", []sql.Expression{NewLiteral(types.NewInt64(3))})
	require.True(t, ok)
	v, err := fn.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt64(6), v)
}

func TestRegistryResolveUnknownNameFails(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Resolve("NOPE", nil)
	require.False(t, ok)
}

func TestDefaultRegistryUpperLowerLength(t *testing.T) {
	r := DefaultRegistry()
	ctx := sql.NewEmptyContext()

	upper, ok := r.Resolve("upper", []sql.Expression{NewLiteral(types.NewText("go"))})
	require.True(t, ok)
	v, err := upper.Eval(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, types.NewText("GO"), v)

	lower, ok := r.Resolve("LOWER", []sql.Expression{NewLiteral(types.NewText("GO"))})
	require.True(t, ok)
	v, err = lower.Eval(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, types.NewText("go"), v)

	length, ok := r.Resolve("LENGTH", []sql.Expression{NewLiteral(types.NewText("go"))})
	require.True(t, ok)
	v, err = length.Eval(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, types.NewInt64(2), v)
}

func TestDefaultRegistryConcatNullShortCircuits(t *testing.T) {
	r := DefaultRegistry()
	concat, ok := r.Resolve("CONCAT", []sql.Expression{
		NewLiteral(types.NewText("a")),
		NewLiteral(types.Null(types.Varchar)),
	})
	require.True(t, ok)
	v, err := concat.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.True(t, v.(types.Value).IsNull())
}

func TestDefaultRegistryAbsNegatesNegative(t *testing.T) {
	r := DefaultRegistry()
	abs, ok := r.Resolve("ABS", []sql.Expression{NewLiteral(types.NewInt32(-5))})
	require.True(t, ok)
	v, err := abs.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	require.Equal(t, types.NewFloat64(5), v)
}
