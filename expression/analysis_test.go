package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestTryReferenceResolvesMatchingColumn(t *testing.T) {
	schema := sql.Schema{
		{Name: "id", Source: "users", Type: types.Int32},
		{Name: "name", Source: "users", Type: types.Varchar},
	}
	ref := NewColumnRef(1, "users", "name", types.Varchar, false)
	resolved, err := TryReference(ref, schema)
	require.NoError(t, err)

	bound, ok := resolved.(*Reference)
	require.True(t, ok)
	require.Equal(t, 1, bound.Pos)
}

func TestTryReferenceLeavesUnmatchedColumnUnresolved(t *testing.T) {
	schema := sql.Schema{{Name: "id", Source: "users", Type: types.Int32}}
	ref := NewColumnRef(1, "orders", "total", types.Int32, false)
	resolved, err := TryReference(ref, schema)
	require.NoError(t, err)
	_, ok := resolved.(*ColumnRef)
	require.True(t, ok)
}

func TestReferencedColumnsOnlyColumnRef(t *testing.T) {
	expr := NewAnd(
		NewColumnRef(1, "t", "a", types.Int32, false),
		NewColumnRef(2, "t", "b", types.Int32, false),
	)
	cols, err := ReferencedColumns(expr, true)
	require.NoError(t, err)
	require.ElementsMatch(t, []sql.ColumnSummary{
		{Name: "a", Relation: "t"},
		{Name: "b", Relation: "t"},
	}, cols)
}

func TestReferencedColumnsRejectsBoundReference(t *testing.T) {
	ref := NewReference(NewColumnRef(1, "t", "a", types.Int32, false), 0)
	_, err := ReferencedColumns(ref, true)
	require.True(t, sql.ErrInvariantViolation.Is(err))
}

func TestOutputSummaryUsesOutputNameWhenAvailable(t *testing.T) {
	alias := NewAlias("total", NewLiteral(types.NewInt32(1)))
	require.Equal(t, sql.ColumnSummary{Name: "total"}, OutputSummary(alias))
}

func TestOutputSummaryFallsBackToString(t *testing.T) {
	lit := NewLiteral(types.NewInt32(1))
	require.Equal(t, sql.ColumnSummary{Name: "1"}, OutputSummary(lit))
}

func TestBindEvaluatorBindsNestedTree(t *testing.T) {
	expr := NewAnd(
		NewEquals(NewLiteral(types.NewInt32(1)), NewLiteral(types.NewInt32(1))),
		NewNot(NewLiteral(types.NewBoolean(false))),
	)
	bound, err := BindEvaluator(expr)
	require.NoError(t, err)
	v, err := bound.Eval(sql.NewEmptyContext(), nil)
	require.NoError(t, err)
	b, ok := v.(types.Value).Bool()
	require.True(t, ok)
	require.True(t, b)
}

func TestUnpackConstant(t *testing.T) {
	v, ok := UnpackConstant(NewLiteral(types.NewInt32(5)))
	require.True(t, ok)
	require.Equal(t, types.NewInt32(5), v)

	_, ok = UnpackConstant(NewColumnRef(1, "t", "a", types.Int32, false))
	require.False(t, ok)
}

func TestUnpackColumnFollowsReference(t *testing.T) {
	ref := NewColumnRef(1, "t", "a", types.Int32, false)
	summary, ok := UnpackColumn(NewReference(ref, 0))
	require.True(t, ok)
	require.Equal(t, sql.ColumnSummary{Name: "a", Relation: "t"}, summary)
}
