package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/types"
)

func TestSortIterOrdersDescending(t *testing.T) {
	ctx, cat, tx, meta := newFixture(t, 3)
	colA := refCol(0, "t", "a", types.Int32)
	node := plan.NewSort([]plan.SortOrder{{Expr: colA, Desc: true}}, plan.NewScan(meta))

	it, err := BuildRead(ctx, cat, tx, node)
	require.NoError(t, err)
	rows := drain(t, ctx, it)
	require.Len(t, rows, 3)
	require.Equal(t, int32(3), rows[0][0].(types.Value).Raw.(int32))
	require.Equal(t, int32(1), rows[2][0].(types.Value).Raw.(int32))
}

func TestLimitIterRespectsOffsetAndCount(t *testing.T) {
	ctx, cat, tx, meta := newFixture(t, 5)
	colA := refCol(0, "t", "a", types.Int32)
	sorted := plan.NewSort([]plan.SortOrder{{Expr: colA}}, plan.NewScan(meta))
	node := plan.NewLimit(2, 1, sorted)

	it, err := BuildRead(ctx, cat, tx, node)
	require.NoError(t, err)
	rows := drain(t, ctx, it)
	require.Len(t, rows, 2)
	require.Equal(t, int32(2), rows[0][0].(types.Value).Raw.(int32))
	require.Equal(t, int32(3), rows[1][0].(types.Value).Raw.(int32))
}

func TestUnionAllKeepsDuplicates(t *testing.T) {
	ctx, cat, tx, meta := newFixture(t, 2)
	left := plan.NewScan(meta)
	right := plan.NewScan(meta)
	node := plan.NewUnion(left, right, false)

	it, err := BuildRead(ctx, cat, tx, node)
	require.NoError(t, err)
	require.Len(t, drain(t, ctx, it), 4)
}

func TestUnionDistinctDropsDuplicates(t *testing.T) {
	ctx, cat, tx, meta := newFixture(t, 2)
	left := plan.NewScan(meta)
	right := plan.NewScan(meta)
	node := plan.NewUnion(left, right, true)

	it, err := BuildRead(ctx, cat, tx, node)
	require.NoError(t, err)
	require.Len(t, drain(t, ctx, it), 2)
}
