package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage/memtx"
	"github.com/kvsql/kvsql/types"
)

func TestBuildValuesEvaluatesEachRow(t *testing.T) {
	ctx := sql.NewEmptyContext()
	cat := catalog.NewCatalog()
	tx := memtx.NewTransaction(memtx.NewDatabase())

	output := sql.Schema{{Name: "x", Type: types.Int32}}
	rows := [][]sql.Expression{
		{expression.NewLiteral(types.NewInt32(1))},
		{expression.NewPlus(expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(1)))},
	}
	node := plan.NewValues(output, rows)

	it, err := BuildRead(ctx, cat, tx, node)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 2)
	require.Equal(t, int32(1), out[0][0].(types.Value).Raw.(int32))
	require.Equal(t, int32(2), out[1][0].(types.Value).Raw.(int32))
}

func TestBuildDummyYieldsOneEmptyRow(t *testing.T) {
	ctx := sql.NewEmptyContext()
	cat := catalog.NewCatalog()
	tx := memtx.NewTransaction(memtx.NewDatabase())

	it, err := BuildRead(ctx, cat, tx, plan.NewDummy())
	require.NoError(t, err)
	rows := drain(t, ctx, it)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0])
}
