package rowexec

import (
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage/memtx"
	"github.com/kvsql/kvsql/types"
)

func newTestRow(a int32, b string) sql.Row {
	return sql.NewRow(types.NewInt32(a), types.NewText(b))
}

// refCol builds a resolved column Reference at pos, the shape every
// expression reaching Eval at execution time must have (a bare ColumnRef
// errors on Eval until TryReference has bound it to a position).
func refCol(pos int, table, name string, ty types.LogicalType) *expression.Reference {
	return expression.NewReference(expression.NewColumnRef(catalog.ColumnID(pos+1), table, name, ty, false), pos)
}

func drain(t *testing.T, ctx *sql.Context, it sql.RowIter) []sql.Row {
	t.Helper()
	var out []sql.Row
	for {
		row, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, row)
	}
	require.NoError(t, it.Close(ctx))
	return out
}

// newFixture builds a catalog + storage pair with a single table "t" (a
// int32 primary key, b varchar) pre-populated with n rows: (1,"v1")..(n,"vn").
func newFixture(t *testing.T, n int) (*sql.Context, catalog.Catalog, *memtx.Transaction, *catalog.TableMeta) {
	t.Helper()
	cat := catalog.NewCatalog()
	meta := &catalog.TableMeta{
		Name: "t",
		Columns: []catalog.ColumnMeta{
			{ID: 1, Column: sql.Column{Name: "a", Source: "t", Type: types.Int32, PrimaryKey: true}},
			{ID: 2, Column: sql.Column{Name: "b", Source: "t", Type: types.Varchar}},
		},
	}
	cat.AddTable(meta)

	db := memtx.NewDatabase()
	tx := memtx.NewTransaction(db)
	require.NoError(t, tx.CreateTable(*meta))
	for i := 1; i <= n; i++ {
		require.NoError(t, tx.AppendTuple("t", sql.NewRow(types.NewInt32(int32(i)), types.NewText("v"+strconv.Itoa(i)))))
	}

	ctx := sql.NewEmptyContext()
	return ctx, cat, tx, meta
}
