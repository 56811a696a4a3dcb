package rowexec

import (
	"github.com/kvsql/kvsql/analyzer/rangeutil"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage"
)

// buildScan instantiates the Scan producer, dispatching on the optimizer's
// chosen PhysicalOption. rng narrows an index scan to the bounds a wrapping
// Filter's predicate implied (via rangeutil.Detach); it is nil for a
// sequential scan or when no range could be derived, in which case the
// physical index scan still visits every row in the index.
func buildScan(ctx *sql.Context, tx storage.Transaction, s *plan.Scan, rng *rangeutil.Range) (sql.RowIter, error) {
	switch phys := s.Physical.(type) {
	case plan.PhysicalIndexScan:
		idx, ok := findIndex(s.Table, phys.Index)
		if !ok {
			return nil, sql.ErrCatalogMiss.New(phys.Index)
		}
		it, err := tx.ReadByIndex(s.Table.Name, idx, rng)
		if err != nil {
			return nil, err
		}
		if s.Columns != nil {
			it = projectToColumns(s.Table.Schema(), s.Columns, it)
		}
		if s.Limit != nil {
			it = &limitIter{child: it, count: int64(*s.Limit)}
		}
		return it, nil
	default:
		return tx.Read(s.Table.Name, s.Limit, s.Columns, false)
	}
}

func findIndex(table *catalog.TableMeta, name string) (catalog.IndexMeta, bool) {
	for _, idx := range table.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return catalog.IndexMeta{}, false
}

// projectToColumns narrows full (the table's whole schema) down to columns,
// re-indexing every row pulled from inner. Used only for the IndexScan path
// since storage.Transaction.ReadByIndex has no columns parameter of its own.
type columnProjectIter struct {
	inner     sql.RowIter
	positions []int
}

func projectToColumns(full sql.Schema, columns []string, inner sql.RowIter) sql.RowIter {
	positions := make([]int, len(columns))
	for i, name := range columns {
		positions[i] = -1
		for j, c := range full {
			if c.Name == name {
				positions[i] = j
				break
			}
		}
	}
	return &columnProjectIter{inner: inner, positions: positions}
}

func (c *columnProjectIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := c.inner.Next(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Row, len(c.positions))
	for i, pos := range c.positions {
		if pos >= 0 && pos < len(row) {
			out[i] = row[pos]
		}
	}
	return out, nil
}

func (c *columnProjectIter) Close(ctx *sql.Context) error { return c.inner.Close(ctx) }

// buildFunctionScan evaluates a table-valued function call. No
// set-returning builtins are registered yet (spec.md's scalar function
// registry only covers row-at-a-time functions); FunctionScan therefore
// always yields the empty set rather than failing the query outright.
func buildFunctionScan(ctx *sql.Context, f *plan.FunctionScan) (sql.RowIter, error) {
	return sql.RowsToRowIter(), nil
}
