package rowexec

import (
	"fmt"

	"github.com/kvsql/kvsql/analyzer/rangeutil"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage"
)

// BuildRead walks a read-only (post-optimization) plan tree and returns the
// RowIter that produces its rows, dispatching on each node's concrete type
// (and, for Scan/Join, its PhysicalOption) rather than on any method the
// node itself exposes — sql.Node stays purely structural, per spec.md
// §4.3's design note.
func BuildRead(ctx *sql.Context, cat catalog.Catalog, tx storage.Transaction, node sql.Node) (sql.RowIter, error) {
	switch n := node.(type) {
	case *plan.Scan:
		return buildScan(ctx, tx, n, nil)

	case *plan.Filter:
		if scan, ok := n.Child.(*plan.Scan); ok {
			if idx, isIdx := scan.Physical.(plan.PhysicalIndexScan); isIdx {
				rng := firstRangeForIndex(n.Predicate, scan.Table, idx)
				scanIter, err := buildScan(ctx, tx, scan, rng)
				if err != nil {
					return nil, err
				}
				return &filterIter{child: scanIter, predicate: n.Predicate}, nil
			}
		}
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return &filterIter{child: child, predicate: n.Predicate}, nil

	case *plan.Project:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return &projectIter{child: child, projections: n.Projections}, nil

	case *plan.Sort:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return newSortIter(ctx, n.Orders, child), nil

	case *plan.Limit:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return &limitIter{child: child, count: n.Count, offset: n.Offset}, nil

	case *plan.Union:
		left, err := BuildRead(ctx, cat, tx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := BuildRead(ctx, cat, tx, n.Right)
		if err != nil {
			return nil, err
		}
		return newUnionIter(left, right, n.Distinct), nil

	case *plan.Join:
		left, err := BuildRead(ctx, cat, tx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := BuildRead(ctx, cat, tx, n.Right)
		if err != nil {
			return nil, err
		}
		if _, wantsHash := n.Physical.(plan.PhysicalHashJoin); wantsHash {
			it, ok, err := buildHashJoin(ctx, n, left, right)
			if err != nil {
				return nil, err
			}
			if ok {
				return it, nil
			}
			// On was not a hashable equality conjunction; fall back below.
		}
		return buildNestedLoopJoin(ctx, n, left, right)

	case *plan.Aggregate:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return newAggIter(ctx, n, child), nil

	case *plan.Values:
		return buildValues(ctx, n)

	case *plan.Dummy:
		return buildDummy(), nil

	case *plan.FunctionScan:
		return buildFunctionScan(ctx, n)

	case *plan.Show:
		return buildShow(cat, n)

	case *plan.Describe:
		return buildDescribe(cat, n)

	case *plan.Explain:
		return buildExplain(n)

	default:
		return nil, sql.ErrUnsupportedStmt.New(fmt.Sprintf("%T is not a readable plan node", node))
	}
}

// firstRangeForIndex extracts the Range rangeutil.Detach derives for the
// index's leading column, if the predicate implies exactly one. Any
// narrowing beyond that (additional AND-ed ranges, OR branches over other
// columns) is left to the filterIter layered on top, which re-evaluates
// the full predicate regardless.
func firstRangeForIndex(predicate sql.Expression, table *catalog.TableMeta, idx plan.PhysicalIndexScan) *rangeutil.Range {
	meta, ok := findIndex(table, idx.Index)
	if !ok || len(meta.Columns) == 0 {
		return nil
	}
	ranges := rangeutil.Detach(predicate)
	for col, sorted := range ranges {
		if col.Name == meta.Columns[0] && len(sorted) == 1 {
			r := sorted[0]
			return &r
		}
	}
	return nil
}

// BuildWrite walks a DML/DDL plan node and executes its side effect against
// tx (and cat, for schema-mutating statements), returning a RowIter that
// yields the standard single rows_affected row.
func BuildWrite(ctx *sql.Context, cat catalog.Catalog, tx storage.Transaction, node sql.Node) (sql.RowIter, error) {
	switch n := node.(type) {
	case *plan.Insert:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return buildInsert(ctx, tx, n, child)

	case *plan.Update:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return buildUpdate(ctx, tx, n, child)

	case *plan.Delete:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return buildDelete(ctx, tx, n, child)

	case *plan.Analyze:
		child, err := BuildRead(ctx, cat, tx, n.Child)
		if err != nil {
			return nil, err
		}
		return buildAnalyze(ctx, child)

	case *plan.Copy:
		return buildCopy(), nil

	case *plan.CreateTable:
		return buildCreateTable(tx, cat, n)

	case *plan.DropTable:
		return buildDropTable(tx, cat, n)

	case *plan.AlterTable:
		return buildAlterTable(cat, n)

	case *plan.CreateIndex:
		return buildCreateIndex(cat, n)

	default:
		return nil, sql.ErrUnsupportedStmt.New(fmt.Sprintf("%T is not a writable plan node", node))
	}
}
