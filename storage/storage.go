// Package storage names the transactional key-value interface spec.md §6
// treats as an external collaborator. The query-processing core depends
// only on this interface; package storage/memtx provides the in-memory
// implementation used to exercise it end to end.
package storage

import (
	"github.com/kvsql/kvsql/analyzer/rangeutil"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Transaction is the mutable handle the executor carries through a single
// query's producer tree, per spec.md §4.3 and §7.
type Transaction interface {
	Read(table string, limit *int, columns []string, withPK bool) (sql.RowIter, error)
	ReadByIndex(table string, index catalog.IndexMeta, rng *rangeutil.Range) (sql.RowIter, error)
	PointRead(table string, pk types.Value) (sql.Row, bool, error)
	AppendTuple(table string, row sql.Row) error
	UpdateTuple(table string, old, new sql.Row) error
	DeleteTuple(table string, row sql.Row) error
	CreateTable(meta catalog.TableMeta) error
	DropTable(name string) error
	Commit() error
	Rollback() error
}
