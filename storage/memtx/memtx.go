// Package memtx is a minimal in-memory storage.Transaction implementation:
// no persistence, no MVCC, no locking beyond a single mutex per database,
// matching spec.md's Non-goals (no distribution, no MVCC). It exists only
// to give the query-processing core something concrete to execute against
// in tests and in the example engine.
package memtx

import (
	"sync"

	"github.com/kvsql/kvsql/analyzer/rangeutil"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Database owns the committed table data; Transaction is a thin view over
// it that buffers nothing (writes apply immediately, matching the
// Non-goals' "no MVCC" note — Commit/Rollback exist only to satisfy the
// storage.Transaction interface's lifecycle contract).
type Database struct {
	mu     sync.Mutex
	tables map[string]*table
}

type table struct {
	meta *catalog.TableMeta
	rows []sql.Row
}

func NewDatabase() *Database {
	return &Database{tables: make(map[string]*table)}
}

// Transaction is the storage.Transaction implementation bound to one
// Database. A single outstanding transaction is assumed at a time per
// Database (no concurrent-writer isolation), matching the Non-goal of no
// MVCC-multi-version visibility.
type Transaction struct {
	db *Database
}

func NewTransaction(db *Database) *Transaction { return &Transaction{db: db} }

func (t *Transaction) CreateTable(meta catalog.TableMeta) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if _, exists := t.db.tables[meta.Name]; exists {
		return sql.ErrStorage.New("table " + meta.Name + " already exists")
	}
	m := meta
	t.db.tables[meta.Name] = &table{meta: &m}
	return nil
}

func (t *Transaction) DropTable(name string) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if _, exists := t.db.tables[name]; !exists {
		return sql.ErrStorage.New("table " + name + " does not exist")
	}
	delete(t.db.tables, name)
	return nil
}

func (t *Transaction) Read(name string, limit *int, columns []string, withPK bool) (sql.RowIter, error) {
	t.db.mu.Lock()
	tbl, ok := t.db.tables[name]
	if !ok {
		t.db.mu.Unlock()
		return nil, sql.ErrStorage.New("table " + name + " does not exist")
	}
	rows := make([]sql.Row, len(tbl.rows))
	copy(rows, tbl.rows)
	meta := tbl.meta
	t.db.mu.Unlock()

	rows = projectColumns(meta, rows, columns)
	if limit != nil && *limit < len(rows) {
		rows = rows[:*limit]
	}
	return sql.RowsToRowIter(rows...), nil
}

func (t *Transaction) ReadByIndex(name string, index catalog.IndexMeta, rng *rangeutil.Range) (sql.RowIter, error) {
	t.db.mu.Lock()
	tbl, ok := t.db.tables[name]
	if !ok {
		t.db.mu.Unlock()
		return nil, sql.ErrStorage.New("table " + name + " does not exist")
	}
	rows := make([]sql.Row, len(tbl.rows))
	copy(rows, tbl.rows)
	meta := tbl.meta
	t.db.mu.Unlock()

	if rng == nil || len(index.Columns) == 0 {
		return sql.RowsToRowIter(rows...), nil
	}
	pos := columnPosition(meta, index.Columns[0])
	if pos < 0 {
		return sql.RowsToRowIter(rows...), nil
	}
	var out []sql.Row
	for _, row := range rows {
		v, ok := row[pos].(types.Value)
		if !ok {
			continue
		}
		if inRange(v, rng) {
			out = append(out, row)
		}
	}
	return sql.RowsToRowIter(out...), nil
}

func inRange(v types.Value, rng *rangeutil.Range) bool {
	if rng.Low.Value != nil {
		cmp, err := types.Compare(v, *rng.Low.Value)
		if err != nil {
			return false
		}
		if cmp < 0 || (cmp == 0 && !rng.Low.Inclusive) {
			return false
		}
	}
	if rng.High.Value != nil {
		cmp, err := types.Compare(v, *rng.High.Value)
		if err != nil {
			return false
		}
		if cmp > 0 || (cmp == 0 && !rng.High.Inclusive) {
			return false
		}
	}
	return true
}

func (t *Transaction) PointRead(name string, pk types.Value) (sql.Row, bool, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	tbl, ok := t.db.tables[name]
	if !ok {
		return nil, false, sql.ErrStorage.New("table " + name + " does not exist")
	}
	pkPos := -1
	for i, c := range tbl.meta.Columns {
		if c.Column.PrimaryKey {
			pkPos = i
			break
		}
	}
	if pkPos < 0 {
		return nil, false, nil
	}
	for _, row := range tbl.rows {
		v, ok := row[pkPos].(types.Value)
		if ok && v.Equal(pk) {
			return row.Copy(), true, nil
		}
	}
	return nil, false, nil
}

func (t *Transaction) AppendTuple(name string, row sql.Row) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	tbl, ok := t.db.tables[name]
	if !ok {
		return sql.ErrStorage.New("table " + name + " does not exist")
	}
	tbl.rows = append(tbl.rows, row.Copy())
	return nil
}

func (t *Transaction) UpdateTuple(name string, old, new sql.Row) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	tbl, ok := t.db.tables[name]
	if !ok {
		return sql.ErrStorage.New("table " + name + " does not exist")
	}
	for i, row := range tbl.rows {
		if rowEqual(row, old) {
			tbl.rows[i] = new.Copy()
			return nil
		}
	}
	return sql.ErrStorage.New("update target row not found")
}

func (t *Transaction) DeleteTuple(name string, row sql.Row) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	tbl, ok := t.db.tables[name]
	if !ok {
		return sql.ErrStorage.New("table " + name + " does not exist")
	}
	for i, r := range tbl.rows {
		if rowEqual(r, row) {
			tbl.rows = append(tbl.rows[:i], tbl.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrStorage.New("delete target row not found")
}

func (t *Transaction) Commit() error   { return nil }
func (t *Transaction) Rollback() error { return nil }

func rowEqual(a, b sql.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		av, aok := a[i].(types.Value)
		bv, bok := b[i].(types.Value)
		if aok && bok {
			if !av.Equal(bv) {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func columnPosition(meta *catalog.TableMeta, name string) int {
	for i, c := range meta.Columns {
		if c.Column.Name == name {
			return i
		}
	}
	return -1
}

func projectColumns(meta *catalog.TableMeta, rows []sql.Row, columns []string) []sql.Row {
	if columns == nil {
		return rows
	}
	positions := make([]int, len(columns))
	for i, name := range columns {
		positions[i] = columnPosition(meta, name)
	}
	out := make([]sql.Row, len(rows))
	for i, row := range rows {
		projected := make(sql.Row, len(positions))
		for j, pos := range positions {
			if pos >= 0 && pos < len(row) {
				projected[j] = row[pos]
			}
		}
		out[i] = projected
	}
	return out
}
