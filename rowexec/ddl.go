package rowexec

import (
	"fmt"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage"
)

func buildCreateTable(tx storage.Transaction, cat catalog.Catalog, c *plan.CreateTable) (sql.RowIter, error) {
	if _, ok := cat.Table(c.Table); ok {
		if c.IfNotExists {
			return rowsAffected(0), nil
		}
		return nil, sql.ErrStorage.New(fmt.Sprintf("table %s already exists", c.Table))
	}
	mutable, ok := cat.(catalog.MutableCatalog)
	if !ok {
		return nil, sql.ErrUnsupportedStmt.New("catalog does not support CREATE TABLE")
	}
	columns := make([]catalog.ColumnMeta, len(c.Columns))
	var pk *catalog.IndexMeta
	for i, col := range c.Columns {
		columns[i] = catalog.ColumnMeta{ID: catalog.ColumnID(i + 1), Column: col}
		if col.PrimaryKey {
			pk = &catalog.IndexMeta{Name: c.Table + "_pk", Table: c.Table, Columns: []string{col.Name}, Unique: true, Primary: true}
		}
	}
	meta := &catalog.TableMeta{Name: c.Table, Columns: columns, PK: pk}
	if pk != nil {
		meta.Indexes = append(meta.Indexes, *pk)
	}
	if err := tx.CreateTable(*meta); err != nil {
		return nil, err
	}
	mutable.AddTable(meta)
	return rowsAffected(0), nil
}

func buildDropTable(tx storage.Transaction, cat catalog.Catalog, d *plan.DropTable) (sql.RowIter, error) {
	if _, ok := cat.Table(d.Table); !ok {
		if d.IfExists {
			return rowsAffected(0), nil
		}
		return nil, sql.ErrCatalogMiss.New(d.Table)
	}
	mutable, ok := cat.(catalog.MutableCatalog)
	if !ok {
		return nil, sql.ErrUnsupportedStmt.New("catalog does not support DROP TABLE")
	}
	if err := tx.DropTable(d.Table); err != nil {
		return nil, err
	}
	mutable.RemoveTable(d.Table)
	return rowsAffected(0), nil
}

// buildAlterTable mutates the catalog's TableMeta in place. No storage.
// Transaction method exists for column-level DDL, so storage is not told of
// the change: rows already written are not rewritten and keep the width
// they were inserted with.
func buildAlterTable(cat catalog.Catalog, a *plan.AlterTable) (sql.RowIter, error) {
	table, ok := cat.Table(a.Table)
	if !ok {
		return nil, sql.ErrCatalogMiss.New(a.Table)
	}
	switch a.Kind {
	case plan.AlterAddColumn:
		nextID := catalog.ColumnID(len(table.Columns) + 1)
		table.Columns = append(table.Columns, catalog.ColumnMeta{ID: nextID, Column: a.Column})
	case plan.AlterDropColumn:
		out := table.Columns[:0]
		for _, c := range table.Columns {
			if c.Column.Name != a.Name {
				out = append(out, c)
			}
		}
		table.Columns = out
	default:
		return nil, sql.ErrUnsupportedStmt.New("unknown ALTER TABLE kind")
	}
	return rowsAffected(0), nil
}

func buildCreateIndex(cat catalog.Catalog, c *plan.CreateIndex) (sql.RowIter, error) {
	table, ok := cat.Table(c.Index.Table)
	if !ok {
		return nil, sql.ErrCatalogMiss.New(c.Index.Table)
	}
	table.Indexes = append(table.Indexes, c.Index)
	return rowsAffected(0), nil
}
