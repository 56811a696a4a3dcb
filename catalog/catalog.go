// Package catalog is the column-reference registry and table/index
// metadata store spec.md §6 treats as an external collaborator. It is
// implemented here only so the query-processing core has something
// concrete to bind against in tests and in the example engine.
package catalog

import "github.com/kvsql/kvsql/sql"

// ColumnID is a stable per-plan identifier for a column, used to avoid the
// reference-counted ColumnRef <-> TableMeta cycles spec.md §9 warns about:
// expressions hold a ColumnID (a plain integer) instead of a pointer back
// into the catalog.
type ColumnID uint32

// ColumnMeta describes one column's catalog entry.
type ColumnMeta struct {
	ID     ColumnID
	Column sql.Column
}

// Summary returns the ColumnSummary identity for this column.
func (c ColumnMeta) Summary() sql.ColumnSummary { return c.Column.Summary() }

// IndexMeta describes a secondary or primary index usable by IndexScan.
type IndexMeta struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Primary bool
}

// TableMeta is the catalog's view of a table: its schema and indexes.
type TableMeta struct {
	Name    string
	Columns []ColumnMeta
	Indexes []IndexMeta
	PK      *IndexMeta
}

func (t *TableMeta) Schema() sql.Schema {
	schema := make(sql.Schema, len(t.Columns))
	for i := range t.Columns {
		c := t.Columns[i].Column
		schema[i] = &c
	}
	return schema
}

// Catalog exposes table lookup and column-id resolution, per spec.md §6.
type Catalog interface {
	Table(name string) (*TableMeta, bool)
	ColumnIDByName(table, column string) (ColumnID, bool)
	// Tables lists every table name currently registered, in no particular
	// order. Used by the SHOW TABLES producer.
	Tables() []string
}

// MutableCatalog is an optional capability a Catalog implementation can
// offer so DDL producers (CREATE/DROP TABLE) can keep the catalog in sync
// with storage, mirroring the optional-interface pattern the teacher uses
// for sql.TableCreator/sql.TableDropper rather than forcing every Catalog
// to support mutation.
type MutableCatalog interface {
	Catalog
	AddTable(meta *TableMeta)
	RemoveTable(name string)
}

// memCatalog is a minimal in-process Catalog implementation.
type memCatalog struct {
	tables map[string]*TableMeta
}

func NewCatalog() *memCatalog {
	return &memCatalog{tables: make(map[string]*TableMeta)}
}

func (c *memCatalog) AddTable(meta *TableMeta) {
	c.tables[meta.Name] = meta
}

func (c *memCatalog) RemoveTable(name string) {
	delete(c.tables, name)
}

func (c *memCatalog) Table(name string) (*TableMeta, bool) {
	t, ok := c.tables[name]
	return t, ok
}

func (c *memCatalog) Tables() []string {
	out := make([]string, 0, len(c.tables))
	for name := range c.tables {
		out = append(out, name)
	}
	return out
}

func (c *memCatalog) ColumnIDByName(table, column string) (ColumnID, bool) {
	t, ok := c.tables[table]
	if !ok {
		return 0, false
	}
	for _, cm := range t.Columns {
		if cm.Column.Name == column {
			return cm.ID, true
		}
	}
	return 0, false
}
