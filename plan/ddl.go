package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
)

// CreateTable is the Operator::DDL(CreateTable) variant.
type CreateTable struct {
	noChildren
	Table       string
	Columns     []sql.Column
	IfNotExists bool
}

func NewCreateTable(table string, columns []sql.Column, ifNotExists bool) *CreateTable {
	return &CreateTable{Table: table, Columns: columns, IfNotExists: ifNotExists}
}

func (c *CreateTable) Schema() sql.Schema { return dmlResultSchema }

func (c *CreateTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: CreateTable takes no children")
	}
	return c, nil
}

func (c *CreateTable) String() string { return fmt.Sprintf("CreateTable(%s)", c.Table) }

// DropTable is the Operator::DDL(DropTable) variant.
type DropTable struct {
	noChildren
	Table    string
	IfExists bool
}

func NewDropTable(table string, ifExists bool) *DropTable {
	return &DropTable{Table: table, IfExists: ifExists}
}

func (d *DropTable) Schema() sql.Schema { return dmlResultSchema }

func (d *DropTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: DropTable takes no children")
	}
	return d, nil
}

func (d *DropTable) String() string { return fmt.Sprintf("DropTable(%s)", d.Table) }

// AlterTableKind enumerates the subset of ALTER TABLE spec.md supports:
// only ADD COLUMN and DROP COLUMN. Any other ALTER TABLE form is rejected
// upstream (by the binder) with an UnsupportedStmt error, per spec.md §7.
type AlterTableKind uint8

const (
	AlterAddColumn AlterTableKind = iota
	AlterDropColumn
)

// AlterTable is the Operator::DDL(AlterTable) variant.
type AlterTable struct {
	noChildren
	Table  string
	Kind   AlterTableKind
	Column sql.Column // meaningful for AlterAddColumn
	Name   string     // column name, for AlterDropColumn
}

func NewAlterAddColumn(table string, column sql.Column) *AlterTable {
	return &AlterTable{Table: table, Kind: AlterAddColumn, Column: column}
}

func NewAlterDropColumn(table, column string) *AlterTable {
	return &AlterTable{Table: table, Kind: AlterDropColumn, Name: column}
}

func (a *AlterTable) Schema() sql.Schema { return dmlResultSchema }

func (a *AlterTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: AlterTable takes no children")
	}
	return a, nil
}

func (a *AlterTable) String() string { return fmt.Sprintf("AlterTable(%s)", a.Table) }

// CreateIndex is the Operator::DDL(CreateIndex) variant.
type CreateIndex struct {
	noChildren
	Index catalog.IndexMeta
}

func NewCreateIndex(index catalog.IndexMeta) *CreateIndex {
	return &CreateIndex{Index: index}
}

func (c *CreateIndex) Schema() sql.Schema { return dmlResultSchema }

func (c *CreateIndex) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: CreateIndex takes no children")
	}
	return c, nil
}

func (c *CreateIndex) String() string { return fmt.Sprintf("CreateIndex(%s)", c.Index.Name) }
