package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

var dmlResultSchema = sql.Schema{{Name: "rows_affected", Type: types.Int64}}

// Insert is the Operator::Insert DML variant: rows sourced from Child
// (typically a Values node) written into Table.
type Insert struct {
	Table   *catalog.TableMeta
	Columns []string
	Child   sql.Node
}

func NewInsert(table *catalog.TableMeta, columns []string, child sql.Node) *Insert {
	return &Insert{Table: table, Columns: columns, Child: child}
}

func (i *Insert) Schema() sql.Schema   { return dmlResultSchema }
func (i *Insert) Children() []sql.Node { return []sql.Node{i.Child} }

func (i *Insert) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Insert takes exactly one child")
	}
	return &Insert{Table: i.Table, Columns: i.Columns, Child: children[0]}, nil
}

func (i *Insert) String() string { return fmt.Sprintf("Insert(%s)", i.Table.Name) }

// Update is the Operator::Update DML variant: for every row read from
// Child, evaluates Assignments (new value expressions keyed by column
// name) and writes the result back to Table.
type Update struct {
	Table       *catalog.TableMeta
	Assignments map[string]sql.Expression
	Child       sql.Node
}

func NewUpdate(table *catalog.TableMeta, assignments map[string]sql.Expression, child sql.Node) *Update {
	return &Update{Table: table, Assignments: assignments, Child: child}
}

func (u *Update) Schema() sql.Schema   { return dmlResultSchema }
func (u *Update) Children() []sql.Node { return []sql.Node{u.Child} }

func (u *Update) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Update takes exactly one child")
	}
	return &Update{Table: u.Table, Assignments: u.Assignments, Child: children[0]}, nil
}

// assignmentOrder fixes a stable iteration order over Assignments so
// Expressions()/WithExpressions() round-trip consistently.
func (u *Update) assignmentOrder() []string {
	cols := make([]string, 0, len(u.Assignments))
	for _, c := range u.Table.Columns {
		if _, ok := u.Assignments[c.Column.Name]; ok {
			cols = append(cols, c.Column.Name)
		}
	}
	return cols
}

func (u *Update) Expressions() []sql.Expression {
	order := u.assignmentOrder()
	out := make([]sql.Expression, len(order))
	for i, name := range order {
		out[i] = u.Assignments[name]
	}
	return out
}

func (u *Update) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	order := u.assignmentOrder()
	if len(exprs) != len(order) {
		return nil, fmt.Errorf("plan: Update.WithExpressions arity mismatch")
	}
	assignments := make(map[string]sql.Expression, len(order))
	for i, name := range order {
		assignments[name] = exprs[i]
	}
	return &Update{Table: u.Table, Assignments: assignments, Child: u.Child}, nil
}

func (u *Update) String() string { return fmt.Sprintf("Update(%s)", u.Table.Name) }

// Delete is the Operator::Delete DML variant: deletes every row read from
// Child out of Table.
type Delete struct {
	Table *catalog.TableMeta
	Child sql.Node
}

func NewDelete(table *catalog.TableMeta, child sql.Node) *Delete {
	return &Delete{Table: table, Child: child}
}

func (d *Delete) Schema() sql.Schema   { return dmlResultSchema }
func (d *Delete) Children() []sql.Node { return []sql.Node{d.Child} }

func (d *Delete) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Delete takes exactly one child")
	}
	return &Delete{Table: d.Table, Child: children[0]}, nil
}

func (d *Delete) String() string { return fmt.Sprintf("Delete(%s)", d.Table.Name) }

// Analyze is the Operator::Analyze DML-adjacent variant: recomputes
// statistics for Table by scanning Child (typically a full Scan of Table).
type Analyze struct {
	Table *catalog.TableMeta
	Child sql.Node
}

func NewAnalyze(table *catalog.TableMeta, child sql.Node) *Analyze {
	return &Analyze{Table: table, Child: child}
}

func (a *Analyze) Schema() sql.Schema   { return dmlResultSchema }
func (a *Analyze) Children() []sql.Node { return []sql.Node{a.Child} }

func (a *Analyze) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Analyze takes exactly one child")
	}
	return &Analyze{Table: a.Table, Child: children[0]}, nil
}

func (a *Analyze) String() string { return fmt.Sprintf("Analyze(%s)", a.Table.Name) }

// Copy is the Operator::Copy variant: bulk load/unload between a table and
// an external source/sink (e.g. a CSV file), named only per spec.md (the
// transport itself is out of scope).
type Copy struct {
	noChildren
	Table *catalog.TableMeta
	Path  string
	Into  bool // true: file -> table ("COPY ... FROM"); false: table -> file
}

func NewCopy(table *catalog.TableMeta, path string, into bool) *Copy {
	return &Copy{Table: table, Path: path, Into: into}
}

func (c *Copy) Schema() sql.Schema { return dmlResultSchema }

func (c *Copy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Copy takes no children")
	}
	return c, nil
}

func (c *Copy) String() string { return fmt.Sprintf("Copy(%s)", c.Table.Name) }
