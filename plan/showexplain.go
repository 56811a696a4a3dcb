package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// ShowKind enumerates the metadata-introspection statements Show serves.
type ShowKind uint8

const (
	ShowTables ShowKind = iota
	ShowDatabases
	ShowCreateTable
	ShowIndexes
)

// Show is the Operator::Show variant: metadata introspection with no
// underlying table scan.
type Show struct {
	noChildren
	Kind   ShowKind
	Target string // table name, for ShowCreateTable/ShowIndexes
	Output sql.Schema
}

func NewShow(kind ShowKind, target string, output sql.Schema) *Show {
	return &Show{Kind: kind, Target: target, Output: output}
}

func (s *Show) Schema() sql.Schema { return s.Output }

func (s *Show) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Show takes no children")
	}
	return s, nil
}

func (s *Show) String() string { return fmt.Sprintf("Show(%s)", s.Target) }

// Describe is the Operator::Describe variant: column metadata for a single
// table (SQL's DESCRIBE/DESC).
type Describe struct {
	noChildren
	Table  string
	Output sql.Schema
}

func NewDescribe(table string, output sql.Schema) *Describe {
	return &Describe{Table: table, Output: output}
}

func (d *Describe) Schema() sql.Schema { return d.Output }

func (d *Describe) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Describe takes no children")
	}
	return d, nil
}

func (d *Describe) String() string { return fmt.Sprintf("Describe(%s)", d.Table) }

// Explain is the Operator::Explain variant: wraps a child plan whose
// structure (pre- or post-optimization) is rendered instead of executed.
type Explain struct {
	Analyze bool
	Child   sql.Node
}

func NewExplain(child sql.Node, analyze bool) *Explain {
	return &Explain{Analyze: analyze, Child: child}
}

func (e *Explain) Schema() sql.Schema {
	return sql.Schema{{Name: "plan", Type: types.Varchar, Nullable: false}}
}

func (e *Explain) Children() []sql.Node { return []sql.Node{e.Child} }

func (e *Explain) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Explain takes exactly one child")
	}
	return &Explain{Analyze: e.Analyze, Child: children[0]}, nil
}

func (e *Explain) String() string { return fmt.Sprintf("Explain(%s)", e.Child.String()) }
