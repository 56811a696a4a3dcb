package plan

import (
	"fmt"
	"strings"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
)

// Scan is the Operator::Scan variant: a read of a base table, with an
// optional PhysicalOption set by the optimizer choosing between a
// sequential scan and an index scan.
type Scan struct {
	noChildren
	Table    *catalog.TableMeta
	Columns  []string // projected column names; nil means all
	Limit    *int
	Physical PhysicalOption
}

func NewScan(table *catalog.TableMeta) *Scan {
	return &Scan{Table: table, Physical: PhysicalSeqScan{}}
}

func (s *Scan) Schema() sql.Schema {
	if s.Columns == nil {
		return s.Table.Schema()
	}
	full := s.Table.Schema()
	out := make(sql.Schema, 0, len(s.Columns))
	for _, name := range s.Columns {
		for _, c := range full {
			if c.Name == name {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (s *Scan) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Scan takes no children")
	}
	return s, nil
}

// WithColumns returns a copy of s projecting only the named columns, the
// rewrite column pruning applies directly to a Scan node.
func (s *Scan) WithColumns(columns []string) *Scan {
	return &Scan{Table: s.Table, Columns: columns, Limit: s.Limit, Physical: s.Physical}
}

func (s *Scan) WithPhysical(opt PhysicalOption) *Scan {
	return &Scan{Table: s.Table, Columns: s.Columns, Limit: s.Limit, Physical: opt}
}

func (s *Scan) String() string {
	if idx, ok := s.Physical.(PhysicalIndexScan); ok {
		return fmt.Sprintf("IndexScan(%s via %s)", s.Table.Name, idx.Index)
	}
	return fmt.Sprintf("SeqScan(%s)", s.Table.Name)
}

// FunctionScan is the Operator::FunctionScan variant: a table-valued
// function invocation (e.g. a set-returning builtin) standing in for a base
// relation.
type FunctionScan struct {
	noChildren
	Name   string
	Args   []sql.Expression
	Output sql.Schema
}

func NewFunctionScan(name string, args []sql.Expression, output sql.Schema) *FunctionScan {
	return &FunctionScan{Name: name, Args: args, Output: output}
}

func (f *FunctionScan) Schema() sql.Schema { return f.Output }

func (f *FunctionScan) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: FunctionScan takes no children")
	}
	return f, nil
}

func (f *FunctionScan) Expressions() []sql.Expression { return f.Args }

func (f *FunctionScan) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	return &FunctionScan{Name: f.Name, Args: exprs, Output: f.Output}, nil
}

func (f *FunctionScan) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("FunctionScan(%s(%s))", f.Name, strings.Join(parts, ", "))
}
