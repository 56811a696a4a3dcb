package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
)

// Filter is the Operator::Filter variant: a single boolean predicate over
// its child's rows. IsOptimized marks that SimplifyFilter has already
// rewritten Predicate, so repeated batch passes don't re-walk it.
type Filter struct {
	Predicate   sql.Expression
	Child       sql.Node
	IsOptimized bool
}

func NewFilter(predicate sql.Expression, child sql.Node) *Filter {
	return &Filter{Predicate: predicate, Child: child}
}

func (f *Filter) Schema() sql.Schema   { return f.Child.Schema() }
func (f *Filter) Children() []sql.Node { return []sql.Node{f.Child} }

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Filter takes exactly one child")
	}
	return &Filter{Predicate: f.Predicate, Child: children[0], IsOptimized: f.IsOptimized}, nil
}

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Predicate} }

func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, fmt.Errorf("plan: Filter takes exactly one expression")
	}
	return &Filter{Predicate: exprs[0], Child: f.Child, IsOptimized: f.IsOptimized}, nil
}

func (f *Filter) String() string { return fmt.Sprintf("Filter(%s)", f.Predicate.String()) }

// Project is the Operator::Project variant: a list of output expressions
// evaluated over the child's rows.
type Project struct {
	Projections []sql.Expression
	Child       sql.Node
}

func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{Projections: projections, Child: child}
}

// namedExpression is satisfied by expression.Alias and expression.ColumnRef
// without package plan importing package expression (which imports plan's
// sibling package catalog and would create a cycle through sql).
type namedExpression interface {
	OutputName() (name, relation string)
}

func (p *Project) Schema() sql.Schema {
	out := make(sql.Schema, len(p.Projections))
	for i, e := range p.Projections {
		name, source := e.String(), ""
		if n, ok := e.(namedExpression); ok {
			name, source = n.OutputName()
		}
		out[i] = &sql.Column{Name: name, Source: source, Type: e.Type(), Nullable: e.Nullable()}
	}
	return out
}

func (p *Project) Children() []sql.Node { return []sql.Node{p.Child} }

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Project takes exactly one child")
	}
	return &Project{Projections: p.Projections, Child: children[0]}, nil
}

func (p *Project) Expressions() []sql.Expression { return p.Projections }

func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	return &Project{Projections: exprs, Child: p.Child}, nil
}

func (p *Project) String() string { return "Project" }
