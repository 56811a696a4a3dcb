package sql

import "github.com/kvsql/kvsql/types"

// Expression is the ScalarExpression interface of spec.md §3: every
// variant of the expression tree (constant, column reference, alias,
// binary op, aggregate call, ...) implements it as its own Go type in
// package expression.
type Expression interface {
	// Type returns this expression's LogicalType. Per spec.md §4.1,
	// return-type inference is total and pure.
	Type() types.LogicalType
	// Nullable reports whether this expression may evaluate to NULL.
	Nullable() bool
	// Eval evaluates the expression against a row using the row's own
	// schema-relative positions (Reference nodes index directly into row).
	Eval(ctx *Context, row Row) (interface{}, error)
	// Children returns the expression's immediate child expressions, in a
	// stable order matching WithChildren's positional contract.
	Children() []Expression
	// WithChildren returns a copy of this expression with its children
	// replaced. len(children) must equal len(Children()).
	WithChildren(children ...Expression) (Expression, error)
	String() string
}

// Expressioner is implemented by Node variants that carry scalar
// expressions (Filter, Project, Sort, Join, Aggregate, ...), letting
// generic rewrites (see package transform) reach into an operator's
// expression list without a type switch over every operator kind.
type Expressioner interface {
	Expressions() []Expression
	WithExpressions(exprs ...Expression) (Node, error)
}

// Node is the LogicalPlan operator interface of spec.md §3: every operator
// variant (scan, filter, project, join, ...) implements it as its own Go
// type in package plan. Node is purely structural — spec.md §4.3 places
// physical dispatch in a top-level build_read/build_write pair (package
// rowexec), not on the operator itself, so that the same logical tree can
// be rewritten by the optimizer without any executor-side state leaking
// into it.
type Node interface {
	Schema() Schema
	Children() []Node
	// WithChildren returns a copy of this node with its children replaced.
	WithChildren(children ...Node) (Node, error)
	String() string
}
