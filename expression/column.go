package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// ColumnRef is the ScalarExpression::ColumnRef variant: a handle to a
// column's catalog entry, interchangeable with its ColumnSummary for
// equality (spec.md GLOSSARY). It identifies a column but, unlike
// Reference, carries no positional information into any particular
// operator's output schema — that binding happens once, via TryReference,
// immediately before execution.
type ColumnRef struct {
	ID       catalog.ColumnID
	Table    string
	Name     string
	Ty       types.LogicalType
	IsNull   bool
	IsPKPart bool
}

func NewColumnRef(id catalog.ColumnID, table, name string, ty types.LogicalType, nullable bool) *ColumnRef {
	return &ColumnRef{ID: id, Table: table, Name: name, Ty: ty, IsNull: nullable}
}

func (c *ColumnRef) Summary() sql.ColumnSummary {
	return sql.ColumnSummary{Name: c.Name, Relation: c.Table}
}

// OutputName satisfies plan.namedExpression so a projected bare column keeps
// its own name and relation in the output schema instead of its String().
func (c *ColumnRef) OutputName() (name, relation string) { return c.Name, c.Table }

func (c *ColumnRef) Type() types.LogicalType { return c.Ty }
func (c *ColumnRef) Nullable() bool          { return c.IsNull }
func (c *ColumnRef) Children() []sql.Expression { return nil }

func (c *ColumnRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: ColumnRef takes no children")
	}
	return c, nil
}

// Eval always fails: per spec.md's invariants, a bare ColumnRef must be
// resolved to a Reference (via TryReference) before a tree is executed.
// Observing one during evaluation is an invariant violation, not a runtime
// data condition.
func (c *ColumnRef) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrInvariantViolation.New(fmt.Sprintf("unresolved column reference %s.%s reached Eval", c.Table, c.Name))
}

func (c *ColumnRef) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// Reference is the ScalarExpression::Reference variant produced by
// TryReference: it wraps the original expression (for display/analysis)
// and the resolved position in the immediate child operator's output
// schema, so the executor never name-looks-up columns during tuple
// evaluation. Per spec.md invariant (ii), this position must be
// re-resolved by column pruning whenever it changes the child's schema.
type Reference struct {
	Expr sql.Expression
	Pos  int
}

func NewReference(expr sql.Expression, pos int) *Reference {
	return &Reference{Expr: expr, Pos: pos}
}

func (r *Reference) Type() types.LogicalType    { return r.Expr.Type() }
func (r *Reference) Nullable() bool             { return r.Expr.Nullable() }
func (r *Reference) Children() []sql.Expression { return nil }

func (r *Reference) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: Reference takes no children")
	}
	return r, nil
}

func (r *Reference) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if r.Pos < 0 || r.Pos >= len(row) {
		return nil, sql.ErrInvariantViolation.New(fmt.Sprintf("reference position %d out of bounds for row of length %d", r.Pos, len(row)))
	}
	return row[r.Pos], nil
}

func (r *Reference) String() string {
	return fmt.Sprintf("%s@%d", r.Expr.String(), r.Pos)
}

// Empty is the transient placeholder ScalarExpression::Empty: it must only
// ever exist for the duration of a single in-place rewrite (swapped in,
// mutated around, swapped back out in the same stack frame). Any public
// traversal that observes it is a bug, per spec.md invariant (i).
type Empty struct{}

func (Empty) Type() types.LogicalType    { return types.Invalid }
func (Empty) Nullable() bool             { return true }
func (Empty) Children() []sql.Expression { return nil }
func (Empty) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return Empty{}, nil
}
func (Empty) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrInvariantViolation.New("Empty placeholder reached Eval")
}
func (Empty) String() string { return "<empty>" }
