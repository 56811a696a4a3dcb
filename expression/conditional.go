package expression

import (
	"fmt"
	"strings"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// IfExpr is the ScalarExpression::If variant: IF(cond, then, els).
type IfExpr struct {
	Cond, Then, Else sql.Expression
}

func NewIf(cond, then, els sql.Expression) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: els}
}

func (i *IfExpr) Type() types.LogicalType {
	return types.MaxLogicalType(i.Then.Type(), i.Else.Type())
}
func (i *IfExpr) Nullable() bool { return i.Then.Nullable() || i.Else.Nullable() }
func (i *IfExpr) Children() []sql.Expression {
	return []sql.Expression{i.Cond, i.Then, i.Else}
}

func (i *IfExpr) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("expression: If takes exactly three children")
	}
	return &IfExpr{Cond: children[0], Then: children[1], Else: children[2]}, nil
}

func (i *IfExpr) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	cv, err := i.Cond.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	cond, ok := cv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("IF condition did not evaluate to a types.Value")
	}
	b, _ := cond.Bool()
	if !cond.IsNull() && b {
		return i.Then.Eval(ctx, row)
	}
	return i.Else.Eval(ctx, row)
}

func (i *IfExpr) String() string {
	return fmt.Sprintf("IF(%s, %s, %s)", i.Cond.String(), i.Then.String(), i.Else.String())
}

// IfNull is the ScalarExpression::IfNull variant: IFNULL(expr, fallback).
type IfNull struct {
	Expr, Fallback sql.Expression
}

func NewIfNull(expr, fallback sql.Expression) *IfNull {
	return &IfNull{Expr: expr, Fallback: fallback}
}

func (n *IfNull) Type() types.LogicalType {
	return types.MaxLogicalType(n.Expr.Type(), n.Fallback.Type())
}
func (n *IfNull) Nullable() bool             { return n.Fallback.Nullable() }
func (n *IfNull) Children() []sql.Expression { return []sql.Expression{n.Expr, n.Fallback} }

func (n *IfNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: IfNull takes exactly two children")
	}
	return &IfNull{Expr: children[0], Fallback: children[1]}, nil
}

func (n *IfNull) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := n.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("IFNULL operand did not evaluate to a types.Value")
	}
	if !val.IsNull() {
		return val, nil
	}
	return n.Fallback.Eval(ctx, row)
}

func (n *IfNull) String() string {
	return fmt.Sprintf("IFNULL(%s, %s)", n.Expr.String(), n.Fallback.String())
}

// NullIf is the ScalarExpression::NullIf variant: NULLIF(a, b) — NULL when
// a = b, else a.
type NullIf struct {
	A, B sql.Expression
}

func NewNullIf(a, b sql.Expression) *NullIf { return &NullIf{A: a, B: b} }

func (n *NullIf) Type() types.LogicalType    { return n.A.Type() }
func (n *NullIf) Nullable() bool             { return true }
func (n *NullIf) Children() []sql.Expression { return []sql.Expression{n.A, n.B} }

func (n *NullIf) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: NullIf takes exactly two children")
	}
	return &NullIf{A: children[0], B: children[1]}, nil
}

func (n *NullIf) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	av, err := n.A.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	a, ok := av.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("NULLIF first operand did not evaluate to a types.Value")
	}
	bv, err := n.B.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	b, ok := bv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("NULLIF second operand did not evaluate to a types.Value")
	}
	if !a.IsNull() && !b.IsNull() {
		cmp, err := types.Compare(a, b)
		if err != nil {
			return nil, sql.ErrTypeMismatch.New(err.Error())
		}
		if cmp == 0 {
			return types.Null(a.Logical), nil
		}
	}
	return a, nil
}

func (n *NullIf) String() string {
	return fmt.Sprintf("NULLIF(%s, %s)", n.A.String(), n.B.String())
}

// Coalesce is the ScalarExpression::Coalesce variant: the first non-NULL
// argument, or NULL if all are NULL.
type Coalesce struct {
	Args []sql.Expression
}

func NewCoalesce(args []sql.Expression) *Coalesce { return &Coalesce{Args: args} }

func (c *Coalesce) Type() types.LogicalType {
	ty := types.SqlNull
	for _, a := range c.Args {
		ty = types.MaxLogicalType(ty, a.Type())
	}
	return ty
}

func (c *Coalesce) Nullable() bool {
	for _, a := range c.Args {
		if !a.Nullable() {
			return false
		}
	}
	return true
}

func (c *Coalesce) Children() []sql.Expression { return c.Args }

func (c *Coalesce) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &Coalesce{Args: children}, nil
}

func (c *Coalesce) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	for _, a := range c.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		val, ok := v.(types.Value)
		if !ok {
			return nil, sql.ErrTypeMismatch.New("COALESCE argument did not evaluate to a types.Value")
		}
		if !val.IsNull() {
			return val, nil
		}
	}
	return types.Null(c.Type()), nil
}

func (c *Coalesce) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("COALESCE(%s)", strings.Join(parts, ", "))
}

// WhenClause is a single WHEN cond THEN result pair of a CaseWhen.
type WhenClause struct {
	Cond, Result sql.Expression
}

// CaseWhen is the ScalarExpression::CaseWhen variant. A nil Else evaluates
// to NULL when no branch matches.
type CaseWhen struct {
	Branches []WhenClause
	Else     sql.Expression
}

func NewCaseWhen(branches []WhenClause, els sql.Expression) *CaseWhen {
	return &CaseWhen{Branches: branches, Else: els}
}

func (c *CaseWhen) Type() types.LogicalType {
	ty := types.SqlNull
	for _, b := range c.Branches {
		ty = types.MaxLogicalType(ty, b.Result.Type())
	}
	if c.Else != nil {
		ty = types.MaxLogicalType(ty, c.Else.Type())
	}
	return ty
}

func (c *CaseWhen) Nullable() bool { return true }

func (c *CaseWhen) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(c.Branches)*2+1)
	for _, b := range c.Branches {
		children = append(children, b.Cond, b.Result)
	}
	if c.Else != nil {
		children = append(children, c.Else)
	}
	return children
}

func (c *CaseWhen) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	hasElse := len(children)%2 == 1
	n := len(children) / 2
	branches := make([]WhenClause, n)
	for i := 0; i < n; i++ {
		branches[i] = WhenClause{Cond: children[2*i], Result: children[2*i+1]}
	}
	var els sql.Expression
	if hasElse {
		els = children[len(children)-1]
	}
	return &CaseWhen{Branches: branches, Else: els}, nil
}

func (c *CaseWhen) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	for _, b := range c.Branches {
		cv, err := b.Cond.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		cond, ok := cv.(types.Value)
		if !ok {
			return nil, sql.ErrTypeMismatch.New("CASE condition did not evaluate to a types.Value")
		}
		if cond.IsNull() {
			continue
		}
		if matched, _ := cond.Bool(); matched {
			return b.Result.Eval(ctx, row)
		}
	}
	if c.Else != nil {
		return c.Else.Eval(ctx, row)
	}
	return types.Null(c.Type()), nil
}

func (c *CaseWhen) String() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range c.Branches {
		fmt.Fprintf(&sb, " WHEN %s THEN %s", b.Cond.String(), b.Result.String())
	}
	if c.Else != nil {
		fmt.Fprintf(&sb, " ELSE %s", c.Else.String())
	}
	sb.WriteString(" END")
	return sb.String()
}
