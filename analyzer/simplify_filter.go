package analyzer

import (
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/transform"
	"github.com/kvsql/kvsql/types"
)

// SimplifyFilter is the predicate-simplification rule of spec.md §4.2: NOT
// pushdown across comparators, unary-on-column arithmetic rearrangement,
// and expansion of IN/BETWEEN into the AND/OR trees the range detacher can
// read bounds out of. Grounded in original_source/expression/simplify.rs's
// fix_expr/fix_unary/fix_binary.
type SimplifyFilter struct{}

func (SimplifyFilter) Name() string { return "SimplifyFilter" }

func (SimplifyFilter) Pattern() Pattern {
	return Pattern{
		OperatorOK: func(n sql.Node) bool {
			switch n.(type) {
			case *plan.Filter, *plan.Join:
				return true
			default:
				return false
			}
		},
		Children: ChildrenPredicate{Kind: ChildrenNone},
	}
}

func (SimplifyFilter) Apply(ctx *sql.Context, g *HepGraph, id HepNodeID) (sql.Node, bool, error) {
	switch op := g.Node(id).(type) {
	case *plan.Filter:
		if op.IsOptimized {
			return op, false, nil
		}
		fixed, _, err := transform.Expr(op.Predicate, fixExpr)
		if err != nil {
			return nil, false, err
		}
		return &plan.Filter{Predicate: fixed, Child: op.Child, IsOptimized: true}, true, nil
	case *plan.Join:
		if op.On == nil || op.IsOptimized {
			return op, false, nil
		}
		fixed, _, err := transform.Expr(op.On, fixExpr)
		if err != nil {
			return nil, false, err
		}
		return &plan.Join{Type: op.Type, On: fixed, Left: op.Left, Right: op.Right, Physical: op.Physical, IsOptimized: true}, true, nil
	default:
		return g.Node(id), false, nil
	}
}

// fixExpr applies the simplification rewrites bottom-up, mirroring
// simplify.rs's dispatch on the expression's own shape.
func fixExpr(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	switch v := e.(type) {
	case *expression.Unary:
		return fixUnary(v)
	case *expression.Binary:
		return fixBinary(v)
	case *expression.In:
		return fixIn(v)
	case *expression.Between:
		return fixBetween(v)
	default:
		return e, transform.Same, nil
	}
}

// fixUnary implements NOT-pushdown: NOT(a cmp b) flips the comparator when
// cmp has a natural flip (>,>=,<,<=); NOT(NOT x) collapses to x. Per
// spec.md §9's open question (i), NOT over AND/OR/other operators is left
// as-is — pushing NOT through boolean connectives requires also flipping
// AND/OR under three-valued logic, which this rewrite does not attempt.
func fixUnary(u *expression.Unary) (sql.Expression, transform.TreeIdentity, error) {
	if u.Op != types.UnaryNot {
		return u, transform.Same, nil
	}
	if inner, ok := u.Expr.(*expression.Unary); ok && inner.Op == types.UnaryNot {
		return inner.Expr, transform.NewTree, nil
	}
	if bin, ok := u.Expr.(*expression.Binary); ok && bin.Op.IsComparison() && bin.Op.FlipComparison() != bin.Op {
		return expression.NewBinary(negateComparison(bin.Op), bin.Left, bin.Right), transform.NewTree, nil
	}
	if bin, ok := u.Expr.(*expression.Binary); ok && (bin.Op == types.Eq || bin.Op == types.NotEq) {
		op := types.Eq
		if bin.Op == types.Eq {
			op = types.NotEq
		}
		return expression.NewBinary(op, bin.Left, bin.Right), transform.NewTree, nil
	}
	return u, transform.Same, nil
}

// negateComparison returns the logical negation of an ordering comparator
// (> becomes <=, etc.) — distinct from FlipComparison, which swaps operand
// sides instead.
func negateComparison(op types.BinaryOp) types.BinaryOp {
	switch op {
	case types.Gt:
		return types.LtEq
	case types.GtEq:
		return types.Lt
	case types.Lt:
		return types.GtEq
	case types.LtEq:
		return types.Gt
	default:
		return op
	}
}

// fixBinary implements binary-arithmetic pushdown: when one side of a
// comparison is a chain of unary and arithmetic-binary nodes wrapping a
// single column-derived operand, that chain is peeled off one layer at a
// time and rebuilt on the other (constant) side, so the comparison ends up
// `col op' const` in a shape rangeutil.comparisonToRange can read. Grounded
// in original_source/expression/simplify.rs's fix_expr/fix_unary/fix_binary,
// whose stack of pending Replace rewrites amounts to the same depth-first
// peel performed here directly via recursion (hoistArithmetic).
func fixBinary(b *expression.Binary) (sql.Expression, transform.TreeIdentity, error) {
	if !b.Op.IsComparison() {
		return b, transform.Same, nil
	}
	if col, other, cmp, ok := hoistArithmetic(b.Left, b.Right, b.Op); ok {
		return expression.NewBinary(cmp, col, other), transform.NewTree, nil
	}
	if col, other, cmp, ok := hoistArithmetic(b.Right, b.Left, b.Op.FlipComparison()); ok {
		return expression.NewBinary(cmp, col, other), transform.NewTree, nil
	}
	return b, transform.Same, nil
}

// hoistArithmetic peels layers of unary/arithmetic off expr — which starts
// as one side of a comparison `expr cmp other` — until either a bare column
// is reached (ok=true, at least one layer peeled) or a layer can't be
// peeled (ok=false). Each peeled layer is applied in reverse to other.
func hoistArithmetic(expr, other sql.Expression, cmp types.BinaryOp) (sql.Expression, sql.Expression, types.BinaryOp, bool) {
	peeled := false
	for {
		if isColumnExpr(expr) {
			if !peeled {
				return nil, nil, cmp, false
			}
			return expr, other, cmp, true
		}
		next, nextOther, nextCmp, ok := peelOneLayer(expr, other, cmp)
		if !ok {
			return nil, nil, cmp, false
		}
		expr, other, cmp = next, nextOther, nextCmp
		peeled = true
	}
}

// peelOneLayer strips a single unary or arithmetic-binary layer off expr,
// provided exactly one side of a binary layer is column-derived, folding
// the inverse operation into other and adjusting cmp to keep `expr cmp
// other` equivalent to the original.
func peelOneLayer(expr, other sql.Expression, cmp types.BinaryOp) (sql.Expression, sql.Expression, types.BinaryOp, bool) {
	switch v := expr.(type) {
	case *expression.Unary:
		switch v.Op {
		case types.UnaryPlus:
			return v.Expr, other, cmp, true
		case types.UnaryMinus:
			return v.Expr, wrapNegate(other), cmp.FlipComparison(), true
		default:
			return nil, nil, cmp, false
		}
	case *expression.Binary:
		if !v.Op.IsArithmetic() {
			return nil, nil, cmp, false
		}
		leftHasCol := containsColumn(v.Left)
		rightHasCol := containsColumn(v.Right)
		switch {
		case leftHasCol && !rightHasCol:
			return v.Left, expression.NewBinary(v.Op.FlipArithmetic(), other, v.Right), cmp, true
		case rightHasCol && !leftHasCol:
			newCmp := cmp
			if v.Op == types.Minus || v.Op == types.Multiply {
				newCmp = cmp.FlipComparison()
			}
			newOther := expression.NewBinary(v.Op, v.Left, other)
			if v.Op == types.Plus || v.Op == types.Multiply {
				newOther = expression.NewBinary(v.Op.FlipArithmetic(), other, v.Left)
			}
			return v.Right, newOther, newCmp, true
		default:
			return nil, nil, cmp, false
		}
	default:
		return nil, nil, cmp, false
	}
}

// wrapNegate applies unary minus to other, folding immediately when other
// is already a literal so the common single-layer case (`-col op k`)
// produces a plain literal constant rather than an unevaluated Unary node.
func wrapNegate(other sql.Expression) sql.Expression {
	if lit, ok := other.(*expression.Literal); ok {
		if negated, err := negateValue(lit.Val); err == nil {
			return expression.NewLiteral(negated)
		}
	}
	return expression.NewUnary(types.UnaryMinus, other)
}

// isColumnExpr reports whether e is itself a column reference (bound or
// unbound), i.e. the hoist has reached the operand it's rearranging around.
func isColumnExpr(e sql.Expression) bool {
	switch e.(type) {
	case *expression.ColumnRef, *expression.Reference:
		return true
	default:
		return false
	}
}

// containsColumn reports whether e's tree contains a column reference
// anywhere, used to decide which side of an arithmetic binary is the
// column-derived operand to keep peeling.
func containsColumn(e sql.Expression) bool {
	found := false
	transform.InspectExpr(e, func(x sql.Expression) bool {
		if found {
			return false
		}
		if isColumnExpr(x) {
			found = true
			return false
		}
		return true
	})
	return found
}

func negateValue(v types.Value) (types.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	switch v.Logical {
	case types.Int8:
		return types.NewInt8(-v.Raw.(int8)), nil
	case types.Int16:
		return types.NewInt16(-v.Raw.(int16)), nil
	case types.Int32:
		return types.NewInt32(-v.Raw.(int32)), nil
	case types.Int64:
		return types.NewInt64(-v.Raw.(int64)), nil
	case types.Float32:
		return types.NewFloat32(-v.Raw.(float32)), nil
	case types.Float64:
		return types.NewFloat64(-v.Raw.(float64)), nil
	default:
		return v, sql.ErrTypeMismatch.New("cannot negate non-numeric constant")
	}
}

// fixIn expands `expr IN (a, b, c)` into `expr = a OR expr = b OR expr = c`
// (or the AND-of-NotEq form for NOT IN), so the range detacher and the rest
// of the simplifier only ever need to reason about AND/OR/comparisons.
func fixIn(in *expression.In) (sql.Expression, transform.TreeIdentity, error) {
	if len(in.List) == 0 {
		return expression.NewLiteral(types.NewBoolean(in.Negated)), transform.NewTree, nil
	}
	op := types.Eq
	combine := expression.NewOr
	if in.Negated {
		op = types.NotEq
		combine = expression.NewAnd
	}
	var acc sql.Expression = expression.NewBinary(op, in.Expr, in.List[0])
	for _, item := range in.List[1:] {
		acc = combine(acc, expression.NewBinary(op, in.Expr, item))
	}
	return acc, transform.NewTree, nil
}

// fixBetween expands `expr [NOT] BETWEEN lo AND hi` into the equivalent
// range/complement of two comparisons.
func fixBetween(b *expression.Between) (sql.Expression, transform.TreeIdentity, error) {
	lo := expression.NewBinary(types.GtEq, b.Expr, b.Lo)
	hi := expression.NewBinary(types.LtEq, b.Expr, b.Hi)
	if b.Negated {
		return expression.NewOr(
			expression.NewBinary(types.Lt, b.Expr, b.Lo),
			expression.NewBinary(types.Gt, b.Expr, b.Hi),
		), transform.NewTree, nil
	}
	return expression.NewAnd(lo, hi), transform.NewTree, nil
}
