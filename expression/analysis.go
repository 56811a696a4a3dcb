package expression

import (
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/transform"
	"github.com/kvsql/kvsql/types"
	"github.com/kvsql/kvsql/types/evaluator"
)

// TryReference rewrites every ColumnRef leaf of expr that matches (by
// ColumnSummary) a column of childSchema into a Reference positioned at
// that column's index, per the binding pass spec.md §4.1 requires before
// execution. A ColumnRef with no match in childSchema is left unresolved,
// which will fail loudly the first time Eval touches it — a sign column
// pruning or projection planning missed a dependency.
func TryReference(expr sql.Expression, childSchema sql.Schema) (sql.Expression, error) {
	rewritten, _, err := transform.Expr(expr, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ref, ok := e.(*ColumnRef)
		if !ok {
			return e, transform.Same, nil
		}
		for pos, col := range childSchema {
			if col.Summary() == ref.Summary() {
				return NewReference(ref, pos), transform.NewTree, nil
			}
		}
		return e, transform.Same, nil
	})
	if err != nil {
		return nil, err
	}
	return rewritten, nil
}

// ReferencedColumns collects the ColumnSummary of every ColumnRef in expr.
// When onlyColumnRef is false, every non-leaf expression also contributes
// the virtual ColumnSummary OutputSummary gives it (an Alias's declared
// name, or its own String() representation under the empty relation),
// matching the original's treatment of derived expressions
// as candidate "output columns" for pruning purposes. Encountering a
// Reference or Empty node is an invariant violation: ReferencedColumns must
// only ever run on a pre-binding tree.
func ReferencedColumns(expr sql.Expression, onlyColumnRef bool) ([]sql.ColumnSummary, error) {
	var out []sql.ColumnSummary
	var walkErr error
	transform.InspectExpr(expr, func(e sql.Expression) bool {
		if walkErr != nil {
			return false
		}
		switch v := e.(type) {
		case *Reference:
			walkErr = sql.ErrInvariantViolation.New("ReferencedColumns observed a bound Reference")
			return false
		case Empty:
			walkErr = sql.ErrInvariantViolation.New("ReferencedColumns observed an Empty placeholder")
			return false
		case *ColumnRef:
			out = append(out, v.Summary())
		default:
			if !onlyColumnRef && len(e.Children()) > 0 {
				out = append(out, OutputSummary(e))
			}
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// OutputSummary returns the ColumnSummary a referencing ColumnRef elsewhere
// in the plan would use to name expr's output: an Alias/ColumnRef's own
// declared name, or expr's String() for anything else (aggregate calls,
// bare arithmetic) acting only as a self-identity, never actually looked up
// by name from outside.
func OutputSummary(e sql.Expression) sql.ColumnSummary {
	if n, ok := e.(interface {
		OutputName() (name, relation string)
	}); ok {
		name, relation := n.OutputName()
		return sql.ColumnSummary{Name: name, Relation: relation}
	}
	return sql.ColumnSummary{Name: e.String()}
}

// HasCountStar reports whether expr is, or contains exactly one, COUNT(*)
// aggregate call.
func HasCountStar(expr sql.Expression) bool {
	count := 0
	transform.InspectExpr(expr, func(e sql.Expression) bool {
		if agg, ok := e.(*AggCall); ok && agg.IsCountStar() {
			count++
		}
		return true
	})
	return count == 1
}

// BindEvaluator attaches an evaluator.BinaryEvaluator/UnaryEvaluator to
// every Binary/Unary node in expr, bottom-up, inserting the casts the
// original's evaluator-binding pass performs: operands of a Binary are
// promoted to their MaxLogicalType before the evaluator is selected, and an
// unsigned operand to UnaryMinus is first cast to its signed counterpart
// (negating an unsigned value is otherwise not well-defined).
func BindEvaluator(expr sql.Expression) (sql.Expression, error) {
	rewritten, _, err := transform.Expr(expr, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		switch v := e.(type) {
		case *Unary:
			operand := v.Expr
			ty := operand.Type()
			if v.Op == types.UnaryMinus && ty.IsUnsigned() {
				signed := ty.ToSigned()
				operand = NewCast(operand, signed)
				ty = signed
			}
			eval, err := evaluator.UnaryCreate(ty, v.Op)
			if err != nil {
				return nil, transform.Same, sql.ErrUnsupportedUnaryOp.New(v.Op.String(), ty.String())
			}
			bound := &Unary{Op: v.Op, Expr: operand}
			return bound.BindEvaluator(eval), transform.NewTree, nil
		case *Binary:
			left, right := v.Left, v.Right
			commonTy := types.MaxLogicalType(left.Type(), right.Type())
			if !v.Op.IsComparison() && v.Op != types.And && v.Op != types.Or && v.Op != types.Like {
				if left.Type() != commonTy {
					left = NewCast(left, commonTy)
				}
				if right.Type() != commonTy {
					right = NewCast(right, commonTy)
				}
			} else if v.Op.IsComparison() {
				if left.Type() != commonTy {
					left = NewCast(left, commonTy)
				}
				if right.Type() != commonTy {
					right = NewCast(right, commonTy)
				}
			}
			evalTy := commonTy
			if v.Op == types.And || v.Op == types.Or {
				evalTy = types.Boolean
			}
			var eval evaluator.BinaryEvaluator
			var err error
			if v.Op == types.Like {
				eval, err = evaluator.BinaryCreateWithEscape(evalTy, v.Op, v.Escape)
			} else {
				eval, err = evaluator.BinaryCreate(evalTy, v.Op)
			}
			if err != nil {
				return nil, transform.Same, sql.ErrUnsupportedBinaryOp.New(v.Op.String(), evalTy.String())
			}
			bound := &Binary{Op: v.Op, Left: left, Right: right, Escape: v.Escape}
			return bound.BindEvaluator(eval), transform.NewTree, nil
		default:
			return e, transform.Same, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return rewritten, nil
}

// UnpackConstant reports whether expr is a Literal and returns its value.
func UnpackConstant(expr sql.Expression) (types.Value, bool) {
	lit, ok := expr.(*Literal)
	if !ok {
		return types.Value{}, false
	}
	return lit.Val, true
}

// UnpackColumn reports whether expr is a (possibly bound) column reference
// and returns its ColumnSummary.
func UnpackColumn(expr sql.Expression) (sql.ColumnSummary, bool) {
	switch v := expr.(type) {
	case *ColumnRef:
		return v.Summary(), true
	case *Reference:
		return UnpackColumn(v.Expr)
	default:
		return sql.ColumnSummary{}, false
	}
}
