// Package evaluator implements the per-(LogicalType, Operator) scalar
// evaluators described in spec.md §4.1, dispatched by a central factory.
package evaluator

import (
	"fmt"

	"github.com/kvsql/kvsql/types"
)

// ErrOverflow is returned by an integer arithmetic evaluator whose result
// does not fit in the operand type.
var ErrOverflow = fmt.Errorf("types/evaluator: integer overflow")

// ErrUnsupportedBinary/ErrUnsupportedUnary are returned by the factory when
// no evaluator is registered for a (LogicalType, Operator) pair.
type ErrUnsupportedBinary struct {
	Ty types.LogicalType
	Op types.BinaryOp
}

func (e *ErrUnsupportedBinary) Error() string {
	return fmt.Sprintf("types/evaluator: unsupported binary operator %s for type %s", e.Op, e.Ty)
}

type ErrUnsupportedUnary struct {
	Ty types.LogicalType
	Op types.UnaryOp
}

func (e *ErrUnsupportedUnary) Error() string {
	return fmt.Sprintf("types/evaluator: unsupported unary operator %s for type %s", e.Op, e.Ty)
}

// Key identifies an evaluator by the (type, operator) pair that determines
// its behavior. Per spec.md §9's design note, two evaluator boxes compare
// equal whenever their keys are equal, regardless of the concrete Go type
// implementing them — evaluators are pure functions of this tuple, so two
// equal keys are observationally identical. This lets expression equality
// and hashing treat a cached *evaluator as part of the node's identity
// without comparing closures or interface values directly.
type Key struct {
	Ty       types.LogicalType
	BinaryOp types.BinaryOp
	UnaryOp  types.UnaryOp
	IsUnary  bool
	// Escape is only meaningful for BinaryOp == types.Like; it is part of
	// the evaluator's identity per spec.md §4.1.
	Escape rune
}

// BinaryEvaluator evaluates a binary scalar operator over two values
// already promoted to the evaluator's type.
type BinaryEvaluator interface {
	Eval(l, r types.Value) (types.Value, error)
	Key() Key
}

// UnaryEvaluator evaluates a unary scalar operator over a value already of
// the evaluator's type.
type UnaryEvaluator interface {
	Eval(v types.Value) (types.Value, error)
	Key() Key
}

// BinaryCreate returns the evaluator for (ty, op), or an
// *ErrUnsupportedBinary if no such evaluator is registered.
func BinaryCreate(ty types.LogicalType, op types.BinaryOp) (BinaryEvaluator, error) {
	return BinaryCreateWithEscape(ty, op, '\\')
}

// BinaryCreateWithEscape is BinaryCreate for types.Like, where the escape
// character is part of the evaluator's identity.
func BinaryCreateWithEscape(ty types.LogicalType, op types.BinaryOp, escape rune) (BinaryEvaluator, error) {
	switch op {
	case types.And, types.Or:
		// three-valued boolean logic is independent of the operand type
		return &logicEvaluator{op: op}, nil
	case types.Eq, types.NotEq, types.Gt, types.GtEq, types.Lt, types.LtEq:
		return &comparisonEvaluator{ty: ty, op: op}, nil
	case types.Like:
		if ty != types.Varchar {
			return nil, &ErrUnsupportedBinary{Ty: ty, Op: op}
		}
		return &likeEvaluator{escape: escape}, nil
	case types.Plus, types.Minus, types.Multiply, types.Divide, types.Modulo:
		if !ty.IsNumeric() {
			return nil, &ErrUnsupportedBinary{Ty: ty, Op: op}
		}
		return &arithmeticEvaluator{ty: ty, op: op}, nil
	default:
		return nil, &ErrUnsupportedBinary{Ty: ty, Op: op}
	}
}

// UnaryCreate returns the evaluator for (ty, op), or an *ErrUnsupportedUnary
// if no such evaluator is registered.
func UnaryCreate(ty types.LogicalType, op types.UnaryOp) (UnaryEvaluator, error) {
	switch op {
	case types.UnaryNot:
		if ty != types.Boolean {
			return nil, &ErrUnsupportedUnary{Ty: ty, Op: op}
		}
		return &notEvaluator{}, nil
	case types.UnaryPlus:
		if !ty.IsNumeric() {
			return nil, &ErrUnsupportedUnary{Ty: ty, Op: op}
		}
		return &identityEvaluator{ty: ty}, nil
	case types.UnaryMinus:
		if !ty.IsNumeric() {
			return nil, &ErrUnsupportedUnary{Ty: ty, Op: op}
		}
		return &negateEvaluator{ty: ty}, nil
	default:
		return nil, &ErrUnsupportedUnary{Ty: ty, Op: op}
	}
}
