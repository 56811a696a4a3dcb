package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
	"github.com/kvsql/kvsql/types/evaluator"
)

// Binary is the ScalarExpression::Binary variant, covering arithmetic,
// comparison, boolean and LIKE operators. Like Unary, Eval requires
// BindEvaluator to have run first.
type Binary struct {
	Op          types.BinaryOp
	Left, Right sql.Expression
	Escape      rune
	eval        evaluator.BinaryEvaluator
}

func NewBinary(op types.BinaryOp, left, right sql.Expression) *Binary {
	return &Binary{Op: op, Left: left, Right: right, Escape: '\\'}
}

func NewAnd(left, right sql.Expression) *Binary { return NewBinary(types.And, left, right) }
func NewOr(left, right sql.Expression) *Binary  { return NewBinary(types.Or, left, right) }

func NewEquals(left, right sql.Expression) *Binary       { return NewBinary(types.Eq, left, right) }
func NewNotEquals(left, right sql.Expression) *Binary    { return NewBinary(types.NotEq, left, right) }
func NewGreaterThan(left, right sql.Expression) *Binary  { return NewBinary(types.Gt, left, right) }
func NewGreaterThanOrEqual(left, right sql.Expression) *Binary {
	return NewBinary(types.GtEq, left, right)
}
func NewLessThan(left, right sql.Expression) *Binary { return NewBinary(types.Lt, left, right) }
func NewLessThanOrEqual(left, right sql.Expression) *Binary {
	return NewBinary(types.LtEq, left, right)
}

func NewPlus(left, right sql.Expression) *Binary     { return NewBinary(types.Plus, left, right) }
func NewMinus(left, right sql.Expression) *Binary     { return NewBinary(types.Minus, left, right) }
func NewMultiply(left, right sql.Expression) *Binary  { return NewBinary(types.Multiply, left, right) }
func NewDivide(left, right sql.Expression) *Binary    { return NewBinary(types.Divide, left, right) }
func NewModulo(left, right sql.Expression) *Binary    { return NewBinary(types.Modulo, left, right) }

func NewLike(left, right sql.Expression, escape rune) *Binary {
	return &Binary{Op: types.Like, Left: left, Right: right, Escape: escape}
}

func (b *Binary) Type() types.LogicalType {
	switch {
	case b.Op.IsComparison(), b.Op == types.And, b.Op == types.Or, b.Op == types.Like:
		return types.Boolean
	default:
		return types.MaxLogicalType(b.Left.Type(), b.Right.Type())
	}
}

func (b *Binary) Nullable() bool { return b.Left.Nullable() || b.Right.Nullable() }

func (b *Binary) Children() []sql.Expression {
	return []sql.Expression{b.Left, b.Right}
}

func (b *Binary) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: Binary takes exactly two children")
	}
	return &Binary{Op: b.Op, Left: children[0], Right: children[1], Escape: b.Escape, eval: b.eval}, nil
}

// BindEvaluator attaches the evaluator that Eval will dispatch to.
func (b *Binary) BindEvaluator(eval evaluator.BinaryEvaluator) *Binary {
	return &Binary{Op: b.Op, Left: b.Left, Right: b.Right, Escape: b.Escape, eval: eval}
}

func (b *Binary) Evaluator() evaluator.BinaryEvaluator { return b.eval }

func (b *Binary) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if b.eval == nil {
		return nil, sql.ErrInvariantViolation.New("Binary expression evaluated before BindEvaluator ran")
	}
	lv, err := b.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	l, ok := lv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("binary left operand did not evaluate to a types.Value")
	}

	// Short-circuit three-valued AND/OR the way the teacher's comparison
	// evaluators expect: FALSE AND x = FALSE, TRUE OR x = TRUE, regardless
	// of whether x is NULL.
	if b.Op == types.And && !l.IsNull() {
		if bv, ok := l.Bool(); ok && !bv {
			return types.NewBoolean(false), nil
		}
	}
	if b.Op == types.Or && !l.IsNull() {
		if bv, ok := l.Bool(); ok && bv {
			return types.NewBoolean(true), nil
		}
	}

	rv, err := b.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	r, ok := rv.(types.Value)
	if !ok {
		return nil, sql.ErrTypeMismatch.New("binary right operand did not evaluate to a types.Value")
	}

	out, err := b.eval.Eval(l, r)
	if err != nil {
		if err == evaluator.ErrOverflow {
			return nil, sql.ErrOverflow.New(b.String())
		}
		return nil, sql.ErrUnsupportedBinaryOp.New(b.Op.String(), l.Logical.String())
	}
	return out, nil
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}
