package evaluator

import (
	"github.com/shopspring/decimal"

	"github.com/kvsql/kvsql/types"
)

// notEvaluator implements boolean NOT under three-valued logic: NOT NULL is
// NULL.
type notEvaluator struct{}

func (e *notEvaluator) Key() Key { return Key{Ty: types.Boolean, UnaryOp: types.UnaryNot, IsUnary: true} }

func (e *notEvaluator) Eval(v types.Value) (types.Value, error) {
	if v.IsNull() {
		return types.Null(types.Boolean), nil
	}
	return types.NewBoolean(!v.Raw.(bool)), nil
}

// identityEvaluator implements unary plus: a no-op.
type identityEvaluator struct {
	ty types.LogicalType
}

func (e *identityEvaluator) Key() Key {
	return Key{Ty: e.ty, UnaryOp: types.UnaryPlus, IsUnary: true}
}

func (e *identityEvaluator) Eval(v types.Value) (types.Value, error) { return v, nil }

// negateEvaluator implements unary minus. Per spec.md §4.1, BindEvaluator
// is responsible for inserting an unsigned-to-signed cast before this
// evaluator runs, so negateEvaluator only ever sees a signed or floating
// operand.
type negateEvaluator struct {
	ty types.LogicalType
}

func (e *negateEvaluator) Key() Key {
	return Key{Ty: e.ty, UnaryOp: types.UnaryMinus, IsUnary: true}
}

func (e *negateEvaluator) Eval(v types.Value) (types.Value, error) {
	if v.IsNull() {
		return types.Null(e.ty), nil
	}
	switch e.ty {
	case types.Int8:
		return packSigned(types.Int8, -int64(v.Raw.(int8)))
	case types.Int16:
		return packSigned(types.Int16, -int64(v.Raw.(int16)))
	case types.Int32:
		return packSigned(types.Int32, -int64(v.Raw.(int32)))
	case types.Int64:
		if v.Raw.(int64) == -1<<63 {
			return types.Value{}, ErrOverflow
		}
		return packSigned(types.Int64, -v.Raw.(int64))
	case types.Float32:
		return types.NewFloat32(-v.Raw.(float32)), nil
	case types.Float64:
		return types.NewFloat64(-v.Raw.(float64)), nil
	case types.Decimal:
		return types.NewDecimal(v.Raw.(decimal.Decimal).Neg(), v.Precision, v.Scale), nil
	default:
		return types.Value{}, &ErrUnsupportedUnary{Ty: e.ty, Op: types.UnaryMinus}
	}
}
