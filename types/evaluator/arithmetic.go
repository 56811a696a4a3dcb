package evaluator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/kvsql/kvsql/types"
)

// arithmeticEvaluator implements +, -, *, / and % for a numeric type.
// Per spec.md §4.1: integer arithmetic overflow-checks and fails with
// ErrOverflow; integer division promotes to a 64-bit float result (this
// engine's deliberate, non-standard choice, per spec.md §9 open question
// ii); any null operand makes the result null.
type arithmeticEvaluator struct {
	ty types.LogicalType
	op types.BinaryOp
}

func (e *arithmeticEvaluator) Key() Key {
	return Key{Ty: e.ty, BinaryOp: e.op}
}

func (e *arithmeticEvaluator) Eval(l, r types.Value) (types.Value, error) {
	if l.IsNull() || r.IsNull() {
		return types.Null(e.resultType()), nil
	}
	if e.op == types.Divide {
		// division promotes to float64 for every numeric type.
		lf, err := toF64(l)
		if err != nil {
			return types.Value{}, err
		}
		rf, err := toF64(r)
		if err != nil {
			return types.Value{}, err
		}
		if rf == 0 {
			return types.Null(types.Float64), nil
		}
		return types.NewFloat64(lf / rf), nil
	}
	if e.ty == types.Decimal {
		return e.evalDecimal(l, r)
	}
	if e.ty.IsFloat() {
		return e.evalFloat(l, r)
	}
	return e.evalInteger(l, r)
}

func (e *arithmeticEvaluator) resultType() types.LogicalType {
	if e.op == types.Divide {
		return types.Float64
	}
	return e.ty
}

func (e *arithmeticEvaluator) evalFloat(l, r types.Value) (types.Value, error) {
	lf, err := toF64(l)
	if err != nil {
		return types.Value{}, err
	}
	rf, err := toF64(r)
	if err != nil {
		return types.Value{}, err
	}
	var out float64
	switch e.op {
	case types.Plus:
		out = lf + rf
	case types.Minus:
		out = lf - rf
	case types.Multiply:
		out = lf * rf
	case types.Modulo:
		out = math.Mod(lf, rf)
	default:
		return types.Value{}, &ErrUnsupportedBinary{Ty: e.ty, Op: e.op}
	}
	if e.ty == types.Float32 {
		return types.NewFloat32(float32(out)), nil
	}
	return types.NewFloat64(out), nil
}

func (e *arithmeticEvaluator) evalDecimal(l, r types.Value) (types.Value, error) {
	ld, rd := l.Raw.(decimal.Decimal), r.Raw.(decimal.Decimal)
	var out decimal.Decimal
	switch e.op {
	case types.Plus:
		out = ld.Add(rd)
	case types.Minus:
		out = ld.Sub(rd)
	case types.Multiply:
		out = ld.Mul(rd)
	case types.Modulo:
		out = ld.Mod(rd)
	default:
		return types.Value{}, &ErrUnsupportedBinary{Ty: e.ty, Op: e.op}
	}
	scale := l.Scale
	if r.Scale > scale {
		scale = r.Scale
	}
	return types.NewDecimal(out, l.Precision, scale), nil
}

func (e *arithmeticEvaluator) evalInteger(l, r types.Value) (types.Value, error) {
	if e.ty.IsUnsigned() {
		lv, rv := toU64(l), toU64(r)
		out, ok := checkedUnsignedOp(e.op, lv, rv)
		if !ok {
			return types.Value{}, ErrOverflow
		}
		return packUnsigned(e.ty, out)
	}
	lv, rv := toI64(l), toI64(r)
	out, ok := checkedSignedOp(e.op, lv, rv)
	if !ok {
		return types.Value{}, ErrOverflow
	}
	return packSigned(e.ty, out)
}

func checkedSignedOp(op types.BinaryOp, l, r int64) (int64, bool) {
	switch op {
	case types.Plus:
		sum := l + r
		if (r > 0 && sum < l) || (r < 0 && sum > l) {
			return 0, false
		}
		return sum, true
	case types.Minus:
		diff := l - r
		if (r < 0 && diff < l) || (r > 0 && diff > l) {
			return 0, false
		}
		return diff, true
	case types.Multiply:
		if l == 0 || r == 0 {
			return 0, true
		}
		prod := l * r
		if prod/r != l {
			return 0, false
		}
		return prod, true
	case types.Modulo:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	default:
		return 0, false
	}
}

func checkedUnsignedOp(op types.BinaryOp, l, r uint64) (uint64, bool) {
	switch op {
	case types.Plus:
		sum := l + r
		return sum, sum >= l
	case types.Minus:
		if r > l {
			return 0, false
		}
		return l - r, true
	case types.Multiply:
		if l == 0 || r == 0 {
			return 0, true
		}
		prod := l * r
		return prod, prod/r == l
	case types.Modulo:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	default:
		return 0, false
	}
}

func toI64(v types.Value) int64 {
	switch v.Logical {
	case types.Int8:
		return int64(v.Raw.(int8))
	case types.Int16:
		return int64(v.Raw.(int16))
	case types.Int32:
		return int64(v.Raw.(int32))
	case types.Int64:
		return v.Raw.(int64)
	}
	return 0
}

func toU64(v types.Value) uint64 {
	switch v.Logical {
	case types.UInt8:
		return uint64(v.Raw.(uint8))
	case types.UInt16:
		return uint64(v.Raw.(uint16))
	case types.UInt32:
		return uint64(v.Raw.(uint32))
	case types.UInt64:
		return v.Raw.(uint64)
	}
	return 0
}

func toF64(v types.Value) (float64, error) {
	out, err := types.Cast(v, types.Float64)
	if err != nil {
		return 0, err
	}
	return out.Raw.(float64), nil
}

func packSigned(ty types.LogicalType, v int64) (types.Value, error) {
	switch ty {
	case types.Int8:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return types.Value{}, ErrOverflow
		}
		return types.NewInt8(int8(v)), nil
	case types.Int16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return types.Value{}, ErrOverflow
		}
		return types.NewInt16(int16(v)), nil
	case types.Int32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return types.Value{}, ErrOverflow
		}
		return types.NewInt32(int32(v)), nil
	default:
		return types.NewInt64(v), nil
	}
}

func packUnsigned(ty types.LogicalType, v uint64) (types.Value, error) {
	switch ty {
	case types.UInt8:
		if v > math.MaxUint8 {
			return types.Value{}, ErrOverflow
		}
		return types.NewUInt8(uint8(v)), nil
	case types.UInt16:
		if v > math.MaxUint16 {
			return types.Value{}, ErrOverflow
		}
		return types.NewUInt16(uint16(v)), nil
	case types.UInt32:
		if v > math.MaxUint32 {
			return types.Value{}, ErrOverflow
		}
		return types.NewUInt32(uint32(v)), nil
	default:
		return types.NewUInt64(v), nil
	}
}
