package types

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Cast converts v to the target logical type. NULL casts to a typed NULL of
// the target type. Casting is used both by explicit SQL CAST expressions
// and internally by BindEvaluator/ConstantCalculation to promote operands
// to a common MaxLogicalType before evaluation.
func Cast(v Value, target LogicalType) (Value, error) {
	if v.IsNull() {
		return Null(target), nil
	}
	if v.Logical == target {
		return v, nil
	}
	switch target {
	case Boolean:
		return castToBoolean(v)
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return castToInteger(v, target)
	case Float32:
		f, err := toFloat64(v)
		if err != nil {
			return Value{}, err
		}
		return NewFloat32(float32(f)), nil
	case Float64:
		f, err := toFloat64(v)
		if err != nil {
			return Value{}, err
		}
		return NewFloat64(f), nil
	case Varchar:
		return NewVarchar(v.String(), Octets, Variable), nil
	case Decimal:
		d, err := toDecimal(v)
		if err != nil {
			return Value{}, err
		}
		return NewDecimal(d, v.Precision, v.Scale), nil
	default:
		return Value{}, fmt.Errorf("types: unsupported cast from %s to %s", v.Logical, target)
	}
}

func castToBoolean(v Value) (Value, error) {
	switch v.Logical {
	case Boolean:
		return v, nil
	case Varchar:
		b, err := strconv.ParseBool(v.Raw.(string))
		if err != nil {
			return Value{}, fmt.Errorf("types: cannot cast %q to boolean", v.Raw)
		}
		return NewBoolean(b), nil
	default:
		f, err := toFloat64(v)
		if err != nil {
			return Value{}, err
		}
		return NewBoolean(f != 0), nil
	}
}

func toFloat64(v Value) (float64, error) {
	switch v.Logical {
	case Int8:
		return float64(v.Raw.(int8)), nil
	case Int16:
		return float64(v.Raw.(int16)), nil
	case Int32:
		return float64(v.Raw.(int32)), nil
	case Int64:
		return float64(v.Raw.(int64)), nil
	case UInt8:
		return float64(v.Raw.(uint8)), nil
	case UInt16:
		return float64(v.Raw.(uint16)), nil
	case UInt32:
		return float64(v.Raw.(uint32)), nil
	case UInt64:
		return float64(v.Raw.(uint64)), nil
	case Float32:
		return float64(v.Raw.(float32)), nil
	case Float64:
		return v.Raw.(float64), nil
	case Boolean:
		if v.Raw.(bool) {
			return 1, nil
		}
		return 0, nil
	case Decimal:
		f, _ := v.Raw.(decimal.Decimal).Float64()
		return f, nil
	case Varchar:
		f, err := strconv.ParseFloat(v.Raw.(string), 64)
		if err != nil {
			return 0, fmt.Errorf("types: cannot cast %q to a number", v.Raw)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("types: cannot cast %s to a number", v.Logical)
	}
}

func toDecimal(v Value) (decimal.Decimal, error) {
	if v.Logical == Decimal {
		return v.Raw.(decimal.Decimal), nil
	}
	if v.Logical == Varchar {
		d, err := decimal.NewFromString(v.Raw.(string))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("types: cannot cast %q to decimal", v.Raw)
		}
		return d, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(f), nil
}

// castToInteger performs an overflow-checked numeric-to-integer cast.
func castToInteger(v Value, target LogicalType) (Value, error) {
	f, err := toFloat64(v)
	if err != nil {
		return Value{}, err
	}
	i := int64(f)
	switch target {
	case Int8:
		if i < -128 || i > 127 {
			return Value{}, fmt.Errorf("types: %v overflows tinyint", i)
		}
		return NewInt8(int8(i)), nil
	case Int16:
		if i < -32768 || i > 32767 {
			return Value{}, fmt.Errorf("types: %v overflows smallint", i)
		}
		return NewInt16(int16(i)), nil
	case Int32:
		if i < -2147483648 || i > 2147483647 {
			return Value{}, fmt.Errorf("types: %v overflows int", i)
		}
		return NewInt32(int32(i)), nil
	case Int64:
		return NewInt64(i), nil
	case UInt8:
		if i < 0 || i > 255 {
			return Value{}, fmt.Errorf("types: %v overflows tinyint unsigned", i)
		}
		return NewUInt8(uint8(i)), nil
	case UInt16:
		if i < 0 || i > 65535 {
			return Value{}, fmt.Errorf("types: %v overflows smallint unsigned", i)
		}
		return NewUInt16(uint16(i)), nil
	case UInt32:
		if i < 0 || i > 4294967295 {
			return Value{}, fmt.Errorf("types: %v overflows int unsigned", i)
		}
		return NewUInt32(uint32(i)), nil
	case UInt64:
		if i < 0 {
			return Value{}, fmt.Errorf("types: %v overflows bigint unsigned", i)
		}
		return NewUInt64(uint64(i)), nil
	default:
		return Value{}, fmt.Errorf("types: %s is not an integer type", target)
	}
}
