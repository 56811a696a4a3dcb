package types

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LengthUnit discriminates whether a Varchar's declared length counts
// characters or octets.
type LengthUnit uint8

const (
	Characters LengthUnit = iota
	Octets
)

// StringVariability tags a string value as fixed-width (CHAR) or
// variable-width (VARCHAR/TEXT).
type StringVariability uint8

const (
	Variable StringVariability = iota
	Fixed
)

// Value is the tagged-union DataValue: every SQL scalar value plus a typed
// SQL NULL. Equality, hashing and comparison are total per spec.md §3.
type Value struct {
	Logical LogicalType
	// Raw holds the dynamic payload. nil means SQL NULL regardless of
	// Logical (a null still carries the type it would have had).
	//
	// Payload types by Logical:
	//   Boolean             bool
	//   Int8/16/32/64       int8/int16/int32/int64
	//   UInt8/16/32/64      uint8/uint16/uint32/uint64
	//   Float32/64          float32/float64
	//   Varchar             string
	//   Date                int32 (day count)
	//   DateTime            TimestampValue
	//   Time                TimeValue
	//   Timestamp           TimestampValue
	//   TimestampTz         TimestampValue
	//   Decimal             decimal.Decimal
	//   Tuple               []Value
	Raw interface{}

	// Unit and Variability are only meaningful when Logical == Varchar.
	Unit        LengthUnit
	Variability StringVariability

	// Precision/Scale are only meaningful when Logical == Decimal.
	Precision uint8
	Scale     uint8
}

// TimeValue is a time-of-day value with a 3-digit fractional-second scale.
type TimeValue struct {
	Nanos int64 // since midnight
	Scale uint8 // 0-3
}

// TimestampValue is a date+time value with a 1-9 digit fractional-second
// scale and an optional time zone.
type TimestampValue struct {
	When     time.Time
	Scale    uint8 // 0-9
	HasZone  bool
	ZoneName string
}

func Null(ty LogicalType) Value { return Value{Logical: ty} }

func NewBoolean(b bool) Value { return Value{Logical: Boolean, Raw: b} }
func NewInt8(v int8) Value    { return Value{Logical: Int8, Raw: v} }
func NewInt16(v int16) Value  { return Value{Logical: Int16, Raw: v} }
func NewInt32(v int32) Value  { return Value{Logical: Int32, Raw: v} }
func NewInt64(v int64) Value  { return Value{Logical: Int64, Raw: v} }
func NewUInt8(v uint8) Value  { return Value{Logical: UInt8, Raw: v} }
func NewUInt16(v uint16) Value{ return Value{Logical: UInt16, Raw: v} }
func NewUInt32(v uint32) Value{ return Value{Logical: UInt32, Raw: v} }
func NewUInt64(v uint64) Value{ return Value{Logical: UInt64, Raw: v} }
func NewFloat32(v float32) Value { return Value{Logical: Float32, Raw: v} }
func NewFloat64(v float64) Value { return Value{Logical: Float64, Raw: v} }

func NewVarchar(s string, unit LengthUnit, variability StringVariability) Value {
	return Value{Logical: Varchar, Raw: s, Unit: unit, Variability: variability}
}

// NewText is a convenience constructor for an ordinary variable-length,
// octet-counted string value.
func NewText(s string) Value {
	return NewVarchar(s, Octets, Variable)
}

func NewDecimal(d decimal.Decimal, precision, scale uint8) Value {
	return Value{Logical: Decimal, Raw: d, Precision: precision, Scale: scale}
}

func NewTuple(values []Value) Value {
	return Value{Logical: Tuple, Raw: values}
}

func (v Value) IsNull() bool { return v.Raw == nil }

// Bool returns the boolean payload and true if v is a non-null Boolean.
func (v Value) Bool() (bool, bool) {
	if v.IsNull() || v.Logical != Boolean {
		return false, false
	}
	return v.Raw.(bool), true
}

func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	switch v.Logical {
	case Varchar:
		return v.Raw.(string)
	case Decimal:
		return v.Raw.(decimal.Decimal).String()
	default:
		return fmt.Sprintf("%v", v.Raw)
	}
}

// Equal implements total equality. Per spec.md §3, NULL is never equal to
// itself under value equality (Equal), but is equal under Hash.
func (v Value) Equal(other Value) bool {
	if v.IsNull() || other.IsNull() {
		return false
	}
	if v.Logical != other.Logical {
		return false
	}
	if v.Logical == Float32 {
		return math.Float32bits(v.Raw.(float32)) == math.Float32bits(other.Raw.(float32))
	}
	if v.Logical == Float64 {
		return math.Float64bits(v.Raw.(float64)) == math.Float64bits(other.Raw.(float64))
	}
	if v.Logical == Tuple {
		a, b := v.Raw.([]Value), other.Raw.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	}
	if v.Logical == Decimal {
		return v.Raw.(decimal.Decimal).Equal(other.Raw.(decimal.Decimal))
	}
	return v.Raw == other.Raw
}

// Hash is total: unlike Equal, a typed NULL hashes equal to any other NULL
// of the same logical type.
func (v Value) Hash() uint64 {
	h := fnvOffset
	h = hashByte(h, byte(v.Logical))
	if v.IsNull() {
		return hashByte(h, 0xFF)
	}
	switch v.Logical {
	case Boolean:
		if v.Raw.(bool) {
			return hashByte(h, 1)
		}
		return hashByte(h, 0)
	case Float32:
		return hashUint64(h, uint64(math.Float32bits(v.Raw.(float32))))
	case Float64:
		return hashUint64(h, math.Float64bits(v.Raw.(float64)))
	case Varchar:
		return hashString(h, v.Raw.(string))
	case Decimal:
		return hashString(h, v.Raw.(decimal.Decimal).String())
	case Tuple:
		for _, e := range v.Raw.([]Value) {
			h = hashUint64(h, e.Hash())
		}
		return h
	default:
		return hashString(h, fmt.Sprintf("%v", v.Raw))
	}
}

const fnvOffset uint64 = 14695981039346656037
const fnvPrime uint64 = 1099511628211

func hashByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	return h * fnvPrime
}

func hashUint64(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = hashByte(h, byte(v>>(8*i)))
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = hashByte(h, s[i])
	}
	return h
}
