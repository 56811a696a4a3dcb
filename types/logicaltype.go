// Package types implements the DataValue tagged union, the LogicalType
// lattice and its max-logical-type join, and (in the evaluator
// subpackage) the per-(type, operator) scalar evaluators.
package types

// LogicalType is the type lattice node carried by every DataValue and every
// non-trivial ScalarExpression.
type LogicalType uint8

const (
	Invalid LogicalType = iota
	SqlNull

	Boolean

	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64

	Float32
	Float64

	// Char/Varchar both carry a LengthUnit + Fixedness tag out of band, on
	// the Value itself (see value.go); the LogicalType only distinguishes
	// "some string".
	Varchar

	Date
	DateTime
	Time
	Timestamp
	TimestampTz

	Decimal
	Tuple
)

func (t LogicalType) String() string {
	switch t {
	case Invalid:
		return "invalid"
	case SqlNull:
		return "null"
	case Boolean:
		return "boolean"
	case Int8:
		return "tinyint"
	case Int16:
		return "smallint"
	case Int32:
		return "int"
	case Int64:
		return "bigint"
	case UInt8:
		return "tinyint unsigned"
	case UInt16:
		return "smallint unsigned"
	case UInt32:
		return "int unsigned"
	case UInt64:
		return "bigint unsigned"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Varchar:
		return "varchar"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Time:
		return "time"
	case Timestamp:
		return "timestamp"
	case TimestampTz:
		return "timestamp with time zone"
	case Decimal:
		return "decimal"
	case Tuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// IsInteger reports whether t is one of the signed or unsigned integer
// widths.
func (t LogicalType) IsInteger() bool {
	switch t {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// IsUnsigned reports whether t is one of the unsigned integer widths.
func (t LogicalType) IsUnsigned() bool {
	switch t {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// IsFloat reports whether t is Float32 or Float64.
func (t LogicalType) IsFloat() bool {
	return t == Float32 || t == Float64
}

// IsNumeric reports whether t participates in arithmetic promotion.
func (t LogicalType) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat() || t == Decimal
}

// ToSigned returns the signed counterpart of an unsigned integer type, used
// by unary minus promotion (unsigned types must be cast to signed before
// negation).
func (t LogicalType) ToSigned() LogicalType {
	switch t {
	case UInt8:
		return Int16
	case UInt16:
		return Int32
	case UInt32:
		return Int64
	case UInt64:
		return Int64
	default:
		return t
	}
}

// integerRank orders the integer widths for promotion purposes; signed and
// unsigned types of the same width share a rank, and maxNumeric resolves
// such a pair to the next wider signed type (widenSigned).
var integerRank = map[LogicalType]int{
	Int8: 1, UInt8: 1,
	Int16: 2, UInt16: 2,
	Int32: 3, UInt32: 3,
	Int64: 4, UInt64: 4,
}

// MaxLogicalType computes the join of two types in the promotion lattice,
// used to promote the operands of a binary expression to a common type.
// numeric ⊔ null = numeric; Int32 ⊔ Int64 = Int64. For other mismatched
// pairs, Varchar wins if either side is Varchar, two temporal types give
// the higher-ranked one, and any remaining pair gives a.
func MaxLogicalType(a, b LogicalType) LogicalType {
	if a == b {
		return a
	}
	if a == SqlNull {
		return b
	}
	if b == SqlNull {
		return a
	}
	if a.IsNumeric() && b.IsNumeric() {
		return maxNumeric(a, b)
	}
	if a == Varchar || b == Varchar {
		return Varchar
	}
	if a.isTemporal() && b.isTemporal() {
		return maxTemporal(a, b)
	}
	return a
}

func (t LogicalType) isTemporal() bool {
	switch t {
	case Date, DateTime, Time, Timestamp, TimestampTz:
		return true
	}
	return false
}

func maxTemporal(a, b LogicalType) LogicalType {
	rank := map[LogicalType]int{Date: 1, Time: 2, DateTime: 3, Timestamp: 4, TimestampTz: 5}
	if rank[a] >= rank[b] {
		return a
	}
	return b
}

func maxNumeric(a, b LogicalType) LogicalType {
	if a == Decimal || b == Decimal {
		return Decimal
	}
	if a.IsFloat() || b.IsFloat() {
		if a == Float64 || b == Float64 {
			return Float64
		}
		return Float32
	}
	// both integers
	ra, rb := integerRank[a], integerRank[b]
	if ra == rb {
		// same width, mixed signedness: promote to the next wider signed type
		if a.IsUnsigned() {
			return widenSigned(a)
		}
		return widenSigned(b)
	}
	if ra > rb {
		return a
	}
	return b
}

func widenSigned(unsigned LogicalType) LogicalType {
	switch unsigned {
	case UInt8:
		return Int16
	case UInt16:
		return Int32
	case UInt32:
		return Int64
	case UInt64:
		return Int64
	}
	return unsigned
}
