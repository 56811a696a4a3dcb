package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxLogicalTypeIdentity(t *testing.T) {
	require.Equal(t, Int32, MaxLogicalType(Int32, Int32))
}

func TestMaxLogicalTypeNullPromotesToOther(t *testing.T) {
	require.Equal(t, Int32, MaxLogicalType(SqlNull, Int32))
	require.Equal(t, Int32, MaxLogicalType(Int32, SqlNull))
}

func TestMaxLogicalTypeIntegerWidening(t *testing.T) {
	require.Equal(t, Int64, MaxLogicalType(Int32, Int64))
	require.Equal(t, Int64, MaxLogicalType(Int64, Int32))
}

func TestMaxLogicalTypeMixedSignednessWidensSigned(t *testing.T) {
	require.Equal(t, Int16, MaxLogicalType(Int8, UInt8))
	require.Equal(t, Int64, MaxLogicalType(UInt64, Int64))
}

func TestMaxLogicalTypeFloatDominatesInt(t *testing.T) {
	require.Equal(t, Float64, MaxLogicalType(Int32, Float64))
}

func TestMaxLogicalTypeDecimalDominates(t *testing.T) {
	require.Equal(t, Decimal, MaxLogicalType(Decimal, Float64))
	require.Equal(t, Decimal, MaxLogicalType(Int32, Decimal))
}

func TestMaxLogicalTypeStringMismatchPromotesToVarchar(t *testing.T) {
	require.Equal(t, Varchar, MaxLogicalType(Varchar, Int32))
	require.Equal(t, Varchar, MaxLogicalType(Int32, Varchar))
}

func TestLogicalTypePredicates(t *testing.T) {
	require.True(t, Int32.IsInteger())
	require.False(t, Int32.IsUnsigned())
	require.True(t, UInt32.IsUnsigned())
	require.True(t, Float64.IsFloat())
	require.True(t, Decimal.IsNumeric())
	require.False(t, Varchar.IsNumeric())
}

func TestLogicalTypeToSigned(t *testing.T) {
	require.Equal(t, Int16, UInt8.ToSigned())
	require.Equal(t, Int64, UInt64.ToSigned())
	require.Equal(t, Int32, Int32.ToSigned())
}
