package types

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNullCompare  = errors.New("types: cannot compare null values directly")
	ErrIncomparable = errors.New("types: no total order defined for this logical type")
)

// Compare orders two non-null values of the same logical type. Tuple
// comparison is lexicographic over component values, per spec.md §4.1.
// Callers must promote both operands to a common type first (MaxLogicalType
// + Cast); Compare itself does not promote.
func Compare(a, b Value) (int, error) {
	if a.IsNull() || b.IsNull() {
		return 0, ErrNullCompare
	}
	switch a.Logical {
	case Boolean:
		av, bv := a.Raw.(bool), b.Raw.(bool)
		if av == bv {
			return 0, nil
		}
		if !av {
			return -1, nil
		}
		return 1, nil
	case Int8:
		return compareOrdered(a.Raw.(int8), b.Raw.(int8)), nil
	case Int16:
		return compareOrdered(a.Raw.(int16), b.Raw.(int16)), nil
	case Int32:
		return compareOrdered(a.Raw.(int32), b.Raw.(int32)), nil
	case Int64:
		return compareOrdered(a.Raw.(int64), b.Raw.(int64)), nil
	case UInt8:
		return compareOrdered(a.Raw.(uint8), b.Raw.(uint8)), nil
	case UInt16:
		return compareOrdered(a.Raw.(uint16), b.Raw.(uint16)), nil
	case UInt32:
		return compareOrdered(a.Raw.(uint32), b.Raw.(uint32)), nil
	case UInt64:
		return compareOrdered(a.Raw.(uint64), b.Raw.(uint64)), nil
	case Float32:
		return compareOrdered(a.Raw.(float32), b.Raw.(float32)), nil
	case Float64:
		return compareOrdered(a.Raw.(float64), b.Raw.(float64)), nil
	case Varchar:
		return strings.Compare(a.Raw.(string), b.Raw.(string)), nil
	case Decimal:
		return a.Raw.(decimal.Decimal).Cmp(b.Raw.(decimal.Decimal)), nil
	case Date:
		return compareOrdered(a.Raw.(int32), b.Raw.(int32)), nil
	case DateTime, Timestamp, TimestampTz:
		at, bt := a.Raw.(TimestampValue), b.Raw.(TimestampValue)
		return compareTimestamps(at, bt), nil
	case Time:
		at, bt := a.Raw.(TimeValue), b.Raw.(TimeValue)
		an, bn := normalizeTimeScale(at), normalizeTimeScale(bt)
		return compareOrdered(an, bn), nil
	case Tuple:
		at, bt := a.Raw.([]Value), b.Raw.([]Value)
		n := len(at)
		if len(bt) < n {
			n = len(bt)
		}
		for i := 0; i < n; i++ {
			c, err := Compare(at[i], bt[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return compareOrdered(len(at), len(bt)), nil
	default:
		return 0, ErrIncomparable
	}
}

// scaleDuration returns the truncation granularity for a fractional-second
// scale of `digits` decimal places (e.g. 3 -> millisecond).
func scaleDuration(digits uint8) time.Duration {
	d := time.Second
	for i := uint8(0); i < digits && d > time.Nanosecond; i++ {
		d /= 10
	}
	return d
}

// compareTimestamps normalizes both operands to their common (coarser)
// scale before comparing, per spec.md §4.1's evaluator rule for time types.
func compareTimestamps(a, b TimestampValue) int {
	scale := a.Scale
	if b.Scale < scale {
		scale = b.Scale
	}
	at := a.When.Truncate(scaleDuration(scale))
	bt := b.When.Truncate(scaleDuration(scale))
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

func normalizeTimeScale(t TimeValue) int64 {
	d := scaleDuration(t.Scale)
	if d <= 0 {
		return t.Nanos
	}
	return (t.Nanos / int64(d)) * int64(d)
}

type ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func compareOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
