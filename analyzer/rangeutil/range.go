// Package rangeutil implements the range-detachment helper spec.md §4.2
// names: turning a simplified, column-anchored predicate (after SimplifyFilter
// has expanded IN/BETWEEN and pushed NOT through comparators) into a set of
// sorted scan bounds an IndexScan producer can consume directly, without
// re-evaluating the predicate row by row.
package rangeutil

import (
	"sort"

	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Bound is one endpoint of a Range. A nil Value means unbounded on that
// side (realizing Rust's std::collections::Bound::Unbounded, per
// SPEC_FULL.md's SUPPLEMENTED FEATURES note).
type Bound struct {
	Value     *types.Value
	Inclusive bool
}

func Unbounded() Bound { return Bound{} }

func Inclusive(v types.Value) Bound { return Bound{Value: &v, Inclusive: true} }
func Exclusive(v types.Value) Bound { return Bound{Value: &v, Inclusive: false} }

// Range is a single contiguous scan range over one column: [Low, High] with
// each side independently open/closed/unbounded. An equality predicate
// yields a single-point range (Low == High, both inclusive), which IsPoint
// reports; there is no separate field for it.
type Range struct {
	Column sql.ColumnSummary
	Low    Bound
	High   Bound
}

// IsPoint reports whether r denotes exactly one value.
func (r Range) IsPoint() bool {
	return r.Low.Value != nil && r.High.Value != nil &&
		r.Low.Inclusive && r.High.Inclusive && r.Low.Value.Equal(*r.High.Value)
}

// SortedRanges orders ranges over the same column by their low bound,
// ascending (unbounded-low sorts first). The ranges are not merged and may
// overlap.
type SortedRanges []Range

func (s SortedRanges) Len() int      { return len(s) }
func (s SortedRanges) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s SortedRanges) Less(i, j int) bool {
	if s[i].Low.Value == nil {
		return s[j].Low.Value != nil
	}
	if s[j].Low.Value == nil {
		return false
	}
	cmp, err := types.Compare(*s[i].Low.Value, *s[j].Low.Value)
	if err != nil {
		return false
	}
	return cmp < 0
}

// Detach walks a simplified predicate (an AND/OR tree of `column cmp
// constant` comparisons, as produced by analyzer.SimplifyFilter) and
// extracts, per referenced column, the set of Ranges implied by the
// predicate. Sub-expressions that cannot be reduced to a column/constant
// comparison are ignored for range-extraction purposes; the predicate
// itself is always still evaluated in full by the Filter/Scan producer, so
// an incomplete detachment only costs a missed scan-pruning opportunity,
// never correctness.
//
// Ranges from AND-ed comparisons on one column are listed side by side and
// are not intersected: `a > 1 AND a < 10` yields the two ranges (1, +inf)
// and (-inf, 10), not (1, 10). Ranges from an OR over one column are listed
// the same way, so a column's list alone does not tell a conjunction from a
// disjunction; only a list of exactly one range bounds every matching row.
func Detach(predicate sql.Expression) map[sql.ColumnSummary]SortedRanges {
	out := make(map[sql.ColumnSummary]SortedRanges)
	collectAnd(predicate, out)
	for col, ranges := range out {
		sort.Sort(ranges)
		out[col] = ranges
	}
	return out
}

// collectAnd descends through AND nodes, appending each conjunct's
// single-column range to that column's list without intersecting it with
// the ranges already there; an OR branch is handled by collectOr as a union
// of point/range candidates for one column at a time.
func collectAnd(e sql.Expression, out map[sql.ColumnSummary]SortedRanges) {
	if bin, ok := e.(*expression.Binary); ok && bin.Op == types.And {
		collectAnd(bin.Left, out)
		collectAnd(bin.Right, out)
		return
	}
	if bin, ok := e.(*expression.Binary); ok && bin.Op == types.Or {
		collectOr(e, out)
		return
	}
	col, rng, ok := comparisonToRange(e)
	if !ok {
		return
	}
	out[col] = append(out[col], rng)
}

// collectOr handles a disjunction over a single column by unioning each
// branch's candidate ranges; if any branch targets a different column than
// the others, the whole OR is skipped (no safe single-column range exists).
func collectOr(e sql.Expression, out map[sql.ColumnSummary]SortedRanges) {
	var branches []sql.Expression
	flattenOr(e, &branches)
	var col sql.ColumnSummary
	var ranges SortedRanges
	for i, b := range branches {
		c, r, ok := comparisonToRange(b)
		if !ok {
			return
		}
		if i == 0 {
			col = c
		} else if c != col {
			return
		}
		ranges = append(ranges, r)
	}
	out[col] = append(out[col], ranges...)
}

func flattenOr(e sql.Expression, out *[]sql.Expression) {
	if bin, ok := e.(*expression.Binary); ok && bin.Op == types.Or {
		flattenOr(bin.Left, out)
		flattenOr(bin.Right, out)
		return
	}
	*out = append(*out, e)
}

// comparisonToRange reduces a single `column cmp constant` (or `constant
// cmp column`, normalized via FlipComparison) binary expression to a Range.
func comparisonToRange(e sql.Expression) (sql.ColumnSummary, Range, bool) {
	bin, ok := e.(*expression.Binary)
	if !ok || !bin.Op.IsComparison() {
		return sql.ColumnSummary{}, Range{}, false
	}
	col, colOK := expression.UnpackColumn(bin.Left)
	val, valOK := expression.UnpackConstant(bin.Right)
	op := bin.Op
	if !colOK || !valOK {
		col, colOK = expression.UnpackColumn(bin.Right)
		val, valOK = expression.UnpackConstant(bin.Left)
		op = op.FlipComparison()
	}
	if !colOK || !valOK {
		return sql.ColumnSummary{}, Range{}, false
	}
	switch op {
	case types.Eq:
		return col, Range{Column: col, Low: Inclusive(val), High: Inclusive(val)}, true
	case types.Gt:
		return col, Range{Column: col, Low: Exclusive(val), High: Unbounded()}, true
	case types.GtEq:
		return col, Range{Column: col, Low: Inclusive(val), High: Unbounded()}, true
	case types.Lt:
		return col, Range{Column: col, Low: Unbounded(), High: Exclusive(val)}, true
	case types.LtEq:
		return col, Range{Column: col, Low: Unbounded(), High: Inclusive(val)}, true
	default:
		return sql.ColumnSummary{}, Range{}, false
	}
}
