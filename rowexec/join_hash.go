package rowexec

import (
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// hashJoinIter builds a hash table over the right side keyed by an
// equality condition's right-hand columns, then probes it once per left
// row. Only an InnerJoin whose On is a (possibly AND-chained) top-level
// equality condition is hashable; for anything else buildHashJoin reports
// false and BuildRead falls back to the nested-loop strategy, matching
// spec.md's note that PhysicalHashJoin is an optimization, not a semantic
// requirement.
type hashJoinIter struct {
	joinType   plan.JoinType
	leftKeys   []sql.Expression
	rightKeys  []sql.Expression
	left       sql.RowIter
	table      map[string][]sql.Row
	rightWidth int
	leftWidth  int

	bucket    []sql.Row
	bucketPos int
	curLeft   sql.Row
	matched   bool
}

func buildHashJoin(ctx *sql.Context, j *plan.Join, left, right sql.RowIter) (sql.RowIter, bool, error) {
	leftKeys, rightKeys, ok := equalityKeys(j.On)
	if !ok || j.Type != plan.InnerJoin {
		return nil, false, nil
	}
	rightRows, err := drainAll(ctx, right)
	if err != nil {
		return nil, false, err
	}
	table := make(map[string][]sql.Row, len(rightRows))
	for _, row := range rightRows {
		key, err := keyOf(ctx, rightKeys, row)
		if err != nil {
			return nil, false, err
		}
		table[key] = append(table[key], row)
	}
	return &hashJoinIter{
		joinType:   j.Type,
		leftKeys:   leftKeys,
		rightKeys:  rightKeys,
		left:       left,
		table:      table,
		rightWidth: len(j.Right.Schema()),
		leftWidth:  len(j.Left.Schema()),
	}, true, nil
}

func keyOf(ctx *sql.Context, keys []sql.Expression, row sql.Row) (string, error) {
	values := make([]types.Value, len(keys))
	for i, k := range keys {
		v, err := evalValue(ctx, k, row)
		if err != nil {
			return "", err
		}
		values[i] = v
	}
	return groupKey(values), nil
}

// equalityKeys decomposes on into parallel left/right key-expression lists
// if it is a conjunction of `leftExpr = rightExpr` comparisons; any other
// shape returns ok=false. Which side each operand reads is not checked: the
// left operand of every comparison is evaluated against left rows and the
// right operand against right rows.
func equalityKeys(on sql.Expression) (left, right []sql.Expression, ok bool) {
	if on == nil {
		return nil, nil, false
	}
	var conjuncts []sql.Expression
	flattenAnd(on, &conjuncts)
	for _, c := range conjuncts {
		bin, isBin := c.(*expression.Binary)
		if !isBin || bin.Op != types.Eq {
			return nil, nil, false
		}
		left = append(left, bin.Left)
		right = append(right, bin.Right)
	}
	return left, right, len(left) > 0
}

func flattenAnd(e sql.Expression, out *[]sql.Expression) {
	if bin, ok := e.(*expression.Binary); ok && bin.Op == types.And {
		flattenAnd(bin.Left, out)
		flattenAnd(bin.Right, out)
		return
	}
	*out = append(*out, e)
}

func (h *hashJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if h.curLeft == nil {
			row, err := h.left.Next(ctx)
			if err != nil {
				return nil, err
			}
			h.curLeft = row
			key, err := keyOf(ctx, h.leftKeys, row)
			if err != nil {
				return nil, err
			}
			h.bucket = h.table[key]
			h.bucketPos = 0
		}
		if h.bucketPos < len(h.bucket) {
			right := h.bucket[h.bucketPos]
			h.bucketPos++
			return combine(h.curLeft, right), nil
		}
		h.curLeft = nil
	}
}

func (h *hashJoinIter) Close(ctx *sql.Context) error { return h.left.Close(ctx) }
