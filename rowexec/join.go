package rowexec

import (
	"io"

	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
)

// nestedLoopJoinIter is the always-applicable join strategy: for every left
// row, scan the (materialized once) right side and emit combined rows that
// satisfy On. RightJoin/FullJoin additionally track which right rows never
// matched any left row (for the right-outer NULL-padding pass), and
// LeftJoin/FullJoin pad each left row that matched nothing (the left-outer
// NULL pad).
type nestedLoopJoinIter struct {
	joinType plan.JoinType
	on       sql.Expression

	left       sql.RowIter
	rightRows  []sql.Row
	rightWidth int
	leftWidth  int

	curLeft      sql.Row
	curLeftMatch bool
	rightPos     int
	leftDone     bool

	rightMatched []bool // parallel to rightRows, for RightJoin/FullJoin padding
	rightPadPos  int
	padding      bool
}

func buildNestedLoopJoin(ctx *sql.Context, j *plan.Join, left, right sql.RowIter) (sql.RowIter, error) {
	rightRows, err := drainAll(ctx, right)
	if err != nil {
		return nil, err
	}
	rightWidth := len(j.Right.Schema())
	leftWidth := len(j.Left.Schema())
	it := &nestedLoopJoinIter{
		joinType:   j.Type,
		on:         j.On,
		left:       left,
		rightRows:  rightRows,
		rightWidth: rightWidth,
		leftWidth:  leftWidth,
	}
	if j.Type == plan.RightJoin || j.Type == plan.FullJoin {
		it.rightMatched = make([]bool, len(rightRows))
	}
	return it, nil
}

func combine(left, right sql.Row) sql.Row {
	out := make(sql.Row, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return out
}

func nullPad(n int) sql.Row {
	return make(sql.Row, n)
}

func (n *nestedLoopJoinIter) matches(ctx *sql.Context, left, right sql.Row) (bool, error) {
	if n.on == nil {
		return true, nil
	}
	v, err := evalValue(ctx, n.on, combine(left, right))
	if err != nil {
		return false, err
	}
	b, ok := v.Bool()
	return ok && b, nil
}

func (n *nestedLoopJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	if n.padding {
		return n.nextRightPad(ctx)
	}
	for {
		if n.curLeft == nil {
			if n.leftDone {
				return n.startRightPad(ctx)
			}
			row, err := n.left.Next(ctx)
			if err == io.EOF {
				n.leftDone = true
				return n.startRightPad(ctx)
			}
			if err != nil {
				return nil, err
			}
			n.curLeft = row
			n.curLeftMatch = false
			n.rightPos = 0
		}

		for n.rightPos < len(n.rightRows) {
			right := n.rightRows[n.rightPos]
			n.rightPos++
			ok, err := n.matches(ctx, n.curLeft, right)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			n.curLeftMatch = true
			if n.rightMatched != nil {
				n.rightMatched[n.rightPos-1] = true
			}
			if n.joinType == plan.SemiJoin {
				// One match is enough; skip the rest of this left row's probe.
				n.rightPos = len(n.rightRows)
				row := n.curLeft
				n.curLeft = nil
				return row, nil
			}
			if n.joinType == plan.AntiJoin {
				continue
			}
			return combine(n.curLeft, right), nil
		}

		// Right side exhausted for this left row.
		left, matched := n.curLeft, n.curLeftMatch
		n.curLeft = nil
		switch n.joinType {
		case plan.LeftJoin, plan.FullJoin:
			if !matched {
				return combine(left, nullPad(n.rightWidth)), nil
			}
		case plan.AntiJoin:
			if !matched {
				return left, nil
			}
		}
		// InnerJoin/CrossJoin/SemiJoin/RightJoin with no match: fall through
		// to the next left row.
	}
}

func (n *nestedLoopJoinIter) startRightPad(ctx *sql.Context) (sql.Row, error) {
	if n.joinType != plan.RightJoin && n.joinType != plan.FullJoin {
		return nil, io.EOF
	}
	n.padding = true
	n.rightPadPos = 0
	return n.nextRightPad(ctx)
}

func (n *nestedLoopJoinIter) nextRightPad(ctx *sql.Context) (sql.Row, error) {
	for n.rightPadPos < len(n.rightRows) {
		pos := n.rightPadPos
		n.rightPadPos++
		if !n.rightMatched[pos] {
			return combine(nullPad(n.leftWidth), n.rightRows[pos]), nil
		}
	}
	return nil, io.EOF
}

func (n *nestedLoopJoinIter) Close(ctx *sql.Context) error { return n.left.Close(ctx) }
