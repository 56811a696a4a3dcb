package rowexec

import (
	"io"
	"sort"

	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// sortIter materializes its input once (Sort has no streaming variant in
// this executor: every ORDER BY fully drains its child before yielding a
// row), sorts it per Orders, then serves from the resulting slice.
type sortIter struct {
	orders []plan.SortOrder
	rows   []sql.Row
	pos    int
	err    error
	ready  bool
}

func newSortIter(ctx *sql.Context, orders []plan.SortOrder, child sql.RowIter) *sortIter {
	s := &sortIter{orders: orders}
	s.materialize(ctx, child)
	return s
}

func (s *sortIter) materialize(ctx *sql.Context, child sql.RowIter) {
	rows, err := drainAll(ctx, child)
	if err != nil {
		s.err = err
		s.ready = true
		return
	}
	keys := make([][]types.Value, len(rows))
	for i, row := range rows {
		k := make([]types.Value, len(s.orders))
		for j, o := range s.orders {
			v, err := evalValue(ctx, o.Expr, row)
			if err != nil {
				s.err = err
				s.ready = true
				return
			}
			k[j] = v
		}
		keys[i] = k
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return less(keys[i], keys[j], s.orders)
	})
	s.rows = rows
	s.ready = true
}

func less(a, b []types.Value, orders []plan.SortOrder) bool {
	for i, o := range orders {
		av, bv := a[i], b[i]
		if av.IsNull() || bv.IsNull() {
			if av.IsNull() && bv.IsNull() {
				continue
			}
			// NullsLast controls whether NULL sorts after every non-NULL
			// value regardless of ASC/DESC, per SQL's usual convention.
			if av.IsNull() {
				return !o.NullsLast
			}
			return o.NullsLast
		}
		cmp, err := types.Compare(av, bv)
		if err != nil || cmp == 0 {
			continue
		}
		if o.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func (s *sortIter) Next(ctx *sql.Context) (sql.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sortIter) Close(ctx *sql.Context) error { return nil }

// limitIter skips Offset rows then yields up to Count more.
type limitIter struct {
	child        sql.RowIter
	count        int64
	offset       int64
	yielded      int64
	skipped      int64
	offsetDone   bool
}

func (l *limitIter) Next(ctx *sql.Context) (sql.Row, error) {
	if !l.offsetDone {
		for l.skipped < l.offset {
			if _, err := l.child.Next(ctx); err != nil {
				return nil, err
			}
			l.skipped++
		}
		l.offsetDone = true
	}
	if l.yielded >= l.count {
		return nil, io.EOF
	}
	row, err := l.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	l.yielded++
	return row, nil
}

func (l *limitIter) Close(ctx *sql.Context) error { return l.child.Close(ctx) }

// unionIter concatenates left then right, optionally deduplicating rows
// across the whole result (UNION vs UNION ALL).
type unionIter struct {
	left, right sql.RowIter
	distinct    bool
	seen        map[string]struct{}
	onLeft      bool
	started     bool
}

func newUnionIter(left, right sql.RowIter, distinct bool) *unionIter {
	u := &unionIter{left: left, right: right, distinct: distinct, onLeft: true}
	if distinct {
		u.seen = make(map[string]struct{})
	}
	return u
}

func (u *unionIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		var row sql.Row
		var err error
		if u.onLeft {
			row, err = u.left.Next(ctx)
			if err == io.EOF {
				u.onLeft = false
				continue
			}
		} else {
			row, err = u.right.Next(ctx)
		}
		if err != nil {
			return nil, err
		}
		if u.distinct {
			key := rowKey(row)
			if _, dup := u.seen[key]; dup {
				continue
			}
			u.seen[key] = struct{}{}
		}
		return row, nil
	}
}

func rowKey(row sql.Row) string {
	values := make([]types.Value, 0, len(row))
	for _, c := range row {
		if v, ok := c.(types.Value); ok {
			values = append(values, v)
		}
	}
	return groupKey(values)
}

func (u *unionIter) Close(ctx *sql.Context) error {
	err1 := u.left.Close(ctx)
	err2 := u.right.Close(ctx)
	if err1 != nil {
		return err1
	}
	return err2
}
