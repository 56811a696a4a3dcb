package rowexec

import (
	"io"

	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// aggState accumulates one AggCall's running value for one group.
type aggState struct {
	kind    expression.AggKind
	count   int64
	sum     float64
	sumSet  bool
	minmax  types.Value
	haveMM  bool
	ty      types.LogicalType
	seen    map[string]struct{} // for DISTINCT
	distinct bool
}

func newAggState(call *expression.AggCall) *aggState {
	return &aggState{kind: call.Kind, ty: call.Arg.Type(), distinct: call.Distinct, seen: map[string]struct{}{}}
}

func (s *aggState) add(v types.Value) {
	if s.kind != expression.AggCount && v.IsNull() {
		return
	}
	if s.distinct {
		key := groupKey([]types.Value{v})
		if _, dup := s.seen[key]; dup {
			return
		}
		s.seen[key] = struct{}{}
	}
	switch s.kind {
	case expression.AggCount:
		if !v.IsNull() {
			s.count++
		}
	case expression.AggSum, expression.AggAvg:
		f, err := toFloat(v)
		if err != nil {
			return
		}
		s.sum += f
		s.sumSet = true
		s.count++
	case expression.AggMin:
		if !s.haveMM {
			s.minmax, s.haveMM = v, true
			return
		}
		if cmp, err := types.Compare(v, s.minmax); err == nil && cmp < 0 {
			s.minmax = v
		}
	case expression.AggMax:
		if !s.haveMM {
			s.minmax, s.haveMM = v, true
			return
		}
		if cmp, err := types.Compare(v, s.minmax); err == nil && cmp > 0 {
			s.minmax = v
		}
	}
}

func toFloat(v types.Value) (float64, error) {
	out, err := types.Cast(v, types.Float64)
	if err != nil {
		return 0, err
	}
	return out.Raw.(float64), nil
}

func (s *aggState) result() types.Value {
	switch s.kind {
	case expression.AggCount:
		return types.NewInt64(s.count)
	case expression.AggSum:
		if !s.sumSet {
			return types.Null(s.resultType())
		}
		out, _ := types.Cast(types.NewFloat64(s.sum), s.resultType())
		return out
	case expression.AggAvg:
		if s.count == 0 {
			return types.Null(types.Float64)
		}
		return types.NewFloat64(s.sum / float64(s.count))
	case expression.AggMin, expression.AggMax:
		if !s.haveMM {
			return types.Null(s.ty)
		}
		return s.minmax
	default:
		return types.Null(s.ty)
	}
}

func (s *aggState) resultType() types.LogicalType {
	if s.ty == types.Invalid {
		return types.Float64
	}
	return s.ty
}

// aggIter implements both SimpleAgg (no GROUP BY, one implicit group) and
// HashAgg (GROUP BY, one group per distinct key) by fully draining the
// child, since a pull-based aggregate cannot emit anything until its last
// input row has been seen.
type aggIter struct {
	groupBy  []sql.Expression
	aggCalls []*expression.AggCall
	rows     []sql.Row
	pos      int
	err      error
}

func newAggIter(ctx *sql.Context, a *plan.Aggregate, child sql.RowIter) *aggIter {
	calls := make([]*expression.AggCall, len(a.AggCalls))
	for i, e := range a.AggCalls {
		call, ok := e.(*expression.AggCall)
		if !ok {
			return &aggIter{err: sql.ErrInvariantViolation.New("Aggregate.AggCalls entry is not an AggCall")}
		}
		calls[i] = call
	}
	it := &aggIter{groupBy: a.GroupBy, aggCalls: calls}
	it.run(ctx, child)
	return it
}

func (a *aggIter) run(ctx *sql.Context, child sql.RowIter) {
	type group struct {
		keyRow sql.Row
		states []*aggState
	}
	groups := make(map[string]*group)
	var order []string

	for {
		row, err := child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			a.err = err
			child.Close(ctx)
			return
		}
		keyRow, err := evalRow(ctx, a.groupBy, row)
		if err != nil {
			a.err = err
			child.Close(ctx)
			return
		}
		keyValues := make([]types.Value, len(keyRow))
		for i, v := range keyRow {
			keyValues[i] = v.(types.Value)
		}
		key := groupKey(keyValues)
		g, ok := groups[key]
		if !ok {
			g = &group{keyRow: keyRow, states: make([]*aggState, len(a.aggCalls))}
			for i, call := range a.aggCalls {
				g.states[i] = newAggState(call)
			}
			groups[key] = g
			order = append(order, key)
		}
		for i, call := range a.aggCalls {
			if call.IsCountStar() {
				g.states[i].count++
				continue
			}
			v, err := evalValue(ctx, call.Arg, row)
			if err != nil {
				a.err = err
				child.Close(ctx)
				return
			}
			g.states[i].add(v)
		}
	}
	if err := child.Close(ctx); err != nil {
		a.err = err
		return
	}

	if len(order) == 0 && len(a.groupBy) == 0 {
		// SimpleAgg over zero input rows still yields one row (COUNT=0,
		// SUM/AVG/MIN/MAX=NULL), matching standard SQL aggregate semantics.
		states := make([]*aggState, len(a.aggCalls))
		for i, call := range a.aggCalls {
			states[i] = newAggState(call)
		}
		a.rows = append(a.rows, buildAggRow(nil, states))
		return
	}
	for _, key := range order {
		g := groups[key]
		a.rows = append(a.rows, buildAggRow(g.keyRow, g.states))
	}
}

func buildAggRow(keyRow sql.Row, states []*aggState) sql.Row {
	out := make(sql.Row, 0, len(keyRow)+len(states))
	out = append(out, keyRow...)
	for _, s := range states {
		out = append(out, s.result())
	}
	return out
}

func (a *aggIter) Next(ctx *sql.Context) (sql.Row, error) {
	if a.err != nil {
		return nil, a.err
	}
	if a.pos >= len(a.rows) {
		return nil, io.EOF
	}
	row := a.rows[a.pos]
	a.pos++
	return row, nil
}

func (a *aggIter) Close(ctx *sql.Context) error { return nil }
