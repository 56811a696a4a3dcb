// Package rowexec realizes spec.md §4.3's pull-based executor: a top-level
// BuildRead/BuildWrite pair that walks a (post-optimization) sql.Node tree
// and instantiates the matching physical producer, each satisfying
// sql.RowIter. Node itself stays purely structural (package plan); all
// physical dispatch lives here, so the same logical tree survives
// rewriting by package analyzer without carrying executor state.
package rowexec

import (
	"fmt"
	"io"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// evalValue evaluates expr against row and unwraps the result into a
// types.Value, failing loudly if an expression's Eval contract is broken
// (every Expression must yield a types.Value wrapped in interface{}).
func evalValue(ctx *sql.Context, expr sql.Expression, row sql.Row) (types.Value, error) {
	v, err := expr.Eval(ctx, row)
	if err != nil {
		return types.Value{}, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return types.Value{}, sql.ErrTypeMismatch.New(fmt.Sprintf("expression %s did not evaluate to a types.Value", expr.String()))
	}
	return val, nil
}

// evalRow evaluates every expression in exprs against row, producing a new
// projected sql.Row.
func evalRow(ctx *sql.Context, exprs []sql.Expression, row sql.Row) (sql.Row, error) {
	out := make(sql.Row, len(exprs))
	for i, e := range exprs {
		v, err := evalValue(ctx, e, row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// drainAll pulls every row out of it, closing it once exhausted or on
// error. Used by producers that must materialize their input before
// producing their first output row (Sort, hash aggregation, hash join).
func drainAll(ctx *sql.Context, it sql.RowIter) ([]sql.Row, error) {
	var rows []sql.Row
	for {
		row, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			it.Close(ctx)
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := it.Close(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

// groupKey turns an evaluated group-by tuple into a comparable map key.
// types.Value.Hash is total over NULLs (unlike Equal), matching GROUP BY's
// treatment of NULL as its own group.
func groupKey(values []types.Value) string {
	key := make([]byte, 0, len(values)*9)
	for _, v := range values {
		h := v.Hash()
		key = append(key,
			byte(h), byte(h>>8), byte(h>>16), byte(h>>24),
			byte(h>>32), byte(h>>40), byte(h>>48), byte(h>>56), 0xFF)
	}
	return string(key)
}
