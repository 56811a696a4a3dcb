package rowexec

import (
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
)

// buildValues evaluates every row's expressions eagerly (there is no
// source row to evaluate against — Values rows are constants or
// expressions over already-bound parameters) and serves the result as a
// materialized RowIter.
func buildValues(ctx *sql.Context, v *plan.Values) (sql.RowIter, error) {
	rows := make([]sql.Row, len(v.Rows))
	for i, exprs := range v.Rows {
		row, err := evalRow(ctx, exprs, nil)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return sql.RowsToRowIter(rows...), nil
}

func buildDummy() sql.RowIter {
	return sql.RowsToRowIter(sql.Row{})
}
