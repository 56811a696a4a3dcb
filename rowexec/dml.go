package rowexec

import (
	"io"

	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage"
	"github.com/kvsql/kvsql/types"
)

// singleRow yields exactly one row then EOF, used to report rows_affected
// for every DML/DDL statement.
func singleRow(row sql.Row) sql.RowIter { return sql.RowsToRowIter(row) }

func rowsAffected(n int64) sql.RowIter {
	return singleRow(sql.Row{types.NewInt64(n)})
}

func buildInsert(ctx *sql.Context, tx storage.Transaction, ins *plan.Insert, child sql.RowIter) (sql.RowIter, error) {
	full := ins.Table.Schema()
	var n int64
	for {
		row, err := child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			child.Close(ctx)
			return nil, err
		}
		out := row
		if ins.Columns != nil {
			out = expandToFullRow(full, ins.Columns, row)
		}
		if err := tx.AppendTuple(ins.Table.Name, out); err != nil {
			child.Close(ctx)
			return nil, err
		}
		n++
	}
	if err := child.Close(ctx); err != nil {
		return nil, err
	}
	return rowsAffected(n), nil
}

// expandToFullRow places row's values (given for only ins.Columns) into a
// full-width row matching the table's schema, leaving every other column
// NULL.
func expandToFullRow(full sql.Schema, columns []string, row sql.Row) sql.Row {
	out := make(sql.Row, len(full))
	for i, c := range full {
		out[i] = types.Null(c.Type)
	}
	for i, name := range columns {
		for j, c := range full {
			if c.Name == name {
				out[j] = row[i]
				break
			}
		}
	}
	return out
}

func buildUpdate(ctx *sql.Context, tx storage.Transaction, u *plan.Update, child sql.RowIter) (sql.RowIter, error) {
	full := u.Table.Schema()
	positions := make(map[string]int, len(u.Assignments))
	for name := range u.Assignments {
		for j, c := range full {
			if c.Name == name {
				positions[name] = j
			}
		}
	}
	var n int64
	for {
		old, err := child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			child.Close(ctx)
			return nil, err
		}
		newRow := old.Copy()
		for name, expr := range u.Assignments {
			v, err := evalValue(ctx, expr, old)
			if err != nil {
				child.Close(ctx)
				return nil, err
			}
			newRow[positions[name]] = v
		}
		if err := tx.UpdateTuple(u.Table.Name, old, newRow); err != nil {
			child.Close(ctx)
			return nil, err
		}
		n++
	}
	if err := child.Close(ctx); err != nil {
		return nil, err
	}
	return rowsAffected(n), nil
}

func buildDelete(ctx *sql.Context, tx storage.Transaction, d *plan.Delete, child sql.RowIter) (sql.RowIter, error) {
	var n int64
	for {
		row, err := child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			child.Close(ctx)
			return nil, err
		}
		if err := tx.DeleteTuple(d.Table.Name, row); err != nil {
			child.Close(ctx)
			return nil, err
		}
		n++
	}
	if err := child.Close(ctx); err != nil {
		return nil, err
	}
	return rowsAffected(n), nil
}

// buildAnalyze drains child (a scan of the target table) without writing
// anything: statistics collection is named by spec.md but no cost-based
// planning consumes it yet, so Analyze's only observable effect is
// reporting how many rows it visited.
func buildAnalyze(ctx *sql.Context, child sql.RowIter) (sql.RowIter, error) {
	rows, err := drainAll(ctx, child)
	if err != nil {
		return nil, err
	}
	return rowsAffected(int64(len(rows))), nil
}

// buildCopy is a structural stand-in: spec.md names bulk load/unload but
// leaves the actual transport (file I/O, wire format) out of scope, so
// Copy reports zero rows moved rather than touching a filesystem.
func buildCopy() sql.RowIter {
	return rowsAffected(0)
}
