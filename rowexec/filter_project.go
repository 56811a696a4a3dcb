package rowexec

import (
	"github.com/kvsql/kvsql/sql"
)

// filterIter pulls from child, skipping any row whose predicate doesn't
// evaluate to TRUE (a NULL or FALSE result both exclude the row, per SQL's
// three-valued WHERE semantics).
type filterIter struct {
	child     sql.RowIter
	predicate sql.Expression
}

func (f *filterIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := f.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		v, err := evalValue(ctx, f.predicate, row)
		if err != nil {
			return nil, err
		}
		if b, ok := v.Bool(); ok && b {
			return row, nil
		}
	}
}

func (f *filterIter) Close(ctx *sql.Context) error { return f.child.Close(ctx) }

// projectIter re-evaluates Projections against each row pulled from child.
type projectIter struct {
	child       sql.RowIter
	projections []sql.Expression
}

func (p *projectIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := p.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	return evalRow(ctx, p.projections, row)
}

func (p *projectIter) Close(ctx *sql.Context) error { return p.child.Close(ctx) }
