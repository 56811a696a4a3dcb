package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
)

// Values is the Operator::Values variant: a literal row-constructor list,
// used for INSERT ... VALUES and for VALUES(...) as a standalone relation.
type Values struct {
	noChildren
	Output sql.Schema
	Rows   [][]sql.Expression
}

func NewValues(output sql.Schema, rows [][]sql.Expression) *Values {
	return &Values{Output: output, Rows: rows}
}

func (v *Values) Schema() sql.Schema { return v.Output }

func (v *Values) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Values takes no children")
	}
	return v, nil
}

func (v *Values) Expressions() []sql.Expression {
	var out []sql.Expression
	for _, row := range v.Rows {
		out = append(out, row...)
	}
	return out
}

func (v *Values) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	rows := make([][]sql.Expression, len(v.Rows))
	pos := 0
	for i, row := range v.Rows {
		rows[i] = exprs[pos : pos+len(row)]
		pos += len(row)
	}
	return &Values{Output: v.Output, Rows: rows}, nil
}

func (v *Values) String() string { return fmt.Sprintf("Values(%d rows)", len(v.Rows)) }

// Dummy is the Operator::Dummy variant: yields exactly one row with no
// columns, used as the child of a Project with no FROM clause (e.g.
// SELECT 1 + 1).
type Dummy struct {
	noChildren
}

func NewDummy() *Dummy { return &Dummy{} }

func (Dummy) Schema() sql.Schema { return sql.Schema{} }

func (d *Dummy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Dummy takes no children")
	}
	return d, nil
}

func (Dummy) String() string { return "Dummy" }
