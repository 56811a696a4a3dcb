package expression

import (
	"fmt"
	"strings"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Tuple is the ScalarExpression::Tuple variant: a fixed-arity row value
// constructor, used for row-constructor comparisons and as VALUES rows.
type Tuple struct {
	Items []sql.Expression
}

func NewTuple(items []sql.Expression) *Tuple { return &Tuple{Items: items} }

func (t *Tuple) Type() types.LogicalType { return types.Tuple }

func (t *Tuple) Nullable() bool {
	for _, e := range t.Items {
		if e.Nullable() {
			return true
		}
	}
	return false
}

func (t *Tuple) Children() []sql.Expression { return t.Items }

func (t *Tuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &Tuple{Items: children}, nil
}

func (t *Tuple) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	values := make([]types.Value, len(t.Items))
	for i, item := range t.Items {
		v, err := item.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		val, ok := v.(types.Value)
		if !ok {
			return nil, sql.ErrTypeMismatch.New("tuple element did not evaluate to a types.Value")
		}
		values[i] = val
	}
	return types.NewTuple(values), nil
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, e := range t.Items {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
