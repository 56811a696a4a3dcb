package plan

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
)

// Join is the Operator::Join variant: a binary operator combining Left and
// Right rows under On, with PhysicalOption choosing nested-loop vs hash
// execution. IsOptimized marks that SimplifyFilter has already rewritten
// On, so repeated batch passes don't re-walk it.
type Join struct {
	Type        JoinType
	On          sql.Expression // nil for CrossJoin
	Left, Right sql.Node
	Physical    PhysicalOption
	IsOptimized bool
}

func NewJoin(joinType JoinType, on sql.Expression, left, right sql.Node) *Join {
	return &Join{Type: joinType, On: on, Left: left, Right: right, Physical: PhysicalNestedLoopJoin{}}
}

func (j *Join) Schema() sql.Schema {
	return append(append(sql.Schema{}, j.Left.Schema()...), j.Right.Schema()...)
}

func (j *Join) Children() []sql.Node { return []sql.Node{j.Left, j.Right} }

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("plan: Join takes exactly two children")
	}
	return &Join{Type: j.Type, On: j.On, Left: children[0], Right: children[1], Physical: j.Physical, IsOptimized: j.IsOptimized}, nil
}

func (j *Join) Expressions() []sql.Expression {
	if j.On == nil {
		return nil
	}
	return []sql.Expression{j.On}
}

func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if j.On == nil {
		if len(exprs) != 0 {
			return nil, fmt.Errorf("plan: CrossJoin takes no expressions")
		}
		return j, nil
	}
	if len(exprs) != 1 {
		return nil, fmt.Errorf("plan: Join takes exactly one expression")
	}
	return &Join{Type: j.Type, On: exprs[0], Left: j.Left, Right: j.Right, Physical: j.Physical, IsOptimized: j.IsOptimized}, nil
}

func (j *Join) WithPhysical(opt PhysicalOption) *Join {
	return &Join{Type: j.Type, On: j.On, Left: j.Left, Right: j.Right, Physical: opt, IsOptimized: j.IsOptimized}
}

func (j *Join) String() string { return fmt.Sprintf("%s", j.Type.String()) }
