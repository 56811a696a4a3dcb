package expression

import (
	"fmt"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// AggKind enumerates the aggregate functions the executor's Hash/SimpleAgg
// producers recognize.
type AggKind uint8

const (
	AggCount AggKind = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

func (k AggKind) String() string {
	switch k {
	case AggCount:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	default:
		return "?"
	}
}

// AggCall is the ScalarExpression::AggCall variant. COUNT(*) is represented
// by Arg being a Literal string "*"; HasCountStar below recognizes that
// shape specifically.
type AggCall struct {
	Kind     AggKind
	Arg      sql.Expression
	Distinct bool
}

func NewAggCall(kind AggKind, arg sql.Expression, distinct bool) *AggCall {
	return &AggCall{Kind: kind, Arg: arg, Distinct: distinct}
}

func NewCountStar() *AggCall {
	return &AggCall{Kind: AggCount, Arg: NewLiteral(types.NewText("*"))}
}

func (a *AggCall) Type() types.LogicalType {
	switch a.Kind {
	case AggCount:
		return types.Int64
	case AggAvg:
		return types.Float64
	default:
		return a.Arg.Type()
	}
}

func (a *AggCall) Nullable() bool {
	// COUNT never yields NULL; the others do over an empty group.
	return a.Kind != AggCount
}

func (a *AggCall) Children() []sql.Expression { return []sql.Expression{a.Arg} }

func (a *AggCall) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: AggCall takes exactly one child")
	}
	return &AggCall{Kind: a.Kind, Arg: children[0], Distinct: a.Distinct}, nil
}

// Eval always fails: aggregates are evaluated incrementally by the
// rowexec aggregation producers, never by a single-row Eval call.
func (a *AggCall) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrInvariantViolation.New(fmt.Sprintf("AggCall %s reached scalar Eval", a.String()))
}

func (a *AggCall) String() string {
	distinct := ""
	if a.Distinct {
		distinct = "DISTINCT "
	}
	return fmt.Sprintf("%s(%s%s)", a.Kind.String(), distinct, a.Arg.String())
}

// IsCountStar reports whether a is exactly COUNT(*).
func (a *AggCall) IsCountStar() bool {
	if a.Kind != AggCount {
		return false
	}
	lit, ok := a.Arg.(*Literal)
	if !ok {
		return false
	}
	return lit.Val.Logical == types.Varchar && lit.Val.Raw == "*"
}
