// Package plan implements the LogicalPlan operator catalog of spec.md §3:
// one Go struct per Operator variant, each satisfying sql.Node and, where it
// carries scalar expressions, sql.Expressioner.
package plan

import "github.com/kvsql/kvsql/sql"

// PhysicalOption is an optimizer-set hint describing which physical
// producer rowexec.BuildRead/BuildWrite should instantiate for a node. A
// nil option means "let the dispatcher pick the default" (sequential scan,
// nested-loop join, simple aggregation).
type PhysicalOption interface {
	physicalOption()
}

// PhysicalSeqScan is the default scan strategy: a full sequential scan of
// the table, used when no applicable index exists or no predicate narrows
// the range.
type PhysicalSeqScan struct{}

func (PhysicalSeqScan) physicalOption() {}

// PhysicalIndexScan tells the dispatcher to scan via a named index instead
// of the full table. It carries no range itself: when a Filter sits
// directly above the Scan, BuildRead derives the range from the Filter's
// predicate.
type PhysicalIndexScan struct {
	Index string
}

func (PhysicalIndexScan) physicalOption() {}

// PhysicalHashJoin tells the dispatcher to build a hash table over the
// right side keyed by the equality condition and probe it with left rows.
type PhysicalHashJoin struct{}

func (PhysicalHashJoin) physicalOption() {}

// PhysicalNestedLoopJoin is the default, always-applicable join strategy.
type PhysicalNestedLoopJoin struct{}

func (PhysicalNestedLoopJoin) physicalOption() {}

// JoinType enumerates the supported join kinds.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
	SemiJoin
	AntiJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "InnerJoin"
	case LeftJoin:
		return "LeftJoin"
	case RightJoin:
		return "RightJoin"
	case FullJoin:
		return "FullJoin"
	case CrossJoin:
		return "CrossJoin"
	case SemiJoin:
		return "SemiJoin"
	case AntiJoin:
		return "AntiJoin"
	default:
		return "?"
	}
}

// SortOrder pairs a sort key expression with its direction and NULL
// placement.
type SortOrder struct {
	Expr      sql.Expression
	Desc      bool
	NullsLast bool
}

// noChildren is embedded by leaf operators (Values, Dummy, Show) so they
// don't each have to redeclare the trivial Children/WithChildren pair.
type noChildren struct{}

func (noChildren) Children() []sql.Node { return nil }
