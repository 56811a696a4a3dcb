package analyzer

import "github.com/kvsql/kvsql/sql"

// ChildrenPredicateKind discriminates the three shapes a Pattern's child
// predicate can take, per spec.md §4.2.
type ChildrenPredicateKind uint8

const (
	// ChildrenNone ignores children entirely: the rule matches based only
	// on the node itself.
	ChildrenNone ChildrenPredicateKind = iota
	// ChildrenExact matches each child in order against its own OperatorOK
	// predicate.
	ChildrenExact
	// ChildrenRecursive applies the parent's own OperatorOK predicate to
	// every descendant, not just direct children.
	ChildrenRecursive
)

// ChildrenPredicate is the child half of a Pattern.
type ChildrenPredicate struct {
	Kind  ChildrenPredicateKind
	Exact []func(sql.Node) bool // used when Kind == ChildrenExact, one per child position
}

// Pattern pairs a predicate on the operator itself with a ChildrenPredicate
// describing what's required of its children.
type Pattern struct {
	OperatorOK func(sql.Node) bool
	Children   ChildrenPredicate
}

// Matches reports whether id's operator and children satisfy p.
func (p Pattern) Matches(g *HepGraph, id HepNodeID) bool {
	if !p.OperatorOK(g.Node(id)) {
		return false
	}
	switch p.Children.Kind {
	case ChildrenNone:
		return true
	case ChildrenExact:
		children := g.Children(id)
		if len(children) != len(p.Children.Exact) {
			return false
		}
		for i, pred := range p.Children.Exact {
			if !pred(g.Node(children[i])) {
				return false
			}
		}
		return true
	case ChildrenRecursive:
		return allDescendants(g, id, p.OperatorOK)
	default:
		return false
	}
}

func allDescendants(g *HepGraph, id HepNodeID, pred func(sql.Node) bool) bool {
	for _, c := range g.Children(id) {
		if !pred(g.Node(c)) {
			return false
		}
		if !allDescendants(g, c, pred) {
			return false
		}
	}
	return true
}

// Rule rewrites a single matched node. Apply returns the replacement
// operator and whether it actually changed anything (a rule that matches
// but has nothing to do should return (node, false, nil) rather than
// forcing a spurious Version bump that defeats fixpoint detection).
type Rule interface {
	Name() string
	Pattern() Pattern
	Apply(ctx *sql.Context, g *HepGraph, id HepNodeID) (sql.Node, bool, error)
}

// Batch is a named, ordered group of rules applied together until none of
// them changes the graph (fixpoint) or the session's iteration cap is
// reached, matching spec.md §4.2's "apply repeatedly until fixpoint"
// description.
type Batch struct {
	Name  string
	Rules []Rule
}

// RunBatches drives every batch in order to its own fixpoint (or the
// session's OptimizerBatchIterationCap), in pre-order node traversal each
// pass — matching spec.md §4.3's determinism note.
func RunBatches(ctx *sql.Context, g *HepGraph, batches []Batch) error {
	cap := ctx.Session.OptimizerBatchIterationCap
	if cap <= 0 {
		cap = 100
	}
	for _, batch := range batches {
		for iter := 0; iter < cap; iter++ {
			before := g.Version
			if err := applyBatchOnce(ctx, g, batch); err != nil {
				return err
			}
			if g.Version == before {
				break
			}
		}
	}
	return nil
}

// applyBatchOnce walks the graph pre-order once, applying every matching
// rule in the batch, in batch order, at each node it visits.
func applyBatchOnce(ctx *sql.Context, g *HepGraph, batch Batch) error {
	return visitTopDown(ctx, g, g.Root(), batch)
}

// visitTopDown applies every rule in batch whose Pattern matches id, in the
// batch's declared order, before descending into children. Rules within a
// batch are expected to target disjoint or safely-composable concerns
// (e.g. constant folding before predicate simplification on the same
// Filter node) rather than being mutually exclusive alternatives.
func visitTopDown(ctx *sql.Context, g *HepGraph, id HepNodeID, batch Batch) error {
	for _, rule := range batch.Rules {
		if !rule.Pattern().Matches(g, id) {
			continue
		}
		replacement, changed, err := rule.Apply(ctx, g, id)
		if err != nil {
			return err
		}
		if changed {
			id = g.ReplaceNode(id, replacement)
		}
	}
	for _, c := range g.Children(id) {
		if err := visitTopDown(ctx, g, c, batch); err != nil {
			return err
		}
	}
	return nil
}
