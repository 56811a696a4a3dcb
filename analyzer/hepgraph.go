// Package analyzer implements the heuristic rule-based optimizer of
// spec.md §4.2: a mutable plan graph (HepGraph), a Pattern-matching Rule
// abstraction, and a fixpoint-seeking Batch driver, plus the three
// concrete rule families spec.md names (column pruning, constant folding,
// predicate simplification).
package analyzer

import "github.com/kvsql/kvsql/sql"

// HepNodeID identifies one graph node. Node identity is a pointer to the
// node's own mutable slot, so replacing an id's operator or children in
// place never requires walking back up to a parent to patch a stale child
// pointer — every parent already holds the same *hepSlot its child ids
// resolve to.
type HepNodeID = *hepSlot

type hepSlot struct {
	op       sql.Node
	children []HepNodeID
}

// HepGraph is the optimizer's working copy of the LogicalPlan: a tree of
// operators addressed by HepNodeID, with a monotonically increasing
// Version bumped every time a rule actually changes the graph. The rule
// driver uses Version to detect a batch has reached fixpoint without a
// deep-equal pass over the whole tree.
type HepGraph struct {
	root    HepNodeID
	Version uint64
}

// NewHepGraph builds a graph from a LogicalPlan tree.
func NewHepGraph(root sql.Node) *HepGraph {
	return &HepGraph{root: buildSlot(root)}
}

func buildSlot(n sql.Node) HepNodeID {
	children := n.Children()
	slot := &hepSlot{op: n, children: make([]HepNodeID, len(children))}
	for i, c := range children {
		slot.children[i] = buildSlot(c)
	}
	return slot
}

// Root returns the graph's current root node id.
func (g *HepGraph) Root() HepNodeID { return g.root }

// Node returns the operator currently stored at id.
func (g *HepGraph) Node(id HepNodeID) sql.Node { return id.op }

// Children returns the ids of id's immediate children, in the operator's
// own declared order.
func (g *HepGraph) Children(id HepNodeID) []HepNodeID { return id.children }

// ReplaceNode replaces the operator stored at id with replacement,
// re-deriving id's children from replacement.Children(). A child of
// replacement that is the very object held by id's child slot at the same
// position (sql.Node equality is not assumed; callers pass through
// unchanged children objects) keeps that slot, with its subtree and its own
// nested rewrites; any other child gets a fresh slot. Bumps Version.
func (g *HepGraph) ReplaceNode(id HepNodeID, replacement sql.Node) HepNodeID {
	newChildren := replacement.Children()
	nextSlots := make([]HepNodeID, len(newChildren))
	for i, c := range newChildren {
		if i < len(id.children) && id.children[i].op == c {
			nextSlots[i] = id.children[i]
		} else {
			nextSlots[i] = buildSlot(c)
		}
	}
	id.op = replacement
	id.children = nextSlots
	g.Version++
	if id == g.root {
		g.root = id
	}
	return id
}

// ReplaceChild rewrites parent's operator so that its child at index pos
// becomes child's current operator, per replacement's own WithChildren
// contract. Used by rules that need to swap a single child subtree (e.g.
// re-resolving a Reference after column pruning narrows the child schema)
// without touching parent's other children.
func (g *HepGraph) ReplaceChild(parent HepNodeID, pos int, child HepNodeID) error {
	children := parent.op.Children()
	newChildren := make([]sql.Node, len(children))
	copy(newChildren, children)
	newChildren[pos] = child.op
	rebuilt, err := parent.op.WithChildren(newChildren...)
	if err != nil {
		return err
	}
	parent.op = rebuilt
	parent.children[pos] = child
	g.Version++
	return nil
}

// Plan reconstructs the current sql.Node tree rooted at the graph's root,
// reflecting every rewrite applied so far.
func (g *HepGraph) Plan() sql.Node { return materialize(g.root) }

func materialize(id HepNodeID) sql.Node {
	if len(id.children) == 0 {
		return id.op
	}
	newChildren := make([]sql.Node, len(id.children))
	for i, cid := range id.children {
		newChildren[i] = materialize(cid)
	}
	rebuilt, err := id.op.WithChildren(newChildren...)
	if err != nil {
		return id.op
	}
	return rebuilt
}
