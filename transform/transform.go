// Package transform provides the two visitor frameworks spec.md §4.1
// requires: an immutable, read-only walk (InspectExpr) and a
// mutating, in-place rewrite (Expr/Node). Analyses implement only the
// callback they care about; the walker here handles recursion into
// children, so individual rules never hand-roll tree traversal.
package transform

import "github.com/kvsql/kvsql/sql"

// TreeIdentity reports whether a mutating transform actually changed the
// tree, so callers (e.g. the HepGraph rule driver) can tell whether to bump
// their version counter without a deep-equal check.
type TreeIdentity bool

const (
	Same    TreeIdentity = true
	NewTree TreeIdentity = false
)

// ExprFunc rewrites a single expression node; it is applied bottom-up by
// Expr, after the node's own children have already been transformed.
type ExprFunc func(sql.Expression) (sql.Expression, TreeIdentity, error)

// Expr applies f to e from the bottom up: children are transformed first,
// then f is applied to the (possibly rebuilt) node itself. This is the
// mutating-visitor framework of spec.md §4.1.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	var newChildren []sql.Expression
	identity := Same

	for i, c := range children {
		newChild, same, err := Expr(c, f)
		if err != nil {
			return nil, Same, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			identity = NewTree
		}
	}

	current := e
	if identity == NewTree {
		rebuilt, err := e.WithChildren(newChildren...)
		if err != nil {
			return nil, Same, err
		}
		current = rebuilt
	}

	result, same, err := f(current)
	if err != nil {
		return nil, Same, err
	}
	if same == NewTree {
		return result, NewTree, nil
	}
	return current, identity, nil
}

// InspectExpr performs a pre-order, read-only walk of e, calling f at every
// node. If f returns false for a node, InspectExpr does not descend into
// that node's children. InspectExpr has no return value; callers collect
// results through a closure over external state (e.g. HasCountStar).
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) {
	if !f(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, f)
	}
}

// NodeFunc rewrites a single plan node; applied bottom-up by Node.
type NodeFunc func(sql.Node) (sql.Node, TreeIdentity, error)

// Node applies f to n from the bottom up.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	var newChildren []sql.Node
	identity := Same

	for i, c := range children {
		newChild, same, err := Node(c, f)
		if err != nil {
			return nil, Same, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			identity = NewTree
		}
	}

	current := n
	if identity == NewTree {
		rebuilt, err := n.WithChildren(newChildren...)
		if err != nil {
			return nil, Same, err
		}
		current = rebuilt
	}

	result, same, err := f(current)
	if err != nil {
		return nil, Same, err
	}
	if same == NewTree {
		return result, NewTree, nil
	}
	return current, identity, nil
}

// NodeExprs rewrites every expression owned by n (if n implements
// sql.Expressioner) using f, without requiring the caller to type-switch
// over every operator kind that carries expressions.
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	exprNode, ok := n.(sql.Expressioner)
	if !ok {
		return n, Same, nil
	}
	exprs := exprNode.Expressions()
	identity := Same
	newExprs := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		rewritten, same, err := Expr(e, f)
		if err != nil {
			return nil, Same, err
		}
		newExprs[i] = rewritten
		if same == NewTree {
			identity = NewTree
		}
	}
	if identity == Same {
		return n, Same, nil
	}
	newNode, err := exprNode.WithExpressions(newExprs...)
	if err != nil {
		return nil, Same, err
	}
	return newNode, NewTree, nil
}
