package filter

import "github.com/forkful-labs/recipedex/internal/domain"

// Expression is an optional filter tree. The zero value has no constraints
// and matches every item.
type Expression struct {
	root *Node
}

// NewExpression validates the tree and wraps it.
func NewExpression(root Node) (Expression, error) {
	if err := root.Validate(); err != nil {
		return Expression{}, err
	}
	return Expression{root: &root}, nil
}

// IsEmpty reports whether the expression has no constraints.
func (e Expression) IsEmpty() bool { return e.root == nil }

// Root returns the root node (nil when empty).
func (e Expression) Root() *Node { return e.root }

// Matches evaluates the expression against an attribute map. Pure and
// side-effect-free: the same inputs always yield the same boolean, so
// candidates may be evaluated concurrently.
func (e Expression) Matches(attrs domain.Attributes) bool {
	if e.root == nil {
		return true
	}
	return e.root.Matches(attrs)
}

// Matches evaluates one node against an attribute map.
//
// Leaf semantics: a missing attribute is false; a numeric comparison over
// a non-numeric value is false; contains over a non-list value is false.
// Combinators use standard boolean semantics with the vacuous-truth
// convention: an empty AND is true, an empty OR is false.
func (n Node) Matches(attrs domain.Attributes) bool {
	if n.isComb {
		switch n.comb {
		case And:
			for _, c := range n.children {
				if !c.Matches(attrs) {
					return false
				}
			}
			return true
		case Or:
			for _, c := range n.children {
				if c.Matches(attrs) {
					return true
				}
			}
			return false
		case Not:
			return !n.children[0].Matches(attrs)
		}
		return false
	}

	v, ok := attrs.Get(n.attr)
	if !ok {
		return false
	}

	switch n.op {
	case OpEquals:
		if n.isNumber {
			num, isNum := v.Number()
			return isNum && num == n.numVal
		}
		return v.EqualsString(n.strVal)
	case OpLte:
		num, isNum := v.Number()
		return isNum && num <= n.numVal
	case OpGte:
		num, isNum := v.Number()
		return isNum && num >= n.numVal
	case OpContains:
		return v.Contains(n.strVal)
	}
	return false
}
