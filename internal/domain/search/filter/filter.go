// Package filter models hard-filter expressions as a tree of tagged
// variants: a node is either a leaf comparison over one attribute or a
// boolean combinator over child nodes. Evaluation is pure and total:
// a leaf over a missing or wrongly-typed attribute is false, never an
// error, so candidates can be evaluated in parallel.
package filter

import "fmt"

// MaxDepth bounds filter tree nesting.
const MaxDepth = 16

// Op is a leaf comparison operator.
type Op string

// Supported leaf operators.
const (
	OpEquals   Op = "eq"
	OpLte      Op = "lte"
	OpGte      Op = "gte"
	OpContains Op = "contains"
)

// IsValid reports whether the operator is in the supported set.
func (o Op) IsValid() bool {
	switch o {
	case OpEquals, OpLte, OpGte, OpContains:
		return true
	}
	return false
}

// Combinator is a boolean node operator.
type Combinator string

// Supported combinators.
const (
	And Combinator = "and"
	Or  Combinator = "or"
	Not Combinator = "not"
)

// Node is one filter tree node: exactly one of leaf or combinator is set.
// The zero-value check lives in the constructors; nodes are only built
// through them.
type Node struct {
	// leaf
	attr     string
	op       Op
	strVal   string
	numVal   float64
	isNumber bool

	// combinator
	comb     Combinator
	children []Node
	isComb   bool
}

// NewEquals creates a case-sensitive string equality leaf.
func NewEquals(attr, value string) (Node, error) {
	if attr == "" {
		return Node{}, fmt.Errorf("filter attribute is required")
	}
	return Node{attr: attr, op: OpEquals, strVal: value}, nil
}

// NewEqualsNumber creates a numeric equality leaf.
func NewEqualsNumber(attr string, value float64) (Node, error) {
	if attr == "" {
		return Node{}, fmt.Errorf("filter attribute is required")
	}
	return Node{attr: attr, op: OpEquals, numVal: value, isNumber: true}, nil
}

// NewLte creates a numeric attr <= value leaf.
func NewLte(attr string, value float64) (Node, error) {
	if attr == "" {
		return Node{}, fmt.Errorf("filter attribute is required")
	}
	return Node{attr: attr, op: OpLte, numVal: value, isNumber: true}, nil
}

// NewGte creates a numeric attr >= value leaf.
func NewGte(attr string, value float64) (Node, error) {
	if attr == "" {
		return Node{}, fmt.Errorf("filter attribute is required")
	}
	return Node{attr: attr, op: OpGte, numVal: value, isNumber: true}, nil
}

// NewContains creates a list-membership leaf.
func NewContains(attr, value string) (Node, error) {
	if attr == "" {
		return Node{}, fmt.Errorf("filter attribute is required")
	}
	if value == "" {
		return Node{}, fmt.Errorf("contains value is required for attribute %q", attr)
	}
	return Node{attr: attr, op: OpContains, strVal: value}, nil
}

// NewAnd creates a conjunction. An empty AND is vacuously true.
func NewAnd(children ...Node) Node {
	return Node{comb: And, children: children, isComb: true}
}

// NewOr creates a disjunction. An empty OR is vacuously false.
func NewOr(children ...Node) Node {
	return Node{comb: Or, children: children, isComb: true}
}

// NewNot negates exactly one child.
func NewNot(child Node) Node {
	return Node{comb: Not, children: []Node{child}, isComb: true}
}

// IsLeaf reports whether the node is a leaf comparison.
func (n Node) IsLeaf() bool { return !n.isComb }

// Attr returns the leaf attribute name.
func (n Node) Attr() string { return n.attr }

// Operator returns the leaf operator.
func (n Node) Operator() Op { return n.op }

// Children returns the combinator children.
func (n Node) Children() []Node { return n.children }

// Comb returns the combinator kind.
func (n Node) Comb() Combinator { return n.comb }

// Validate walks the tree checking operators, combinator arity, and depth.
// A validation failure surfaces to callers as an invalid-argument error.
func (n Node) Validate() error {
	return n.validate(0)
}

func (n Node) validate(depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("filter tree deeper than %d levels", MaxDepth)
	}
	if !n.isComb {
		if n.attr == "" {
			return fmt.Errorf("filter leaf has no attribute")
		}
		if !n.op.IsValid() {
			return fmt.Errorf("unsupported filter operator %q", n.op)
		}
		return nil
	}
	switch n.comb {
	case And, Or:
	case Not:
		if len(n.children) != 1 {
			return fmt.Errorf("not takes exactly one child, got %d", len(n.children))
		}
	default:
		return fmt.Errorf("unsupported filter combinator %q", n.comb)
	}
	for _, c := range n.children {
		if err := c.validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}
