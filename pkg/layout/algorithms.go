package layout

import "context"

// layoutNode is the algorithm-facing view of an element to position: a
// callable inside a file group, or a whole group during super-layout.
type layoutNode struct {
	id   string
	w, h float64
}

// layoutEdge is a directed connection between two layout nodes. Edges
// referencing unknown node IDs are ignored by every algorithm.
type layoutEdge struct {
	from, to string
}

// groupLayouter positions one cluster of nodes relative to an arbitrary
// origin. Implementations must return a finite, non-negative coordinate for
// every node and must not let any pair of nodes overlap within the
// strategy's spacing budget. The same implementation handles both levels of
// the hierarchy: entities within a group and groups as super-nodes.
//
// Implementations may iterate internally (the constraint and force variants
// do); callers must not read positions before layoutGroup returns.
type groupLayouter interface {
	layoutGroup(ctx context.Context, nodes []layoutNode, edges []layoutEdge, s Strategy) map[string]Point
}

// layouterFor maps a normalized strategy to its algorithm implementation.
// Dispatch is total: Normalized has already collapsed unknown values onto
// the layered default.
func layouterFor(s Strategy) groupLayouter {
	switch s.Algorithm {
	case AlgorithmConstraint:
		return &constraintLayouter{}
	case AlgorithmForce:
		return &forceLayouter{seed: s.Seed}
	default:
		return &layeredLayouter{}
	}
}
