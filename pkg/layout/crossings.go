package layout

import "slices"

// countLayerCrossings counts edge crossings between two adjacent ranks using
// a Fenwick tree for O(E log V) inversion counting, where E is the number of
// edges between the ranks and V the size of the lower rank.
//
// Two edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2): counting crossings is counting inversions in the target
// positions once edges are sorted by source position.
//
// Only edges that actually land in the adjacent rank participate; long edges
// skipping ranks are ignored here (they were already shortened by rank
// assignment's longest-path placement).
func countLayerCrossings(upper, lower []int, a *adjacency) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := make(map[int]int, len(lower))
	for p, n := range lower {
		lowerPos[n] = p
	}

	type arc struct{ upper, lower int }
	arcs := make([]arc, 0, len(upper)*2)
	for i, n := range upper {
		for _, child := range a.children[n] {
			if p, ok := lowerPos[child]; ok {
				arcs = append(arcs, arc{i, p})
			}
		}
	}
	if len(arcs) < 2 {
		return 0
	}

	slices.SortFunc(arcs, func(x, y arc) int {
		if x.upper != y.upper {
			return x.upper - y.upper
		}
		return x.lower - y.lower
	})

	// Count inversions using a Fenwick tree over lower positions.
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range arcs {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
