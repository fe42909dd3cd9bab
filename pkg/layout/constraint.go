package layout

import (
	"context"
	"slices"
)

// constraintLayouter is the constraint-layered variant: it starts from the
// layered skeleton and iteratively relaxes in-rank positions toward the mean
// of each node's neighbours, re-projecting minimum-separation constraints
// after every pass. The solve is internally iterative; positions are only
// valid once layoutGroup returns.
//
// The result need not match the layered algorithm's coordinates, but it
// keeps the same rank structure and the same non-overlap guarantee within
// the strategy's spacing budget.
type constraintLayouter struct{}

// relaxation tuning. Iterations are bounded, not convergence-gated: the
// projection step restores feasibility after every pass, so stopping early
// is always safe.
const (
	constraintIterations = 48
	constraintStep       = 0.35
)

func (c *constraintLayouter) layoutGroup(ctx context.Context, nodes []layoutNode, edges []layoutEdge, s Strategy) map[string]Point {
	pos := (&layeredLayouter{}).layoutGroup(ctx, nodes, edges, s)
	if len(nodes) < 2 {
		return pos
	}

	adj := buildAdjacency(nodes, edges)
	dropBackEdges(adj)
	ranks := longestPathRanks(adj)
	rows := rowsByRank(ranks)

	// Work on the in-rank axis only; the rank axis keeps its layered value.
	coord := make([]float64, len(nodes))
	for i, n := range nodes {
		if s.horizontal() {
			coord[i] = pos[n.id].Y
		} else {
			coord[i] = pos[n.id].X
		}
	}
	size := func(i int) float64 {
		if s.horizontal() {
			return nodes[i].h
		}
		return nodes[i].w
	}

	for iter := 0; iter < constraintIterations; iter++ {
		if ctx.Err() != nil {
			// Abandoned solves still return the last feasible state.
			break
		}

		// Pull every node toward the mean of its neighbours.
		for i := range nodes {
			sum, cnt := 0.0, 0
			for _, p := range adj.parents[i] {
				sum += coord[p] + size(p)/2
				cnt++
			}
			for _, ch := range adj.children[i] {
				sum += coord[ch] + size(ch)/2
				cnt++
			}
			if cnt == 0 {
				continue
			}
			desired := sum/float64(cnt) - size(i)/2
			coord[i] += constraintStep * (desired - coord[i])
		}

		// Project separation constraints within each rank.
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			order := slices.Clone(row)
			slices.SortStableFunc(order, func(x, y int) int {
				switch {
				case coord[x] < coord[y]:
					return -1
				case coord[x] > coord[y]:
					return 1
				default:
					return 0
				}
			})
			cursor := coord[order[0]]
			for _, n := range order {
				if coord[n] < cursor {
					coord[n] = cursor
				}
				cursor = coord[n] + size(n) + s.NodeSep
			}
		}
	}

	// Shift back into the non-negative quadrant and clamp.
	min := coord[0]
	for _, v := range coord[1:] {
		if v < min {
			min = v
		}
	}
	for i, n := range nodes {
		v := coord[i] - min
		p := pos[n.id]
		if s.horizontal() {
			p.Y = v
		} else {
			p.X = v
		}
		pos[n.id] = safePoint(p)
	}
	return pos
}
