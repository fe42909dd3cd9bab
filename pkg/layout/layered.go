package layout

import (
	"context"
	"slices"
)

// layeredLayouter arranges nodes into discrete ranks along the strategy's
// direction: ranks by longest path over the (cycle-broken) edge DAG,
// in-rank order by barycenter sweeps plus adjacent-swap crossing reduction,
// coordinates from the spacing parameters. Deterministic for a given input
// ordering.
type layeredLayouter struct{}

func (l *layeredLayouter) layoutGroup(ctx context.Context, nodes []layoutNode, edges []layoutEdge, s Strategy) map[string]Point {
	if len(nodes) == 0 {
		return map[string]Point{}
	}

	adj := buildAdjacency(nodes, edges)
	dropBackEdges(adj)
	ranks := longestPathRanks(adj)
	rows := rowsByRank(ranks)
	orderRows(rows, adj, ranks)
	return rankCoordinates(nodes, rows, s)
}

// adjacency holds per-node child and parent index lists.
type adjacency struct {
	children [][]int
	parents  [][]int
}

// buildAdjacency converts edges to index-based adjacency, dropping edges
// with unknown endpoints and self loops. Duplicate node IDs resolve to the
// first occurrence.
func buildAdjacency(nodes []layoutNode, edges []layoutEdge) *adjacency {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, seen := idx[n.id]; !seen {
			idx[n.id] = i
		}
	}
	a := &adjacency{
		children: make([][]int, len(nodes)),
		parents:  make([][]int, len(nodes)),
	}
	for _, e := range edges {
		from, okF := idx[e.from]
		to, okT := idx[e.to]
		if !okF || !okT || from == to {
			continue
		}
		a.children[from] = append(a.children[from], to)
		a.parents[to] = append(a.parents[to], from)
	}
	return a
}

// dropBackEdges removes cycle-closing edges in place so rank assignment
// terminates. DFS with white/gray/black coloring, rooted at every node in
// index order for determinism.
func dropBackEdges(a *adjacency) {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(a.children))
	var back [][2]int

	var dfs func(n int)
	dfs = func(n int) {
		color[n] = gray
		for _, c := range a.children[n] {
			switch color[c] {
			case white:
				dfs(c)
			case gray:
				back = append(back, [2]int{n, c})
			}
		}
		color[n] = black
	}
	for n := range a.children {
		if color[n] == white {
			dfs(n)
		}
	}

	for _, e := range back {
		a.children[e[0]] = slices.DeleteFunc(a.children[e[0]], func(c int) bool { return c == e[1] })
		a.parents[e[1]] = slices.DeleteFunc(a.parents[e[1]], func(p int) bool { return p == e[0] })
	}
}

// longestPathRanks assigns each node the length of the longest path from a
// source, via Kahn's algorithm. Disconnected nodes stay at rank 0.
func longestPathRanks(a *adjacency) []int {
	n := len(a.children)
	ranks := make([]int, n)
	indeg := make([]int, n)
	queue := make([]int, 0, n)

	for i := 0; i < n; i++ {
		indeg[i] = len(a.parents[i])
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range a.children[curr] {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			indeg[child]--
			if indeg[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return ranks
}

// rowsByRank groups node indices by rank, input order within a rank,
// returned as a dense slice indexed by rank.
func rowsByRank(ranks []int) [][]int {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	rows := make([][]int, maxRank+1)
	for i, r := range ranks {
		rows[r] = append(rows[r], i)
	}
	return rows
}

// orderRows reduces edge crossings: barycenter sweeps in both directions,
// then adjacent-swap refinement driven by exact pair crossing counts.
// Rows are reordered in place.
func orderRows(rows [][]int, a *adjacency, ranks []int) {
	const sweeps = 4

	pos := make([]int, len(ranks))
	refresh := func(row []int) {
		for p, n := range row {
			pos[n] = p
		}
	}
	for _, row := range rows {
		refresh(row)
	}

	barycenter := func(n int, neighbors []int, adjRank int) (float64, bool) {
		sum, cnt := 0.0, 0
		for _, m := range neighbors {
			if ranks[m] == adjRank {
				sum += float64(pos[m])
				cnt++
			}
		}
		if cnt == 0 {
			return 0, false
		}
		return sum / float64(cnt), true
	}

	sortRow := func(r int, useParents bool) {
		row := rows[r]
		adjRank := r - 1
		if !useParents {
			adjRank = r + 1
		}
		keys := make(map[int]float64, len(row))
		for _, n := range row {
			neighbors := a.parents[n]
			if !useParents {
				neighbors = a.children[n]
			}
			if bc, ok := barycenter(n, neighbors, adjRank); ok {
				keys[n] = bc
			} else {
				keys[n] = float64(pos[n]) // keep current slot
			}
		}
		slices.SortStableFunc(row, func(x, y int) int {
			switch {
			case keys[x] < keys[y]:
				return -1
			case keys[x] > keys[y]:
				return 1
			default:
				return 0
			}
		})
		refresh(row)
	}

	for s := 0; s < sweeps; s++ {
		if s%2 == 0 {
			for r := 1; r < len(rows); r++ {
				sortRow(r, true)
			}
		} else {
			for r := len(rows) - 2; r >= 0; r-- {
				sortRow(r, false)
			}
		}
	}

	// Adjacent-swap refinement: accept a swap only when it strictly lowers
	// the crossing count against both neighbouring rows.
	for pass := 0; pass < 2; pass++ {
		for r := range rows {
			row := rows[r]
			for i := 0; i+1 < len(row); i++ {
				before := rowCrossings(rows, a, r)
				row[i], row[i+1] = row[i+1], row[i]
				refresh(row)
				after := rowCrossings(rows, a, r)
				if after >= before {
					row[i], row[i+1] = row[i+1], row[i]
					refresh(row)
				}
			}
		}
	}
}

// rowCrossings counts crossings on the rank boundaries touching row r.
func rowCrossings(rows [][]int, a *adjacency, r int) int {
	total := 0
	if r > 0 {
		total += countLayerCrossings(rows[r-1], rows[r], a)
	}
	if r+1 < len(rows) {
		total += countLayerCrossings(rows[r], rows[r+1], a)
	}
	return total
}

// rankCoordinates converts ordered rows into concrete positions: ranks stack
// along the strategy's direction separated by RankSep plus the rank's
// extent, entities within a rank advance by NodeSep plus their own size.
// Output is clamped finite and non-negative.
func rankCoordinates(nodes []layoutNode, rows [][]int, s Strategy) map[string]Point {
	out := make(map[string]Point, len(nodes))

	sequence := make([]int, 0, len(rows))
	for r := range rows {
		sequence = append(sequence, r)
	}
	if s.reversed() {
		slices.Reverse(sequence)
	}

	rankCursor := 0.0
	for _, r := range sequence {
		row := rows[r]
		if len(row) == 0 {
			continue
		}

		extent := 0.0
		for _, n := range row {
			size := nodes[n].h
			if s.horizontal() {
				size = nodes[n].w
			}
			if size > extent {
				extent = size
			}
		}

		inRank := 0.0
		for _, n := range row {
			var p Point
			if s.horizontal() {
				p = Point{X: rankCursor, Y: inRank}
				inRank += nodes[n].h + s.NodeSep
			} else {
				p = Point{X: inRank, Y: rankCursor}
				inRank += nodes[n].w + s.NodeSep
			}
			out[nodes[n].id] = safePoint(p)
		}

		rankCursor += extent + s.RankSep
	}

	// Duplicate IDs collapse onto the first occurrence's slot.
	for _, n := range nodes {
		if _, ok := out[n.id]; !ok {
			out[n.id] = Point{}
		}
	}
	return out
}
