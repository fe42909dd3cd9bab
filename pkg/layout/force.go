package layout

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// forceLayouter treats nodes as point masses: edges attract toward a rest
// length derived from RankSep, all pairs repel, and a pairwise collision
// pass keeps centre distances above the half-extent sum plus a margin.
//
// The step count is fixed and generous for graphs in the low hundreds of
// nodes; there is no early-exit condition. With seed == 0 each run draws a
// fresh time-based seed, so unseeded layouts vary between calls while still
// honouring the non-overlap guarantee.
type forceLayouter struct {
	seed uint64
}

const (
	forceSteps      = 240
	forceRepulsion  = 18000.0
	forceAttraction = 0.04
	forceDamping    = 0.85
	forceMaxMove    = 60.0
	collisionMargin = 12.0
	collisionPasses = 64
)

func (f *forceLayouter) layoutGroup(ctx context.Context, nodes []layoutNode, edges []layoutEdge, s Strategy) map[string]Point {
	if len(nodes) == 0 {
		return map[string]Point{}
	}

	seed := f.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, seen := idx[n.id]; !seen {
			idx[n.id] = i
		}
	}
	type spring struct{ a, b int }
	var springs []spring
	for _, e := range edges {
		a, okA := idx[e.from]
		b, okB := idx[e.to]
		if okA && okB && a != b {
			springs = append(springs, spring{a, b})
		}
	}

	// Centres, seeded on a jittered grid so identical inputs with the same
	// seed reproduce identical layouts.
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	cell := s.NodeSep
	for _, n := range nodes {
		cell = math.Max(cell, math.Max(n.w, n.h)+s.NodeSep)
	}
	cx := make([]float64, len(nodes))
	cy := make([]float64, len(nodes))
	for i := range nodes {
		cx[i] = float64(i%cols)*cell + rng.Float64()*s.NodeSep
		cy[i] = float64(i/cols)*cell + rng.Float64()*s.NodeSep
	}

	rest := s.RankSep + cell/2
	vx := make([]float64, len(nodes))
	vy := make([]float64, len(nodes))

	for step := 0; step < forceSteps; step++ {
		if ctx.Err() != nil {
			break
		}

		fx := make([]float64, len(nodes))
		fy := make([]float64, len(nodes))

		// All-pairs repulsion spreads unconnected nodes.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx, dy := cx[i]-cx[j], cy[i]-cy[j]
				d2 := dx*dx + dy*dy
				if d2 < 1 {
					// Coincident centres: nudge deterministically apart.
					dx, dy, d2 = 1, float64(j-i), 1+float64(j-i)*float64(j-i)
				}
				f := forceRepulsion / d2
				d := math.Sqrt(d2)
				fx[i] += f * dx / d
				fy[i] += f * dy / d
				fx[j] -= f * dx / d
				fy[j] -= f * dy / d
			}
		}

		// Springs pull connected nodes toward the rest length.
		for _, sp := range springs {
			dx, dy := cx[sp.b]-cx[sp.a], cy[sp.b]-cy[sp.a]
			d := math.Hypot(dx, dy)
			if d < 1 {
				d = 1
			}
			f := forceAttraction * (d - rest)
			fx[sp.a] += f * dx / d
			fy[sp.a] += f * dy / d
			fx[sp.b] -= f * dx / d
			fy[sp.b] -= f * dy / d
		}

		for i := range nodes {
			vx[i] = (vx[i] + fx[i]) * forceDamping
			vy[i] = (vy[i] + fy[i]) * forceDamping
			cx[i] += clampMove(vx[i])
			cy[i] += clampMove(vy[i])
		}

		f.resolveCollisions(nodes, cx, cy)
	}

	// Final hard separation, then snapshot into the non-negative quadrant.
	for pass := 0; pass < collisionPasses; pass++ {
		if !f.resolveCollisions(nodes, cx, cy) {
			break
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	for i := range nodes {
		if v := cx[i] - nodes[i].w/2; v < minX {
			minX = v
		}
		if v := cy[i] - nodes[i].h/2; v < minY {
			minY = v
		}
	}
	out := make(map[string]Point, len(nodes))
	for i, n := range nodes {
		if _, ok := out[n.id]; ok {
			continue
		}
		out[n.id] = safePoint(Point{
			X: cx[i] - n.w/2 - minX,
			Y: cy[i] - n.h/2 - minY,
		})
	}
	return out
}

// resolveCollisions pushes apart every pair whose boxes (plus margin) still
// overlap, splitting the correction between both nodes along the axis of
// least penetration. Returns true if any pair moved.
func (f *forceLayouter) resolveCollisions(nodes []layoutNode, cx, cy []float64) bool {
	moved := false
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			minDX := (nodes[i].w+nodes[j].w)/2 + collisionMargin
			minDY := (nodes[i].h+nodes[j].h)/2 + collisionMargin
			dx, dy := cx[j]-cx[i], cy[j]-cy[i]
			penX := minDX - math.Abs(dx)
			penY := minDY - math.Abs(dy)
			if penX <= 0 || penY <= 0 {
				continue
			}
			moved = true
			if penX <= penY {
				shift := penX / 2
				if dx < 0 {
					shift = -shift
				} else if dx == 0 {
					shift = minDX / 2
				}
				cx[i] -= shift
				cx[j] += shift
			} else {
				shift := penY / 2
				if dy < 0 {
					shift = -shift
				} else if dy == 0 {
					shift = minDY / 2
				}
				cy[i] -= shift
				cy[j] += shift
			}
		}
	}
	return moved
}

func clampMove(v float64) float64 {
	if v > forceMaxMove {
		return forceMaxMove
	}
	if v < -forceMaxMove {
		return -forceMaxMove
	}
	return v
}
