package layout

import (
	"context"
	"math"
)

// groupBounds is the axis-aligned extent of a group's locally positioned
// callables, inclusive of GroupPadding on every side. It becomes the
// group's super-node size during inter-group layout.
type groupBounds struct {
	minX, minY float64
	maxX, maxY float64
}

func (b groupBounds) width() float64  { return b.maxX - b.minX }
func (b groupBounds) height() float64 { return b.maxY - b.minY }

// boundsOf computes a group's padded bounding box from its local positions.
// An empty group collapses to a padded point at the origin so it still
// occupies a valid super-node slot.
func boundsOf(nodes []layoutNode, pos map[string]Point) groupBounds {
	b := groupBounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, n := range nodes {
		p := pos[n.id]
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X+n.w)
		b.maxY = math.Max(b.maxY, p.Y+n.h)
	}
	if len(nodes) == 0 {
		b = groupBounds{}
	}
	b.minX -= GroupPadding
	b.minY -= GroupPadding
	b.maxX += GroupPadding
	b.maxY += GroupPadding
	return b
}

// superEdges collapses the cross-group edge set onto one edge per ordered
// group pair, in first-seen order. entityGroup maps entity ID to group file.
func superEdges(cross []edgeRef, entityGroup map[string]string) []layoutEdge {
	seen := make(map[[2]string]bool)
	var out []layoutEdge
	for _, e := range cross {
		from, okF := entityGroup[e.source]
		to, okT := entityGroup[e.target]
		if !okF || !okT || from == to {
			continue
		}
		key := [2]string{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, layoutEdge{from: from, to: to})
	}
	return out
}

// edgeRef is the minimal cross-edge view needed for super-layout.
type edgeRef struct {
	source, target string
}

// superLayout positions the groups relative to each other: one super-node
// per group, sized to its padded bounds, laid out by the same algorithm
// family as the per-group stage.
func superLayout(ctx context.Context, files []string, bounds map[string]groupBounds, edges []layoutEdge, s Strategy, l groupLayouter) map[string]Point {
	supers := make([]layoutNode, len(files))
	for i, f := range files {
		b := bounds[f]
		supers[i] = layoutNode{id: f, w: b.width(), h: b.height()}
	}
	return l.layoutGroup(ctx, supers, edges, s)
}

// translate lifts a group's local positions into the global frame:
// global = local − padded group minimum + super-node position. Since the
// padded minimum sits GroupPadding before the first entity, entities land
// GroupPadding inside their super-node slot.
func translate(local map[string]Point, b groupBounds, super Point) map[string]Point {
	out := make(map[string]Point, len(local))
	for id, p := range local {
		out[id] = safePoint(Point{
			X: p.X - b.minX + super.X,
			Y: p.Y - b.minY + super.Y,
		})
	}
	return out
}
