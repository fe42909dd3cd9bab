package layout

import (
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// Spiral search tuning. The probe is an explicit bounded loop; when the
// budget is exhausted the declaration falls back to a deterministic slot
// right of the rightmost callable, so placement always terminates with a
// valid position.
const (
	spiralAttempts = 32
	spiralStep     = 36.0
)

// declPlacement is the outcome of the declaration stage: final positions
// plus the IDs that needed the exhaustion fallback (a diagnostic, not an
// error).
type declPlacement struct {
	positions map[string]Point
	fallbacks []string
}

// occupancy is the spatial index used during declaration placement: a flat
// rectangle list, scanned linearly. Graph sizes here are low hundreds of
// entities, so the scan beats maintaining a tree.
type occupancy struct {
	rects []Rect
}

func (o *occupancy) collides(r Rect) bool {
	probe := r.Expand(DeclMargin / 2)
	for _, q := range o.rects {
		if probe.Intersects(q) {
			return true
		}
	}
	return false
}

func (o *occupancy) add(r Rect) { o.rects = append(o.rects, r) }

// placeDeclarations positions every declaration after all callables hold
// final global coordinates.
//
// Declarations with a resolved caller prefer a slot on the forward side of
// that caller, arranged in a Columns-wide grid when several share one
// caller. Each preferred slot runs a bounded spiral collision search before
// being committed; exhaustion falls back to the area right of the
// rightmost callable. Orphan declarations (no resolvable caller) fill a
// grid anchored at the origin, independent of the main layout but still
// collision-checked.
func placeDeclarations(groups []*FileGroup, callablePos map[string]Point, s Strategy) declPlacement {
	occ := &occupancy{}
	var rightmost float64
	callables := make(map[string]graph.Entity)
	for _, fg := range groups {
		for _, c := range fg.Callables {
			p, ok := callablePos[c.ID]
			if !ok {
				continue
			}
			r := Rect{X: p.X, Y: p.Y, W: c.Width, H: c.Height}
			occ.add(r)
			callables[c.ID] = c
			if r.Right() > rightmost {
				rightmost = r.Right()
			}
		}
	}

	result := declPlacement{positions: make(map[string]Point)}

	// Declarations sharing a caller step through a fixed-column grid.
	perCaller := make(map[string]int)

	place := func(b DeclBinding) {
		d := b.Decl
		var pref Rect
		if b.Caller == "" {
			// Orphan grid anchored at a fixed origin.
			slot := perCaller[""]
			perCaller[""]++
			col, row := slot%s.Columns, slot/s.Columns
			pref = Rect{
				X: float64(col) * (d.Width + DeclMargin),
				Y: float64(row) * (d.Height + DeclMargin),
				W: d.Width, H: d.Height,
			}
		} else {
			caller := callables[b.Caller]
			anchor := callablePos[b.Caller]
			slot := perCaller[b.Caller]
			perCaller[b.Caller]++
			col, row := slot%s.Columns, slot/s.Columns

			// Forward side of the caller: right of it for every direction
			// except right-to-left, which mirrors.
			x := anchor.X + caller.Width + DeclMargin + float64(col)*(d.Width+DeclMargin)
			if s.Direction == DirectionRL {
				x = anchor.X - DeclMargin - d.Width - float64(col)*(d.Width+DeclMargin)
			}
			pref = Rect{
				X: x,
				Y: anchor.Y + float64(row)*(d.Height+DeclMargin),
				W: d.Width, H: d.Height,
			}
		}

		// Never let a degenerate preferred slot poison the index.
		pref.X = finite(pref.X, 0)
		pref.Y = finite(pref.Y, 0)

		if p, ok := probeSpiral(occ, pref); ok {
			occ.add(Rect{X: p.X, Y: p.Y, W: d.Width, H: d.Height})
			result.positions[d.ID] = p
			return
		}

		// Exhausted: deterministic fallback right of the rightmost callable.
		fb := Rect{
			X: rightmost + DeclMargin,
			Y: float64(len(result.fallbacks)) * (d.Height + DeclMargin),
			W: d.Width, H: d.Height,
		}
		for occ.collides(fb) {
			fb.Y += d.Height + DeclMargin
		}
		occ.add(fb)
		result.positions[d.ID] = safePoint(Point{X: fb.X, Y: fb.Y})
		result.fallbacks = append(result.fallbacks, d.ID)
	}

	for _, fg := range groups {
		for _, b := range fg.Declarations {
			place(b)
		}
	}
	return result
}

// probeSpiral tests the preferred rectangle, then probes positions along an
// expanding spiral (alternating horizontal and vertical steps of growing
// magnitude) for a bounded number of attempts. Every candidate is clamped
// finite and non-negative before the overlap test.
func probeSpiral(occ *occupancy, pref Rect) (Point, bool) {
	candidate := pref
	for attempt := 0; attempt <= spiralAttempts; attempt++ {
		candidate.X = finite(candidate.X, 0)
		candidate.Y = finite(candidate.Y, 0)
		if !occ.collides(candidate) {
			return Point{X: candidate.X, Y: candidate.Y}, true
		}

		magnitude := spiralStep * float64(attempt/4+1)
		switch attempt % 4 {
		case 0:
			candidate = Rect{X: pref.X + magnitude, Y: pref.Y, W: pref.W, H: pref.H}
		case 1:
			candidate = Rect{X: pref.X, Y: pref.Y + magnitude, W: pref.W, H: pref.H}
		case 2:
			candidate = Rect{X: pref.X - magnitude, Y: pref.Y, W: pref.W, H: pref.H}
		case 3:
			candidate = Rect{X: pref.X, Y: pref.Y - magnitude, W: pref.W, H: pref.H}
		}
	}
	return Point{}, false
}
