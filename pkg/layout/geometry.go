package layout

import "math"

// Spacing constants shared by the placement stages, in user units.
const (
	// GroupPadding is the outer padding added around each file cluster's
	// bounding box before super-layout.
	GroupPadding = 32.0

	// DeclMargin separates a declaration from its referencing callable and
	// from its grid neighbours.
	DeclMargin = 24.0

	// ContainerGap is the extra spacing applied when separating overlapping
	// file containers.
	ContainerGap = 20.0

	// ContainerPadding pads container boxes around their entities.
	ContainerPadding = 28.0
)

// Point is a 2-D coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether two rectangles overlap with zero tolerance.
// Touching edges do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// finite replaces NaN, infinite, or negative values with fallback. Every
// coordinate leaving an algorithm passes through here: spacing math on
// degenerate inputs (a single disconnected entity, zero-sized groups) can
// produce NaN or negative offsets, and those must never reach the occupancy
// index or the output.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fallback
	}
	return v
}

// safePoint clamps both coordinates of p to finite, non-negative values.
func safePoint(p Point) Point {
	return Point{X: finite(p.X, 0), Y: finite(p.Y, 0)}
}
