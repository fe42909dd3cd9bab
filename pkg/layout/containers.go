package layout

import (
	"math"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// buildContainers recomputes the per-file container boxes from final entity
// bounds: every callable and declaration attributed to the group, padded by
// ContainerPadding. Groups whose entities all went unpositioned (possible
// only for empty groups) collapse to a padded point.
func buildContainers(groups []*FileGroup, pos map[string]Point) []graph.Container {
	containers := make([]graph.Container, 0, len(groups))
	for _, fg := range groups {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		count := 0

		extend := func(id string, w, h float64) {
			p, ok := pos[id]
			if !ok {
				return
			}
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X+w)
			maxY = math.Max(maxY, p.Y+h)
			count++
		}
		for _, c := range fg.Callables {
			extend(c.ID, c.Width, c.Height)
		}
		for _, b := range fg.Declarations {
			extend(b.Decl.ID, b.Decl.Width, b.Decl.Height)
		}

		if count == 0 {
			minX, minY, maxX, maxY = 0, 0, 0, 0
		}
		containers = append(containers, graph.Container{
			File:        fg.File,
			EntityCount: count,
			X:           math.Max(minX-ContainerPadding, 0),
			Y:           math.Max(minY-ContainerPadding, 0),
			Width:       maxX - minX + 2*ContainerPadding,
			Height:      maxY - minY + 2*ContainerPadding,
		})
	}
	return containers
}

// repairContainerSpacing separates overlapping containers: for every pair
// that intersects (zero tolerance), the later container is displaced along
// whichever axis needs less movement, by the minimum clearing amount plus
// ContainerGap. O(n²) in the container count (one per source file) and
// idempotent: an already-separated set is returned unmoved.
func repairContainerSpacing(containers []graph.Container) []graph.Container {
	out := append([]graph.Container(nil), containers...)

	// A displaced container can collide with one checked earlier, so sweep
	// until stable, bounded by the pair count.
	maxPasses := len(out)*len(out) + 1
	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if !out[i].Overlaps(out[j]) {
					continue
				}
				moved = true
				shiftX := clearance(out[i].X, out[i].Width, out[j].X, out[j].Width)
				shiftY := clearance(out[i].Y, out[i].Height, out[j].Y, out[j].Height)
				if math.Abs(shiftX) <= math.Abs(shiftY) {
					out[j].X += shiftX + gapSign(shiftX)
				} else {
					out[j].Y += shiftY + gapSign(shiftY)
				}
			}
		}
		if !moved {
			break
		}
	}

	// Backward displacement can leave a container past the origin; shift the
	// whole set back into the non-negative quadrant. A separated set needs
	// no shift, which keeps the pass idempotent.
	var shiftX, shiftY float64
	for _, c := range out {
		shiftX = math.Min(shiftX, c.X)
		shiftY = math.Min(shiftY, c.Y)
	}
	if shiftX < 0 || shiftY < 0 {
		for i := range out {
			out[i].X -= shiftX
			out[i].Y -= shiftY
		}
	}
	return out
}

// clearance returns the signed minimum displacement of the second interval
// that separates it from the first.
func clearance(a, aLen, b, bLen float64) float64 {
	pushForward := a + aLen - b     // move b toward +axis
	pushBackward := -(b + bLen - a) // move b toward -axis
	if math.Abs(pushForward) <= math.Abs(pushBackward) {
		return pushForward
	}
	return pushBackward
}

func gapSign(shift float64) float64 {
	if shift < 0 {
		return -ContainerGap
	}
	return ContainerGap
}
