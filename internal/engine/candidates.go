package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// candidatePoints returns the corner anchors worth trying for the next box.
// The interior origin always comes first. Every placed box then contributes
// the point on top of it, the point past its right face and the point past
// its front face, each offset by gap. Points are unique at 0.001 mm.
func candidatePoints(bounds model.Bounds, placed []aabb, gap float64) []mgl64.Vec3 {
	origin := boundsMin(bounds)
	points := make([]mgl64.Vec3, 0, 1+3*len(placed))
	seen := make(map[[3]int64]bool, 1+3*len(placed))

	add := func(p mgl64.Vec3) {
		k := pointKey(p)
		if seen[k] {
			return
		}
		seen[k] = true
		points = append(points, p)
	}

	add(origin)
	for _, b := range placed {
		add(mgl64.Vec3{b.min.X(), b.max.Y() + gap, b.min.Z()}) // above
		add(mgl64.Vec3{b.max.X() + gap, b.min.Y(), b.min.Z()}) // right
		add(mgl64.Vec3{b.min.X(), b.min.Y(), b.max.Z() + gap}) // front
	}
	return points
}

func pointKey(p mgl64.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Round(p[0] / eps)),
		int64(math.Round(p[1] / eps)),
		int64(math.Round(p[2] / eps)),
	}
}
