package engine

import (
	"math"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// fitChecker decides whether a box may be placed at a given spot.
type fitChecker struct {
	bounds       model.Bounds
	placed       []aabb
	gap          float64
	supportRatio float64
}

// fits runs containment, clearance and support in that order.
func (c fitChecker) fits(box aabb) bool {
	return c.contained(box) && !c.collides(box) && c.supported(box)
}

func (c fitChecker) contained(box aabb) bool {
	lo, hi := boundsMin(c.bounds), boundsMax(c.bounds)
	for i := 0; i < 3; i++ {
		if box.min[i] < lo[i]-eps || box.max[i] > hi[i]+eps {
			return false
		}
	}
	return true
}

func (c fitChecker) collides(box aabb) bool {
	for _, p := range c.placed {
		if box.clashes(p, c.gap) {
			return true
		}
	}
	return false
}

// supported is true for boxes on the floor. Anything higher needs
// supportRatio of its base resting on top faces within gap of its bottom.
func (c fitChecker) supported(box aabb) bool {
	if box.min.Y()-c.bounds.MinY <= c.gap+eps {
		return true
	}

	base := (box.max.X() - box.min.X()) * (box.max.Z() - box.min.Z())
	var area float64
	for _, p := range c.placed {
		if math.Abs(box.min.Y()-p.max.Y()) > c.gap+eps {
			continue
		}
		area += box.overlap(p, 0) * box.overlap(p, 2)
	}
	return area >= c.supportRatio*base-eps
}
