package engine

import (
	"math"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// placement is a feasible (corner, orientation) pair under consideration.
type placement struct {
	box     aabb
	dims    model.BoxDimensions
	orient  int // index into the orientation list, 0 = as given
	dist    float64
	contact int
}

// scorer ranks feasible placements. Every mode ends in the same
// bottom-back-left chain so equal scores resolve the same way every call.
type scorer struct {
	mode   model.ScoringMode
	bounds model.Bounds
	placed []aabb
	gap    float64
}

func (s scorer) annotate(p *placement) {
	switch s.mode {
	case model.ScoringDistance:
		p.dist = p.box.min.Sub(boundsMin(s.bounds)).Len()
	case model.ScoringContact:
		p.contact = s.contactCount(p.box)
	}
}

// better reports whether a ranks strictly ahead of b.
func (s scorer) better(a, b placement) bool {
	switch s.mode {
	case model.ScoringDistance:
		if c := cmpFloat(a.dist, b.dist); c != 0 {
			return c < 0
		}
	case model.ScoringContact:
		if a.contact != b.contact {
			return a.contact > b.contact
		}
	}
	return bottomBackLeft(a, b)
}

// bottomBackLeft orders by height, then depth, then length, then orientation.
func bottomBackLeft(a, b placement) bool {
	for _, axis := range [3]int{1, 2, 0} {
		if c := cmpFloat(a.box.min[axis], b.box.min[axis]); c != 0 {
			return c < 0
		}
	}
	return a.orient < b.orient
}

// contactCount counts the walls and neighbor faces the box touches within gap.
// The ceiling does not count.
func (s scorer) contactCount(box aabb) int {
	tol := s.gap + eps
	lo, hi := boundsMin(s.bounds), boundsMax(s.bounds)

	n := 0
	for i := 0; i < 3; i++ {
		if box.min[i]-lo[i] <= tol {
			n++
		}
		if i != 1 && hi[i]-box.max[i] <= tol {
			n++
		}
	}

	for _, p := range s.placed {
		for axis := 0; axis < 3; axis++ {
			touching := math.Abs(box.min[axis]-p.max[axis]) <= tol || math.Abs(p.min[axis]-box.max[axis]) <= tol
			if !touching {
				continue
			}
			a1, a2 := otherAxes(axis)
			if box.overlap(p, a1) > eps && box.overlap(p, a2) > eps {
				n++
			}
		}
	}
	return n
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b-eps:
		return -1
	case a > b+eps:
		return 1
	default:
		return 0
	}
}
