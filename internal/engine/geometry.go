package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// aabb is a box in corner form: min is the back-bottom-left corner.
// Components are ordered x (length), y (height), z (width).
type aabb struct {
	min mgl64.Vec3
	max mgl64.Vec3
}

// dimsVec maps box dimensions onto the engine axes.
func dimsVec(d model.BoxDimensions) mgl64.Vec3 {
	return mgl64.Vec3{d.Length, d.Height, d.Width}
}

func boxAt(corner mgl64.Vec3, d model.BoxDimensions) aabb {
	return aabb{min: corner, max: corner.Add(dimsVec(d))}
}

func fromPlaced(p model.PlacedBox) aabb {
	center := mgl64.Vec3{p.Position.X, p.Position.Y, p.Position.Z}
	half := dimsVec(p.Orientation).Mul(0.5)
	return aabb{min: center.Sub(half), max: center.Add(half)}
}

// clashes reports whether a and b are closer than gap on every axis.
// Boxes exactly gap apart on one axis are separated.
func (a aabb) clashes(b aabb, gap float64) bool {
	for i := 0; i < 3; i++ {
		if a.min[i] >= b.max[i]+gap-eps || b.min[i] >= a.max[i]+gap-eps {
			return false
		}
	}
	return true
}

// overlap returns the length shared by a and b along one axis, or 0.
func (a aabb) overlap(b aabb, axis int) float64 {
	d := math.Min(a.max[axis], b.max[axis]) - math.Max(a.min[axis], b.min[axis])
	if d <= 0 {
		return 0
	}
	return d
}

// center returns the midpoint of the box as a model point.
func (a aabb) center() model.Point3D {
	c := a.min.Add(a.max).Mul(0.5)
	return model.Point3D{X: c.X(), Y: c.Y(), Z: c.Z()}
}

func boundsMin(b model.Bounds) mgl64.Vec3 {
	return mgl64.Vec3{b.MinX, b.MinY, b.MinZ}
}

func boundsMax(b model.Bounds) mgl64.Vec3 {
	return mgl64.Vec3{b.MaxX, b.MaxY, b.MaxZ}
}
