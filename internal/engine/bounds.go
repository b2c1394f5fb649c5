package engine

import (
	"math"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// eps is the tolerance in mm used for every geometric comparison.
const eps = 0.001

// Interior computes the usable interior of a container in a frame centered on
// the container. Each axis spans ±(outer/2 - wallThickness - wallGap).
// Length maps to x, height to y and width to z.
func Interior(container model.ContainerSpec, wallGap float64) (model.Bounds, error) {
	if !positive(container.Length) || !positive(container.Width) || !positive(container.Height) {
		return model.Bounds{}, configErrorf("container", "dimensions must be positive and finite (got %.1f x %.1f x %.1f)",
			container.Length, container.Width, container.Height)
	}
	if !nonNegative(container.WallThickness) {
		return model.Bounds{}, configErrorf("wall_thickness", "must be finite and not negative (got %.1f)", container.WallThickness)
	}
	if !nonNegative(wallGap) {
		return model.Bounds{}, configErrorf("wall_gap", "must be finite and not negative (got %.1f)", wallGap)
	}

	inset := container.WallThickness + wallGap
	hx := container.Length/2 - inset
	hy := container.Height/2 - inset
	hz := container.Width/2 - inset

	b := model.Bounds{
		MinX: -hx, MaxX: hx,
		MinY: -hy, MaxY: hy,
		MinZ: -hz, MaxZ: hz,
	}
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY || b.MaxZ <= b.MinZ {
		return model.Bounds{}, configErrorf("container",
			"no interior left after %.1f mm walls and %.1f mm wall gap", container.WallThickness, wallGap)
	}
	return b, nil
}

// positive is false for NaN and infinities as well as for v <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// validateSettings checks the engine policy values.
func validateSettings(s model.LoadSettings) error {
	if !nonNegative(s.BoxGap) {
		return configErrorf("box_gap", "must be finite and not negative (got %.1f)", s.BoxGap)
	}
	if !nonNegative(s.WallGap) {
		return configErrorf("wall_gap", "must be finite and not negative (got %.1f)", s.WallGap)
	}
	if !(s.SupportRatio > 0 && s.SupportRatio <= 1) {
		return configErrorf("support_ratio", "must be in (0, 1] (got %.2f)", s.SupportRatio)
	}
	switch s.Scoring {
	case "", model.ScoringBottomBackLeft, model.ScoringDistance, model.ScoringContact:
	default:
		return configErrorf("scoring", "unknown mode %q", s.Scoring)
	}
	return nil
}
