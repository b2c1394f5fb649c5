package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Engine places one box at a time. It keeps no state between calls: the boxes
// already in the container are passed in on every call.
type Engine struct {
	Settings model.LoadSettings
}

// New returns an engine for the given packing policy.
func New(settings model.LoadSettings) *Engine {
	return &Engine{Settings: settings}
}

// PlaceNext finds the best feasible position for box among the boxes already
// placed in container. The returned PlacedBox carries the chosen orientation
// and its center; BoxID and Label are left for the caller to fill in.
//
// Errors match ErrConfiguration for input that can never succeed and
// ErrNoFeasiblePosition when the box does not fit anywhere.
func (e *Engine) PlaceNext(box model.BoxDimensions, placed []model.PlacedBox, container model.ContainerSpec) (model.PlacedBox, error) {
	if err := validateSettings(e.Settings); err != nil {
		return model.PlacedBox{}, err
	}
	if !box.Valid() {
		return model.PlacedBox{}, configErrorf("box", "dimensions must be positive (got %.1f x %.1f x %.1f)",
			box.Length, box.Width, box.Height)
	}
	bounds, err := Interior(container, e.Settings.WallGap)
	if err != nil {
		return model.PlacedBox{}, err
	}

	existing := make([]aabb, len(placed))
	for i, p := range placed {
		existing[i] = fromPlaced(p)
	}

	orientations := []model.BoxDimensions{box}
	if e.Settings.AllowRotation {
		orientations = box.Orientations()
	}

	checker := fitChecker{
		bounds:       bounds,
		placed:       existing,
		gap:          e.Settings.BoxGap,
		supportRatio: e.Settings.SupportRatio,
	}
	sc := scorer{
		mode:   e.Settings.Scoring,
		bounds: bounds,
		placed: existing,
		gap:    e.Settings.BoxGap,
	}

	var best placement
	found := false
	for _, corner := range candidatePoints(bounds, existing, e.Settings.BoxGap) {
		for i, o := range orientations {
			candidate := boxAt(corner, o)
			if !checker.fits(candidate) {
				continue
			}
			p := placement{box: candidate, dims: o, orient: i}
			sc.annotate(&p)
			if !found || sc.better(p, best) {
				best = p
				found = true
			}
		}
	}

	if !found {
		return model.PlacedBox{}, fmt.Errorf("%w for %.1f x %.1f x %.1f box (%d placed)",
			ErrNoFeasiblePosition, box.Length, box.Width, box.Height, len(placed))
	}

	return model.PlacedBox{
		Orientation: best.dims,
		Position:    best.box.center(),
	}, nil
}

// PlaceNextContext runs PlaceNext on its own goroutine and gives up when ctx
// is done. An expired context is reported as ErrNoFeasiblePosition wrapping
// the context error, so callers treat it like any other miss.
func (e *Engine) PlaceNextContext(ctx context.Context, box model.BoxDimensions, placed []model.PlacedBox, container model.ContainerSpec) (model.PlacedBox, error) {
	if err := ctx.Err(); err != nil {
		return model.PlacedBox{}, fmt.Errorf("%w: %w", ErrNoFeasiblePosition, err)
	}

	type outcome struct {
		placed model.PlacedBox
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := e.PlaceNext(box, placed, container)
		done <- outcome{placed: p, err: err}
	}()

	select {
	case o := <-done:
		return o.placed, o.err
	case <-ctx.Done():
		return model.PlacedBox{}, fmt.Errorf("%w: %w", ErrNoFeasiblePosition, ctx.Err())
	}
}

// PlaceNext is a shorthand for New(settings).PlaceNext.
func PlaceNext(box model.BoxDimensions, placed []model.PlacedBox, container model.ContainerSpec, settings model.LoadSettings) (model.PlacedBox, error) {
	return New(settings).PlaceNext(box, placed, container)
}
