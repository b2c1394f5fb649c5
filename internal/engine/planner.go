package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Planner drives the engine over a whole packing list for one container.
type Planner struct {
	Settings model.LoadSettings
	Logger   *slog.Logger

	// OnProgress, when set, is called after every box with the number of
	// boxes handled so far and the total. Genetic runs report generations
	// instead of boxes.
	OnProgress func(done, total int)

	// Budget limits the search for a single box. Zero falls back to
	// Settings.PlacementTimeoutMs.
	Budget time.Duration
}

// NewPlanner creates a planner. A nil logger falls back to slog.Default().
func NewPlanner(settings model.LoadSettings, logger *slog.Logger) *Planner {
	return &Planner{Settings: settings, Logger: logger}
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// queuedBox is one physical box waiting to be placed.
type queuedBox struct {
	item model.BoxItem // Quantity is always 1
	dims model.BoxDimensions
}

// Plan loads items into container and reports what fit. A configuration
// error aborts the run; a box that fits nowhere is recorded as unplaced.
// When ctx is cancelled the partial result is returned with ctx's error.
func (p *Planner) Plan(ctx context.Context, container model.ContainerSpec, items []model.BoxItem) (model.LoadResult, error) {
	if p.Settings.Algorithm == model.AlgorithmGenetic {
		return optimizeGenetic(ctx, p.Settings, container, items, p.logger(), p.progress)
	}
	return p.run(ctx, container, sortQueue(expandItems(items), p.Settings.SortOrder))
}

func (p *Planner) run(ctx context.Context, container model.ContainerSpec, queue []queuedBox) (model.LoadResult, error) {
	log := p.logger()

	if err := validateSettings(p.Settings); err != nil {
		return model.LoadResult{}, err
	}
	bounds, err := Interior(container, p.Settings.WallGap)
	if err != nil {
		return model.LoadResult{}, err
	}
	result := model.LoadResult{
		Container:      container,
		Interior:       bounds,
		InteriorVolume: bounds.Volume(),
	}

	log.Info("planning load",
		"container", container.Label,
		"boxes", len(queue),
		"scoring", p.Settings.Scoring,
		"rotation", p.Settings.AllowRotation)
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requests := make(chan Request)
	defer close(requests)
	responses := NewWorker(New(p.Settings), p.budget()).Serve(ctx, requests)

	for i, qb := range queue {
		select {
		case requests <- Request{Seq: i, Box: qb.dims, Placed: slices.Clone(result.Placements), Container: container}:
		case <-ctx.Done():
			return result, ctx.Err()
		}

		resp, ok := <-responses
		if !ok {
			return result, ctx.Err()
		}

		switch {
		case resp.Err == nil:
			placed := resp.Placement
			placed.BoxID = qb.item.ID
			placed.Label = qb.item.Label
			result.Placements = append(result.Placements, placed)

		case errors.Is(resp.Err, ErrConfiguration):
			return result, fmt.Errorf("failed to place %s: %w", qb.item.Label, resp.Err)

		case errors.Is(resp.Err, ErrNoFeasiblePosition):
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			log.Debug("box not placed", "box", qb.item.ID, "label", qb.item.Label, "err", resp.Err)
			result.UnplacedBoxes = append(result.UnplacedBoxes, qb.item)
			if p.Settings.StopOnFailure {
				for _, rest := range queue[i+1:] {
					result.UnplacedBoxes = append(result.UnplacedBoxes, rest.item)
				}
				log.Info("stopping at first unplaced box", "box", qb.item.ID, "remaining", len(queue)-i-1)
				p.progress(len(queue), len(queue))
				p.summarize(result, start)
				return result, nil
			}

		default:
			return result, fmt.Errorf("failed to place %s: %w", qb.item.Label, resp.Err)
		}

		p.progress(i+1, len(queue))
	}

	p.summarize(result, start)
	return result, nil
}

func (p *Planner) budget() time.Duration {
	if p.Budget > 0 {
		return p.Budget
	}
	return time.Duration(p.Settings.PlacementTimeoutMs) * time.Millisecond
}

func (p *Planner) progress(done, total int) {
	if p.OnProgress != nil {
		p.OnProgress(done, total)
	}
}

func (p *Planner) summarize(result model.LoadResult, start time.Time) {
	p.logger().Info("load planned",
		"placed", len(result.Placements),
		"unplaced", len(result.UnplacedBoxes),
		"fill_percent", fmt.Sprintf("%.1f", result.Efficiency()),
		"elapsed", time.Since(start))
}

// expandItems turns each line of the packing list into single boxes.
// Copies get the IDs "<id>-1", "<id>-2" and so on.
func expandItems(items []model.BoxItem) []queuedBox {
	var out []queuedBox
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			cp := it
			cp.Quantity = 1
			cp.ID = fmt.Sprintf("%s-%d", it.ID, i+1)
			out = append(out, queuedBox{item: cp, dims: it.Dimensions})
		}
	}
	return out
}

// sortQueue orders the boxes for loading. The sort is stable so equal boxes
// keep their list order.
func sortQueue(queue []queuedBox, order model.SortOrder) []queuedBox {
	switch order {
	case model.SortVolumeDesc:
		sort.SliceStable(queue, func(i, j int) bool {
			return queue[i].dims.Volume() > queue[j].dims.Volume()
		})
	case model.SortBaseAreaDesc:
		sort.SliceStable(queue, func(i, j int) bool {
			return queue[i].dims.BaseArea() > queue[j].dims.BaseArea()
		})
	}
	return queue
}
