package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// GeneticConfig holds parameters for the genetic algorithm optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
// Every decode runs the full 3D engine, so these are smaller than a 2D packer would use.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 24,
		Generations:    30,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// gene represents a single box placement decision in the chromosome.
type gene struct {
	boxIndex    int // Index into the expanded boxes slice
	orientation int // Index into that box's orientation list
}

// chromosome represents a candidate solution: a loading order with preferred orientations.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticOptimizer implements the genetic algorithm for load order optimization.
type geneticOptimizer struct {
	settings     model.LoadSettings
	config       GeneticConfig
	container    model.ContainerSpec
	boxes        []queuedBox
	orientations [][]model.BoxDimensions
	engine       *Engine
	rng          *rand.Rand

	progress func(done, total int) // called after each generation, may be nil
}

// newGeneticOptimizer creates a new genetic optimizer instance.
func newGeneticOptimizer(settings model.LoadSettings, config GeneticConfig, container model.ContainerSpec, boxes []queuedBox, seed int64) *geneticOptimizer {
	orientations := make([][]model.BoxDimensions, len(boxes))
	for i, b := range boxes {
		if settings.AllowRotation {
			orientations[i] = b.dims.Orientations()
		} else {
			orientations[i] = []model.BoxDimensions{b.dims}
		}
	}
	return &geneticOptimizer{
		settings:     settings,
		config:       config,
		container:    container,
		boxes:        boxes,
		orientations: orientations,
		engine:       New(settings),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// optimize runs the genetic algorithm and returns the best load found.
// Cancelling ctx stops the evolution and returns the best load so far.
func (g *geneticOptimizer) optimize(ctx context.Context) model.LoadResult {
	if len(g.boxes) == 0 {
		return g.decode(chromosome{})
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		if ctx.Err() != nil {
			break
		}

		// Higher is better
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
		if g.progress != nil {
			g.progress(gen+1, g.config.Generations)
		}
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return g.decode(population[0])
}

// initPopulation creates the initial random population.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.boxes)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{
				boxIndex:    perm[j],
				orientation: g.rng.Intn(len(g.orientations[perm[j]])),
			}
		}
		population[i] = chromosome{genes: genes}
	}

	// Seed the list order and the largest-first order so the GA never does
	// worse than the sequential planner on either.
	if g.config.PopulationSize > 0 {
		population[0] = g.createListChromosome()
	}
	if g.config.PopulationSize > 1 {
		population[1] = g.createGreedyChromosome()
	}

	return population
}

func (g *geneticOptimizer) createListChromosome() chromosome {
	genes := make([]gene, len(g.boxes))
	for i := range genes {
		genes[i] = gene{boxIndex: i}
	}
	return chromosome{genes: genes}
}

// createGreedyChromosome creates a chromosome sorted by volume descending.
func (g *geneticOptimizer) createGreedyChromosome() chromosome {
	n := len(g.boxes)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.boxes[indices[i]].dims.Volume() > g.boxes[indices[j]].dims.Volume()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{boxIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate computes the fitness of a chromosome by decoding it into a load.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	result := g.decode(c)

	var requested float64
	for _, b := range g.boxes {
		requested += b.dims.Volume()
	}
	if requested == 0 {
		return 0
	}

	loaded := result.LoadedVolume() / requested
	unplacedPenalty := float64(len(result.UnplacedBoxes)) * 0.1
	return loaded - unplacedPenalty
}

// decode places the boxes in chromosome order. Each box is handed to the
// engine in its preferred orientation, which the engine tries first.
func (g *geneticOptimizer) decode(c chromosome) model.LoadResult {
	result := model.LoadResult{Container: g.container}
	if bounds, err := Interior(g.container, g.settings.WallGap); err == nil {
		result.Interior = bounds
		result.InteriorVolume = bounds.Volume()
	}

	for _, gn := range c.genes {
		qb := g.boxes[gn.boxIndex]
		dims := g.orientations[gn.boxIndex][gn.orientation]

		placed, err := g.engine.PlaceNext(dims, result.Placements, g.container)
		if err != nil {
			result.UnplacedBoxes = append(result.UnplacedBoxes, qb.item)
			continue
		}
		placed.BoxID = qb.item.ID
		placed.Label = qb.item.Label
		result.Placements = append(result.Placements, placed)
	}
	return result
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].boxIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.boxIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	// Swap mutation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Orientation mutation: only boxes with more than one orientation change
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		if k := len(g.orientations[c.genes[i].boxIndex]); k > 1 {
			c.genes[i].orientation = g.rng.Intn(k)
		}
	}

	// Inversion mutation (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// OptimizeGenetic searches for a loading order and orientation per box that
// loads the most volume. It expands items by quantity and always decodes
// with the same placement engine as the sequential planner. StopOnFailure
// and PlacementTimeoutMs only apply to sequential runs.
func OptimizeGenetic(ctx context.Context, settings model.LoadSettings, container model.ContainerSpec, items []model.BoxItem, logger *slog.Logger) (model.LoadResult, error) {
	return optimizeGenetic(ctx, settings, container, items, logger, nil)
}

// optimizeGenetic is OptimizeGenetic with a per-generation progress callback.
func optimizeGenetic(ctx context.Context, settings model.LoadSettings, container model.ContainerSpec, items []model.BoxItem, logger *slog.Logger, progress func(done, total int)) (model.LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validateSettings(settings); err != nil {
		return model.LoadResult{}, err
	}
	if _, err := Interior(container, settings.WallGap); err != nil {
		return model.LoadResult{}, err
	}

	boxes := expandItems(items)
	for _, b := range boxes {
		if !b.dims.Valid() {
			return model.LoadResult{}, configErrorf("box", "%s: dimensions must be positive", b.item.Label)
		}
	}

	config := DefaultGeneticConfig()
	if len(boxes) > 50 {
		config.Generations = 20
		config.PopulationSize = 16
	}

	logger.Info("optimizing load order",
		"container", container.Label,
		"boxes", len(boxes),
		"population", config.PopulationSize,
		"generations", config.Generations)

	ga := newGeneticOptimizer(settings, config, container, boxes, 42)
	ga.progress = progress
	result := ga.optimize(ctx)

	logger.Info("load order optimized",
		"placed", len(result.Placements),
		"unplaced", len(result.UnplacedBoxes))
	return result, ctx.Err()
}
