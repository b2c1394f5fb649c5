package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LoadSettings
}

// ComparisonResult holds the planning result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.LoadResult
	PlacedCount   int
	UnplacedCount int
	FillPercent   float64
	Layers        int
	Err           error
}

// CompareScenarios plans the same packing list under each scenario and
// returns the results in scenario order. A scenario that fails keeps its
// error in the result; the others still run.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, container model.ContainerSpec, items []model.BoxItem, logger *slog.Logger) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := NewPlanner(scenario.Settings, logger)
		result, err := planner.Plan(ctx, container, items)

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   len(result.Placements),
			UnplacedCount: result.UnplacedCount(),
			FillPercent:   result.Efficiency(),
			Layers:        len(result.Layers()),
			Err:           err,
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.LoadSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	altAlgo := baseSettings
	if baseSettings.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmSequential
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Sequential Algorithm",
			Settings: altAlgo,
		})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Genetic Algorithm",
			Settings: altAlgo,
		})
	}

	rot := baseSettings
	rot.AllowRotation = !baseSettings.AllowRotation
	name := "Rotation Allowed"
	if !rot.AllowRotation {
		name = "No Rotation"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: rot})

	if baseSettings.BoxGap > 1.0 {
		tight := baseSettings
		tight.BoxGap = baseSettings.BoxGap * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Box Gap %.1fmm (half)", tight.BoxGap),
			Settings: tight,
		})
	}

	if baseSettings.Scoring != model.ScoringContact {
		contact := baseSettings
		contact.Scoring = model.ScoringContact
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Contact Scoring",
			Settings: contact,
		})
	}

	return scenarios
}
