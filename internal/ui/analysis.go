package ui

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// showCompareDialog plans the packing list under a set of what-if scenarios
// and shows the outcomes side by side.
func (a *App) showCompareDialog() {
	if len(a.project.Boxes) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add at least one box first.", a.window)
		return
	}

	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	spec := a.project.Container
	items := slices.Clone(a.project.Boxes)

	ctx, cancel := context.WithCancel(context.Background())
	progress := dialog.NewCustomWithoutButtons("Comparing Scenarios",
		container.NewVBox(
			widget.NewLabel(fmt.Sprintf("Planning %d scenarios...", len(scenarios))),
			widget.NewProgressBarInfinite(),
			widget.NewButton("Cancel", cancel),
		), a.window)
	progress.Show()

	go func() {
		results := engine.CompareScenarios(ctx, scenarios, spec, items, a.logger)
		fyne.Do(func() {
			cancel()
			progress.Hide()
			a.showComparisonResults(results)
		})
	}()
}

func (a *App) showComparisonResults(results []engine.ComparisonResult) {
	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Unplaced", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Fill", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Layers", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
	)

	var d dialog.Dialog
	for _, r := range results {
		if r.Err != nil {
			grid.Add(widget.NewLabel(r.Scenario.Name))
			errLabel := widget.NewLabel(r.Err.Error())
			errLabel.Importance = widget.DangerImportance
			grid.Add(errLabel)
			for i := 0; i < 4; i++ {
				grid.Add(widget.NewLabel(""))
			}
			continue
		}

		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(strconv.Itoa(r.PlacedCount)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.UnplacedCount)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.FillPercent)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Layers)))
		grid.Add(widget.NewButton("Use", func() {
			a.recordChange("Apply Scenario")
			a.project.Settings = r.Scenario.Settings
			result := r.Result
			a.project.Result = &result
			a.refreshAll()
			a.tabs.SelectIndex(tabResults)
			d.Hide()
		}))
	}

	d = dialog.NewCustom("Scenario Comparison", "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(750, 400))
	d.Show()
}

// showEstimateDialog gives a volume-based container count before planning.
func (a *App) showEstimateDialog() {
	wasteEntry := widget.NewEntry()
	wasteEntry.SetText("15")

	price := 0.0
	if preset := a.inventory.FindContainerByName(a.project.Container.Label); preset != nil {
		price = preset.PricePerUnit
	}
	priceEntry := widget.NewEntry()
	priceEntry.SetText(fmt.Sprintf("%.2f", price))

	resultLabel := widget.NewLabel("")
	update := func() {
		waste, _ := strconv.ParseFloat(wasteEntry.Text, 64)
		p, _ := strconv.ParseFloat(priceEntry.Text, 64)
		resultLabel.SetText(formatEstimate(model.CalculateLoadEstimate(
			a.project.Boxes, a.project.Container, a.project.Settings, waste, p,
		)))
	}
	wasteEntry.OnChanged = func(string) { update() }
	priceEntry.OnChanged = func(string) { update() }
	update()

	content := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Waste Allowance (%)", wasteEntry),
			widget.NewFormItem("Price per Container", priceEntry),
		),
		widget.NewSeparator(),
		resultLabel,
	)

	d := dialog.NewCustom("Container Estimate", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 380))
	d.Show()
}

func formatEstimate(est model.LoadEstimate) string {
	if est.UsableVolume <= 0 {
		return "The container has no usable interior with the current wall gap."
	}
	text := fmt.Sprintf(
		"Box volume (incl. gaps): %.2f m³\n"+
			"Usable volume per container: %.2f m³\n"+
			"Exact: %.2f containers\n"+
			"Minimum: %d\n"+
			"Recommended with %.0f%% waste: %d",
		est.TotalCubicMeters,
		est.UsableVolume/1e9,
		est.ContainersNeededExact,
		est.ContainersNeededMin,
		est.WastePercent, est.ContainersWithWaste,
	)
	if est.PricePerContainer > 0 {
		text += fmt.Sprintf("\nEstimated cost: %.2f", est.EstimatedCost)
	}
	return text
}
