package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/export"
	boximporter "github.com/piwi3910/LoadPlan/internal/importer"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
	"github.com/piwi3910/LoadPlan/internal/ui/widgets"
)

const maxRecentProjects = 10

// Tab indices
const (
	tabBoxes = iota
	tabContainer
	tabSettings
	tabResults
)

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *slog.Logger
	theme  *LoadPlanTheme

	project       model.Project
	projectPath   string
	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore
	history       *History

	// UI references for dynamic updates
	tabs            *container.AppTabs
	boxesContainer  *fyne.Container
	resultContainer *fyne.Container
	statusLabel     *widget.Label
	progress        *widget.ProgressBar

	// Set while a planning run is in flight; only touched on the UI goroutine.
	cancelPlan context.CancelFunc
}

// NewApp loads the user's config, inventory and templates and prepares an
// empty project. Missing or unreadable files fall back to defaults.
func NewApp(application fyne.App, window fyne.Window, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		app:     application,
		window:  window,
		logger:  logger,
		history: NewHistory(),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		logger.Warn("failed to load inventory, using defaults", "error", err)
		inv = model.DefaultInventory()
	}
	a.inventory = inv
	a.inventoryPath = invPath

	store, err := project.LoadDefaultTemplates()
	if err != nil {
		logger.Warn("failed to load templates", "error", err)
		store = model.NewTemplateStore()
	}
	a.templates = store

	a.theme = NewLoadPlanTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)

	a.project = a.newProject()
	a.startAutoSave()
	return a
}

// newProject creates a project that inherits the configured defaults.
func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToSettings(&p.Settings)
	if preset := a.inventory.FindContainerByName(a.config.DefaultContainer); preset != nil {
		p.Container = preset.ToContainerSpec()
	}
	return p
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.project = a.newProject()
			a.projectPath = ""
			a.history.Clear()
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Boxes from CSV...", a.importCSV),
		fyne.NewMenuItem("Import Boxes from Excel...", a.importExcel),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Load Plan...", a.exportPDF),
		fyne.NewMenuItem("Export Box Labels...", a.exportLabels),
		fyne.NewMenuItem("Export Excel Manifest...", a.exportManifest),
		fyne.NewMenuItem("Export DXF Wireframe...", a.exportDXF),
		fyne.NewMenuItem("Export Layer Images...", a.exportPNGs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Boxes", func() {
			a.recordChange("Clear All Boxes")
			a.project.Boxes = []model.BoxItem{}
			a.refreshBoxList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Plan Load", a.runPlan),
		fyne.NewMenuItem("Cancel Planning", a.stopPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItem("Estimate Containers...", a.showEstimateDialog),
	)

	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Container Inventory...", a.showContainerInventoryDialog),
		fyne.NewMenuItem("Box Inventory...", a.showBoxInventoryDialog),
		fyne.NewMenuItem("Load Templates...", a.showTemplatesDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, adminMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About LoadPlan",
		"LoadPlan - Container Load Planner\n\n"+
			"Plans box-by-box container loads with clearance,\n"+
			"stacking support and layer-by-layer load sheets.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Boxes", a.buildBoxesPanel()),
		container.NewTabItem("Container", a.buildContainerPanel()),
		container.NewTabItem("Settings", a.buildSettingsPanel()),
		container.NewTabItem("Results", a.buildResultsPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.statusLabel = widget.NewLabel("Ready")
	a.progress = widget.NewProgressBar()
	a.progress.Hide()
	status := container.NewBorder(nil, nil, nil, a.progress, a.statusLabel)

	return container.NewBorder(nil, status, nil, nil, a.tabs)
}

func (a *App) refreshAll() {
	a.refreshBoxList()
	a.tabs.Items[tabContainer].Content = a.buildContainerPanel()
	a.tabs.Items[tabSettings].Content = a.buildSettingsPanel()
	a.tabs.Refresh()
	a.refreshResults()
}

func (a *App) setStatus(format string, args ...any) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(fmt.Sprintf(format, args...))
	}
}

// ─── History ───────────────────────────────────────────────

// recordChange snapshots the project before an edit.
func (a *App) recordChange(label string) {
	a.history.Push(MakeSnapshot(a.project, label))
}

func (a *App) undo() {
	label := a.history.UndoLabel()
	snap, ok := a.history.Undo(MakeSnapshot(a.project, label))
	if !ok {
		return
	}
	snap.Restore(&a.project)
	a.refreshAll()
	a.setStatus("Undid %s", label)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project, "redo"))
	if !ok {
		return
	}
	snap.Restore(&a.project)
	a.refreshAll()
	a.setStatus("Redid %s", snap.Label)
}

// ─── Boxes Panel ───────────────────────────────────────────

func (a *App) buildBoxesPanel() fyne.CanvasObject {
	a.boxesContainer = container.NewVBox()
	a.refreshBoxList()

	toolbar := container.NewHBox(
		widget.NewLabelWithStyle("Packing List", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		newToolbarButton(theme.ContentUndoIcon(), "Undo", a.undo),
		newToolbarButton(theme.ContentRedoIcon(), "Redo", a.redo),
		newToolbarButton(theme.FolderOpenIcon(), "Import boxes from CSV", a.importCSV),
		newToolbarButton(theme.StorageIcon(), "Add box from inventory", a.showAddBoxFromInventory),
		newLabeledButton("Add Box", theme.ContentAddIcon(), "Add a box type to the packing list", a.showAddBoxDialog),
		newLabeledButton("Plan Load", theme.MediaPlayIcon(), "Place every box into the container", a.runPlan),
	)

	return container.NewBorder(toolbar, nil, nil, nil, container.NewVScroll(a.boxesContainer))
}

func (a *App) refreshBoxList() {
	a.boxesContainer.RemoveAll()

	if len(a.project.Boxes) == 0 {
		a.boxesContainer.Add(widget.NewLabel("No boxes added yet. Click 'Add Box' to begin."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	header := container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Length (mm)", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Width (mm)", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Height (mm)", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
		widget.NewLabel(""),
	)
	a.boxesContainer.Add(header)
	a.boxesContainer.Add(widget.NewSeparator())

	for i := range a.project.Boxes {
		idx := i
		b := a.project.Boxes[idx]
		row := container.NewGridWithColumns(7,
			widget.NewLabel(b.Label),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Dimensions.Length)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Dimensions.Width)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Dimensions.Height)),
			widget.NewLabel(fmt.Sprintf("%d", b.Quantity)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditBoxDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.recordChange("Delete Box")
				a.project.Boxes = append(a.project.Boxes[:idx], a.project.Boxes[idx+1:]...)
				a.refreshBoxList()
			}),
		)
		a.boxesContainer.Add(row)
	}

	a.boxesContainer.Add(widget.NewSeparator())
	a.boxesContainer.Add(widget.NewLabel(fmt.Sprintf("%d boxes in %d lines", a.project.TotalBoxes(), len(a.project.Boxes))))
}

// boxForm holds the entries shared by the add and edit box dialogs.
type boxForm struct {
	label, length, width, height, qty *widget.Entry
}

func newBoxForm(b model.BoxItem) boxForm {
	f := boxForm{
		label:  widget.NewEntry(),
		length: widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		qty:    widget.NewEntry(),
	}
	f.label.SetPlaceHolder("Box name")
	f.label.SetText(b.Label)
	if b.Dimensions.Valid() {
		f.length.SetText(fmt.Sprintf("%.1f", b.Dimensions.Length))
		f.width.SetText(fmt.Sprintf("%.1f", b.Dimensions.Width))
		f.height.SetText(fmt.Sprintf("%.1f", b.Dimensions.Height))
	}
	f.qty.SetText(strconv.Itoa(b.Quantity))
	return f
}

func (f boxForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Label", f.label),
		widget.NewFormItem("Length (mm)", f.length),
		widget.NewFormItem("Width (mm)", f.width),
		widget.NewFormItem("Height (mm)", f.height),
		widget.NewFormItem("Quantity", f.qty),
	}
}

// parse validates the entries and returns the box dimensions and quantity.
func (f boxForm) parse() (model.BoxDimensions, int, error) {
	l, _ := strconv.ParseFloat(f.length.Text, 64)
	w, _ := strconv.ParseFloat(f.width.Text, 64)
	h, _ := strconv.ParseFloat(f.height.Text, 64)
	q, _ := strconv.Atoi(f.qty.Text)
	dims := model.BoxDimensions{Length: l, Width: w, Height: h}
	if !dims.Valid() || q <= 0 {
		return dims, q, fmt.Errorf("length, width, height, and quantity must be > 0")
	}
	return dims, q, nil
}

func (a *App) showAddBoxDialog() {
	f := newBoxForm(model.BoxItem{Label: fmt.Sprintf("Box %d", len(a.project.Boxes)+1), Quantity: 1})

	form := dialog.NewForm("Add Box", "Add", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			dims, q, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.recordChange("Add Box")
			a.project.Boxes = append(a.project.Boxes,
				model.NewBoxItem(f.label.Text, dims.Length, dims.Width, dims.Height, q))
			a.refreshBoxList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 350))
	form.Show()
}

func (a *App) showEditBoxDialog(idx int) {
	f := newBoxForm(a.project.Boxes[idx])

	form := dialog.NewForm("Edit Box", "Save", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			dims, q, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.recordChange("Edit Box")
			a.project.Boxes[idx].Label = f.label.Text
			a.project.Boxes[idx].Dimensions = dims
			a.project.Boxes[idx].Quantity = q
			a.refreshBoxList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 350))
	form.Show()
}

// ─── Container Panel ───────────────────────────────────────

func (a *App) buildContainerPanel() fyne.CanvasObject {
	c := a.project.Container

	labelEntry := widget.NewEntry()
	labelEntry.SetText(c.Label)
	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.0f", c.Length))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.0f", c.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.0f", c.Height))
	wallEntry := widget.NewEntry()
	wallEntry.SetText(fmt.Sprintf("%.0f", c.WallThickness))

	interiorLabel := widget.NewLabel(a.interiorText(c))

	presetSelect := widget.NewSelect(a.inventory.ContainerNames(), func(selected string) {
		preset := a.inventory.FindContainerByName(selected)
		if preset == nil {
			return
		}
		labelEntry.SetText(preset.Name)
		lengthEntry.SetText(fmt.Sprintf("%.0f", preset.Length))
		widthEntry.SetText(fmt.Sprintf("%.0f", preset.Width))
		heightEntry.SetText(fmt.Sprintf("%.0f", preset.Height))
		wallEntry.SetText(fmt.Sprintf("%.0f", preset.WallThickness))
	})
	presetSelect.PlaceHolder = "Select a container preset..."

	applyBtn := newLabeledButton("Apply", theme.ConfirmIcon(), "Use these dimensions for the load", func() {
		l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
		w, _ := strconv.ParseFloat(widthEntry.Text, 64)
		h, _ := strconv.ParseFloat(heightEntry.Text, 64)
		wall, _ := strconv.ParseFloat(wallEntry.Text, 64)
		if l <= 0 || w <= 0 || h <= 0 || wall < 0 {
			dialog.ShowError(fmt.Errorf("container dimensions must be > 0 and wall thickness >= 0"), a.window)
			return
		}
		a.recordChange("Change Container")
		a.project.Container = model.ContainerSpec{
			Label: labelEntry.Text, Length: l, Width: w, Height: h, WallThickness: wall,
		}
		a.project.Result = nil
		interiorLabel.SetText(a.interiorText(a.project.Container))
		a.refreshResults()
	})

	form := widget.NewCard("Container", "Outer dimensions; the wall is removed on every side",
		container.NewGridWithColumns(2,
			widget.NewLabel("Preset"), presetSelect,
			widget.NewLabel("Label"), labelEntry,
			widget.NewLabel("Length (mm)"), lengthEntry,
			widget.NewLabel("Width (mm)"), widthEntry,
			widget.NewLabel("Height (mm)"), heightEntry,
			widget.NewLabel("Wall Thickness (mm)"), wallEntry,
		))

	return container.NewVScroll(container.NewVBox(
		form,
		container.NewHBox(layout.NewSpacer(), applyBtn),
		widget.NewCard("Usable Interior", "After walls and wall gap", interiorLabel),
	))
}

// interiorText describes the usable interior, or why there is none.
func (a *App) interiorText(c model.ContainerSpec) string {
	bounds, err := engine.Interior(c, a.project.Settings.WallGap)
	if err != nil {
		return err.Error()
	}
	s := bounds.Size()
	return fmt.Sprintf("%.0f x %.0f x %.0f mm (%.2f m³)", s.Length, s.Width, s.Height, bounds.Volume()/1e9)
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.project.Settings

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	rotationCheck := widget.NewCheck("", func(b bool) { s.AllowRotation = b })
	rotationCheck.SetChecked(s.AllowRotation)

	stopCheck := widget.NewCheck("", func(b bool) { s.StopOnFailure = b })
	stopCheck.SetChecked(s.StopOnFailure)

	scoringSelect := widget.NewSelect(
		[]string{string(model.ScoringBottomBackLeft), string(model.ScoringDistance), string(model.ScoringContact)},
		func(selected string) { s.Scoring = model.ScoringMode(selected) },
	)
	scoringSelect.SetSelected(string(s.Scoring))

	sortSelect := widget.NewSelect(
		[]string{string(model.SortInput), string(model.SortVolumeDesc), string(model.SortBaseAreaDesc)},
		func(selected string) { s.SortOrder = model.SortOrder(selected) },
	)
	sortSelect.SetSelected(string(s.SortOrder))

	algorithmSelect := widget.NewSelect([]string{"Sequential (Fast)", "Genetic Algorithm (Fuller)"}, func(selected string) {
		if selected == "Genetic Algorithm (Fuller)" {
			s.Algorithm = model.AlgorithmGenetic
		} else {
			s.Algorithm = model.AlgorithmSequential
		}
	})
	if s.Algorithm == model.AlgorithmGenetic {
		algorithmSelect.SetSelected("Genetic Algorithm (Fuller)")
	} else {
		algorithmSelect.SetSelected("Sequential (Fast)")
	}

	engineSection := widget.NewCard("Placement", "", container.NewGridWithColumns(2,
		widget.NewLabel("Box Gap (mm)"), floatEntry(&s.BoxGap),
		widget.NewLabel("Wall Gap (mm)"), floatEntry(&s.WallGap),
		widget.NewLabel("Support Ratio (0-1]"), floatEntry(&s.SupportRatio),
		widget.NewLabel("Allow Rotation"), rotationCheck,
		widget.NewLabel("Scoring"), scoringSelect,
	))

	plannerSection := widget.NewCard("Planner", "", container.NewGridWithColumns(2,
		widget.NewLabel("Algorithm"), algorithmSelect,
		widget.NewLabel("Sort Order"), sortSelect,
		widget.NewLabel("Stop on First Failure"), stopCheck,
		widget.NewLabel("Per-Box Timeout (ms, 0=off)"), intEntry(&s.PlacementTimeoutMs),
	))

	resetBtn := widget.NewButtonWithIcon("Reset to Defaults", theme.ViewRefreshIcon(), func() {
		a.recordChange("Reset Settings")
		a.project.Settings = model.DefaultSettings()
		a.config.ApplyToSettings(&a.project.Settings)
		a.tabs.Items[tabSettings].Content = a.buildSettingsPanel()
		a.tabs.Refresh()
	})

	return container.NewVScroll(container.NewVBox(
		engineSection,
		plannerSection,
		container.NewHBox(layout.NewSpacer(), resetBtn),
	))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add boxes and a container, then click Plan Load."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderLoadResult(a.project.Result, a.overviewImage()))
	a.resultContainer.Refresh()
}

// overviewImage renders the side elevation of the current result, or nil.
func (a *App) overviewImage() fyne.CanvasObject {
	if a.project.Result == nil || len(a.project.Result.Placements) == 0 {
		return nil
	}
	img, err := export.RenderOverview(*a.project.Result, 900)
	if err != nil {
		a.logger.Warn("failed to render overview", "error", err)
		return nil
	}
	b := img.Bounds()
	overview := canvas.NewImageFromImage(img)
	overview.FillMode = canvas.ImageFillContain
	overview.SetMinSize(fyne.NewSize(700, 700*float32(b.Dy())/float32(b.Dx())))
	return overview
}

// ─── Planning ──────────────────────────────────────────────

// runPlan plans the current project on a background goroutine. The planner
// works on copies; results are applied on the UI goroutine via fyne.Do.
func (a *App) runPlan() {
	if a.cancelPlan != nil {
		dialog.ShowInformation("Planning", "A planning run is already in progress.", a.window)
		return
	}
	if len(a.project.Boxes) == 0 {
		dialog.ShowInformation("Nothing to plan", "Add at least one box first.", a.window)
		return
	}

	settings := a.project.Settings
	spec := a.project.Container
	items := slices.Clone(a.project.Boxes)
	total := a.project.TotalBoxes()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelPlan = cancel

	planner := engine.NewPlanner(settings, a.logger)
	planner.OnProgress = func(done, total int) {
		fyne.Do(func() {
			a.progress.SetValue(float64(done) / float64(total))
		})
	}

	a.progress.SetValue(0)
	a.progress.Show()
	if settings.Algorithm == model.AlgorithmGenetic {
		a.setStatus("Optimizing load order for %d boxes...", total)
	} else {
		a.setStatus("Planning %d boxes...", total)
	}

	start := time.Now()
	go func() {
		result, err := planner.Plan(ctx, spec, items)
		fyne.Do(func() {
			cancel()
			a.cancelPlan = nil
			a.progress.Hide()
			a.finishPlan(result, err, time.Since(start))
		})
	}()
}

func (a *App) stopPlan() {
	if a.cancelPlan != nil {
		a.cancelPlan()
	}
}

func (a *App) finishPlan(result model.LoadResult, err error, elapsed time.Duration) {
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		a.setStatus("Planning cancelled after %d boxes", len(result.Placements))
	case errors.Is(err, engine.ErrConfiguration):
		a.setStatus("Invalid configuration")
		dialog.ShowError(err, a.window)
		return
	default:
		a.setStatus("Planning failed")
		dialog.ShowError(err, a.window)
		return
	}

	a.project.Result = &result
	a.refreshResults()
	a.tabs.SelectIndex(tabResults)

	if err == nil {
		a.setStatus("Placed %d boxes, %d unplaced, %.1f%% fill in %s",
			len(result.Placements), result.UnplacedCount(), result.Efficiency(), elapsed.Round(time.Millisecond))
	}
}

// ─── Project Files ─────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.projectPath = path
		a.rememberProject(path)
		a.setStatus("Saved %s", path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		proj, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.project = proj
		a.projectPath = path
		a.history.Clear()
		a.rememberProject(path)
		a.refreshAll()
		a.setStatus("Opened %s", path)
	}, a.window)
	d.Show()
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save recent projects", "error", err)
	}
}

// startAutoSave periodically saves a project that already has a file.
func (a *App) startAutoSave() {
	if a.config.AutoSaveInterval <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(a.config.AutoSaveInterval) * time.Minute)
	go func() {
		for range ticker.C {
			fyne.Do(func() {
				if a.projectPath == "" {
					return
				}
				if err := project.Save(a.projectPath, a.project); err != nil {
					a.logger.Warn("auto-save failed", "path", a.projectPath, "error", err)
					return
				}
				a.logger.Debug("auto-saved project", "path", a.projectPath)
			})
		}
	}()
}

// ─── Exports ───────────────────────────────────────────────

// requireResult reports whether there is a load to export, telling the user if not.
func (a *App) requireResult() bool {
	if a.project.Result == nil || len(a.project.Result.Placements) == 0 {
		dialog.ShowInformation("No results", "Plan the load first before exporting.", a.window)
		return false
	}
	return true
}

// exportFile asks for a destination and runs write with the chosen path.
func (a *App) exportFile(defaultName string, write func(path string) error) {
	if !a.requireResult() {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportPDF() {
	a.exportFile(a.project.Name+".pdf", func(path string) error {
		return export.ExportPDF(path, *a.project.Result, a.project.Settings)
	})
}

func (a *App) exportLabels() {
	a.exportFile(a.project.Name+"-labels.pdf", func(path string) error {
		return export.ExportLabels(path, *a.project.Result)
	})
}

func (a *App) exportManifest() {
	a.exportFile(a.project.Name+".xlsx", func(path string) error {
		return export.ExportManifest(path, *a.project.Result)
	})
}

func (a *App) exportDXF() {
	a.exportFile(a.project.Name+".dxf", func(path string) error {
		return export.ExportDXF(path, *a.project.Result)
	})
}

func (a *App) exportPNGs() {
	if !a.requireResult() {
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		paths, err := export.ExportLayerPNGs(dir.Path(), *a.project.Result, 1200)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Wrote %d images to %s", len(paths), dir.Path()), a.window)
	}, a.window)
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(boximporter.ImportCSV(path))
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(boximporter.ImportExcel(path))
	}, a.window)
}

func (a *App) handleImportResult(result boximporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		a.logger.Warn("import warnings", "count", len(result.Warnings), "warnings", strings.Join(result.Warnings, "; "))
	}

	if len(result.Boxes) == 0 {
		return
	}

	a.recordChange("Import Boxes")
	a.project.Boxes = append(a.project.Boxes, result.Boxes...)
	a.refreshBoxList()

	msg := fmt.Sprintf("Successfully imported %d box lines.", len(result.Boxes))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
