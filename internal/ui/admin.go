package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
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

	autoSaveEntry := widget.NewEntry()
	autoSaveEntry.SetText(fmt.Sprintf("%d", cfg.AutoSaveInterval))
	autoSaveEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			cfg.AutoSaveInterval = v
		}
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	rotationCheck := widget.NewCheck("", func(b bool) { cfg.DefaultAllowRotation = b })
	rotationCheck.SetChecked(cfg.DefaultAllowRotation)

	scoringSelect := widget.NewSelect(
		[]string{string(model.ScoringBottomBackLeft), string(model.ScoringDistance), string(model.ScoringContact)},
		func(selected string) { cfg.DefaultScoring = model.ScoringMode(selected) },
	)
	scoringSelect.SetSelected(string(cfg.DefaultScoring))

	sortSelect := widget.NewSelect(
		[]string{string(model.SortInput), string(model.SortVolumeDesc), string(model.SortBaseAreaDesc)},
		func(selected string) { cfg.DefaultSortOrder = model.SortOrder(selected) },
	)
	sortSelect.SetSelected(string(cfg.DefaultSortOrder))

	containerSelect := widget.NewSelect(a.inventory.ContainerNames(), func(selected string) {
		cfg.DefaultContainer = selected
	})
	containerSelect.SetSelected(cfg.DefaultContainer)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", autoSaveEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Container", containerSelect),
		widget.NewFormItem("Default Box Gap (mm)", floatEntry(&cfg.DefaultBoxGap)),
		widget.NewFormItem("Default Wall Gap (mm)", floatEntry(&cfg.DefaultWallGap)),
		widget.NewFormItem("Default Support Ratio", floatEntry(&cfg.DefaultSupportRatio)),
		widget.NewFormItem("Allow Rotation", rotationCheck),
		widget.NewFormItem("Default Scoring", scoringSelect),
		widget.NewFormItem("Default Sort Order", sortSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.DefaultSupportRatio <= 0 || cfg.DefaultSupportRatio > 1 {
				dialog.ShowError(fmt.Errorf("support ratio must be in (0, 1]"), a.window)
				return
			}
			if cfg.DefaultBoxGap < 0 || cfg.DefaultWallGap < 0 {
				dialog.ShowError(fmt.Errorf("gaps must be >= 0"), a.window)
				return
			}
			a.config = cfg
			a.theme.SetThemeName(cfg.Theme)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved",
					"Application settings have been saved.\nNew defaults apply to new projects.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.inventory, a.templates); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("loadplan-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings, inventory and templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.inventory = backup.Inventory
					a.templates = backup.Templates
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.saveInventory()
					a.saveTemplates()
					a.theme.SetThemeName(a.config.Theme)
					a.app.Settings().SetTheme(a.theme)
					a.refreshAll()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, inventory, templates) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
