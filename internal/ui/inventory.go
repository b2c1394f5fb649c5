package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

// ─── Container Inventory Dialog ────────────────────────────

func (a *App) showContainerInventoryDialog() {
	containerList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		containerList.RemoveAll()

		if len(a.inventory.Containers) == 0 {
			containerList.Add(widget.NewLabel("No container presets defined."))
			return
		}

		bold := fyne.TextStyle{Bold: true}
		header := container.NewGridWithColumns(8,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Length", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Wall", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Price", fyne.TextAlignLeading, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		containerList.Add(header)
		containerList.Add(widget.NewSeparator())

		for i := range a.inventory.Containers {
			idx := i
			c := a.inventory.Containers[idx]
			priceLabel := "-"
			if c.PricePerUnit > 0 {
				priceLabel = fmt.Sprintf("%.2f", c.PricePerUnit)
			}
			row := container.NewGridWithColumns(8,
				widget.NewLabel(c.Name),
				widget.NewLabel(fmt.Sprintf("%.0f mm", c.Length)),
				widget.NewLabel(fmt.Sprintf("%.0f mm", c.Width)),
				widget.NewLabel(fmt.Sprintf("%.0f mm", c.Height)),
				widget.NewLabel(fmt.Sprintf("%.0f mm", c.WallThickness)),
				widget.NewLabel(priceLabel),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showContainerPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Containers = append(a.inventory.Containers[:idx], a.inventory.Containers[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			)
			containerList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Container Preset", theme.ContentAddIcon(), func() {
		a.showContainerPresetDialog(-1, refreshList)
	})

	content := container.NewBorder(
		a.inventoryToolbar(addBtn, refreshList),
		nil, nil, nil,
		container.NewVScroll(containerList),
	)

	d := dialog.NewCustom("Container Inventory", "Close", content, a.window)
	d.Resize(fyne.NewSize(800, 500))
	d.Show()
}

// showContainerPresetDialog adds a preset when idx < 0 and edits inventory.Containers[idx] otherwise.
func (a *App) showContainerPresetDialog(idx int, onDone func()) {
	preset := model.NewContainerPreset("New Container", 6058, 2438, 2591, 80)
	title, confirm := "Add Container Preset", "Add"
	if idx >= 0 {
		preset = a.inventory.Containers[idx]
		title, confirm = "Edit Container Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Container preset name")
	nameEntry.SetText(preset.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.0f", preset.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.0f", preset.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.0f", preset.Height))

	wallEntry := widget.NewEntry()
	wallEntry.SetText(fmt.Sprintf("%.0f", preset.WallThickness))

	priceEntry := widget.NewEntry()
	priceEntry.SetPlaceHolder("0.00 (optional)")
	priceEntry.SetText(fmt.Sprintf("%.2f", preset.PricePerUnit))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (mm)", lengthEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Wall Thickness (mm)", wallEntry),
			widget.NewFormItem("Price per Container", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			wall, _ := strconv.ParseFloat(wallEntry.Text, 64)
			if l <= 0 || w <= 0 || h <= 0 || wall < 0 {
				dialog.ShowError(fmt.Errorf("length, width, and height must be > 0 and wall thickness >= 0"), a.window)
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)

			preset.Name = nameEntry.Text
			preset.Length, preset.Width, preset.Height = l, w, h
			preset.WallThickness = wall
			preset.PricePerUnit = price

			if idx >= 0 {
				a.inventory.Containers[idx] = preset
			} else {
				a.inventory.Containers = append(a.inventory.Containers, preset)
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 450))
	form.Show()
}

// ─── Box Inventory Dialog ──────────────────────────────────

func (a *App) showBoxInventoryDialog() {
	boxList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		boxList.RemoveAll()

		if len(a.inventory.Boxes) == 0 {
			boxList.Add(widget.NewLabel("No box presets defined."))
			return
		}

		bold := fyne.TextStyle{Bold: true}
		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Length", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		boxList.Add(header)
		boxList.Add(widget.NewSeparator())

		for i := range a.inventory.Boxes {
			idx := i
			b := a.inventory.Boxes[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(b.Name),
				widget.NewLabel(fmt.Sprintf("%.0f mm", b.Dimensions.Length)),
				widget.NewLabel(fmt.Sprintf("%.0f mm", b.Dimensions.Width)),
				widget.NewLabel(fmt.Sprintf("%.0f mm", b.Dimensions.Height)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showBoxPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Boxes = append(a.inventory.Boxes[:idx], a.inventory.Boxes[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			)
			boxList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Box Preset", theme.ContentAddIcon(), func() {
		a.showBoxPresetDialog(-1, refreshList)
	})

	content := container.NewBorder(
		a.inventoryToolbar(addBtn, refreshList),
		nil, nil, nil,
		container.NewVScroll(boxList),
	)

	d := dialog.NewCustom("Box Inventory", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

// showBoxPresetDialog adds a preset when idx < 0 and edits inventory.Boxes[idx] otherwise.
func (a *App) showBoxPresetDialog(idx int, onDone func()) {
	preset := model.NewBoxPreset("New Carton", 600, 400, 400)
	title, confirm := "Add Box Preset", "Add"
	if idx >= 0 {
		preset = a.inventory.Boxes[idx]
		title, confirm = "Edit Box Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Box preset name")
	nameEntry.SetText(preset.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.0f", preset.Dimensions.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.0f", preset.Dimensions.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.0f", preset.Dimensions.Height))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (mm)", lengthEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			dims := model.BoxDimensions{Length: l, Width: w, Height: h}
			if !dims.Valid() {
				dialog.ShowError(fmt.Errorf("length, width, and height must be > 0"), a.window)
				return
			}

			preset.Name = nameEntry.Text
			preset.Dimensions = dims
			if idx >= 0 {
				a.inventory.Boxes[idx] = preset
			} else {
				a.inventory.Boxes = append(a.inventory.Boxes, preset)
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 350))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) inventoryToolbar(addBtn fyne.CanvasObject, onImport func()) fyne.CanvasObject {
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(onImport)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	return container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)
}

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		merged, err := project.ImportInventory(path, a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d container presets and %d box presets.",
				len(a.inventory.Containers), len(a.inventory.Boxes)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.ExportInventory(path, a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Inventory exported to %s", path),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// ─── Inventory Integration Helpers ─────────────────────────

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}

// showAddBoxFromInventory shows a picker to add a packing list line from inventory presets.
func (a *App) showAddBoxFromInventory() {
	if len(a.inventory.Boxes) == 0 {
		dialog.ShowInformation("No Presets",
			"No box presets defined. Use Admin > Box Inventory to add presets.",
			a.window)
		return
	}

	names := a.inventory.BoxNames()
	boxSelect := widget.NewSelect(names, nil)
	boxSelect.SetSelected(names[0])

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	form := dialog.NewForm("Add from Inventory", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Box Preset", boxSelect),
			widget.NewFormItem("Quantity", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset := a.inventory.FindBoxByName(boxSelect.Selected)
			if preset == nil {
				return
			}
			qty, _ := strconv.Atoi(qtyEntry.Text)
			if qty <= 0 {
				qty = 1
			}
			a.recordChange("Add Box")
			a.project.Boxes = append(a.project.Boxes, preset.ToBoxItem(qty))
			a.refreshBoxList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}
