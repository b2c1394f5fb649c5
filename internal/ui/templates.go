package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

// showTemplatesDialog lists saved load templates with load and delete actions.
func (a *App) showTemplatesDialog() {
	list := container.NewVBox()
	var d dialog.Dialog
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		if len(a.templates.Templates) == 0 {
			list.Add(widget.NewLabel("No templates saved. Use 'Save Current as Template' to create one."))
			return
		}

		for i := range a.templates.Templates {
			t := a.templates.Templates[i]
			boxes := 0
			for _, b := range t.Boxes {
				boxes += b.Quantity
			}
			info := widget.NewLabel(fmt.Sprintf("%s - %d boxes, %s", t.Name, boxes, t.Container.Label))
			if t.Description != "" {
				info.SetText(info.Text + "\n" + t.Description)
			}

			row := container.NewHBox(
				info,
				layout.NewSpacer(),
				widget.NewButtonWithIcon("Load", theme.DownloadIcon(), func() {
					a.recordChange("Load Template")
					a.project = t.ToProject(t.Name)
					a.projectPath = ""
					a.refreshAll()
					d.Hide()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.templates.Remove(t.ID)
					a.saveTemplates()
					refreshList()
				}),
			)
			list.Add(row)
		}
	}

	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current as Template", theme.DocumentSaveIcon(), func() {
		a.showSaveTemplateDialog(refreshList)
	})

	content := container.NewBorder(
		container.NewHBox(saveBtn),
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d = dialog.NewCustom("Load Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

func (a *App) showSaveTemplateDialog(onDone func()) {
	if len(a.project.Boxes) == 0 {
		dialog.ShowInformation("Empty Packing List", "Add boxes before saving a template.", a.window)
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("template name must not be empty"), a.window)
				return
			}
			if existing := a.templates.FindByName(nameEntry.Text); existing != nil {
				a.templates.Remove(existing.ID)
			}
			a.templates.Add(model.NewLoadTemplate(
				nameEntry.Text, descEntry.Text,
				a.project.Boxes, a.project.Container, a.project.Settings,
			))
			a.saveTemplates()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 300))
	form.Show()
}

// saveTemplates persists the template store to disk.
func (a *App) saveTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}
