package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Box colors, assigned per label so a box type looks the same on every layer.
var boxColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// Palette maps box labels to colors in order of first placement.
type Palette map[string]color.NRGBA

// NewPalette builds the palette for a set of placements.
func NewPalette(placements []model.PlacedBox) Palette {
	p := make(Palette)
	for _, b := range placements {
		if _, ok := p[b.Label]; !ok {
			p[b.Label] = boxColors[len(p)%len(boxColors)]
		}
	}
	return p
}

// LayerCanvas renders a top-down view of one layer of a load.
// x runs left to right, z from the back wall (top) to the front.
type LayerCanvas struct {
	widget.BaseWidget
	layer     model.Layer
	interior  model.Bounds
	palette   Palette
	maxWidth  float32
	maxHeight float32
}

func NewLayerCanvas(layer model.Layer, interior model.Bounds, palette Palette, maxW, maxH float32) *LayerCanvas {
	lc := &LayerCanvas{
		layer:     layer,
		interior:  interior,
		palette:   palette,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	lc.ExtendBaseWidget(lc)
	return lc
}

func (lc *LayerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newLayerCanvasRenderer(lc)
}

// scale returns the pixels-per-mm factor that fits the floor within the max bounds.
func (lc *LayerCanvas) scale() float32 {
	size := lc.interior.Size()
	if size.Length <= 0 || size.Width <= 0 {
		return 0
	}
	scale := lc.maxWidth / float32(size.Length)
	if s := lc.maxHeight / float32(size.Width); s < scale {
		scale = s
	}
	return scale
}

type layerCanvasRenderer struct {
	lc      *LayerCanvas
	objects []fyne.CanvasObject
}

func newLayerCanvasRenderer(lc *LayerCanvas) *layerCanvasRenderer {
	r := &layerCanvasRenderer{lc: lc}
	r.rebuild()
	return r
}

func (r *layerCanvasRenderer) rebuild() {
	r.objects = nil

	scale := r.lc.scale()
	if scale == 0 {
		return
	}
	size := r.lc.interior.Size()
	canvasW := float32(size.Length) * scale
	canvasH := float32(size.Width) * scale

	// Container floor
	floor := canvas.NewRectangle(color.NRGBA{R: 235, G: 235, B: 235, A: 255})
	floor.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	floor.StrokeWidth = 2
	floor.Resize(fyne.NewSize(canvasW, canvasH))
	floor.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, floor)

	for _, p := range r.lc.layer.Boxes {
		lo := p.Min()
		bw := float32(p.Orientation.Length) * scale
		bh := float32(p.Orientation.Width) * scale
		bx := float32(lo.X-r.lc.interior.MinX) * scale
		by := float32(lo.Z-r.lc.interior.MinZ) * scale

		box := canvas.NewRectangle(r.lc.palette[p.Label])
		box.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		box.StrokeWidth = 1
		box.Resize(fyne.NewSize(bw, bh))
		box.Move(fyne.NewPos(bx, by))
		r.objects = append(r.objects, box)

		if bw > 30 && bh > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s %.0fx%.0f", p.Label, p.Orientation.Length, p.Orientation.Width),
				color.Black,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(bx+3, by+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *layerCanvasRenderer) Layout(size fyne.Size)        {}
func (r *layerCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *layerCanvasRenderer) Destroy()                     {}
func (r *layerCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *layerCanvasRenderer) MinSize() fyne.Size {
	scale := r.lc.scale()
	size := r.lc.interior.Size()
	return fyne.NewSize(float32(size.Length)*scale, float32(size.Width)*scale)
}

// RenderLoadResult creates a scrollable view of a load: an optional overview
// image followed by one canvas per layer and a summary line.
func RenderLoadResult(result *model.LoadResult, overview fyne.CanvasObject) fyne.CanvasObject {
	if result == nil || len(result.Placements) == 0 {
		return widget.NewLabel("No results yet. Add boxes and a container, then click Plan Load.")
	}

	var items []fyne.CanvasObject
	if overview != nil {
		items = append(items, overview, widget.NewSeparator())
	}

	palette := NewPalette(result.Placements)
	interior := result.Interior

	for i, layer := range result.Layers() {
		header := widget.NewLabel(fmt.Sprintf(
			"Layer %d: floor +%.0f mm, %d boxes",
			i+1, layer.Bottom-interior.MinY, len(layer.Boxes),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items, header, NewLayerCanvas(layer, interior, palette, 700, 300), widget.NewSeparator())
	}

	if n := result.UnplacedCount(); n > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d boxes could not be placed! Try rotation or a larger container.", n,
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
		for _, b := range result.UnplacedBoxes {
			items = append(items, widget.NewLabel(fmt.Sprintf(
				"  %s: %.0f x %.0f x %.0f mm (qty %d)",
				b.Label, b.Dimensions.Length, b.Dimensions.Width, b.Dimensions.Height, b.Quantity,
			)))
		}
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d boxes placed, %.1f%% fill, stack height %.0f mm",
		len(result.Placements), result.Efficiency(), result.Height(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
