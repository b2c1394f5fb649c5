package export

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// boxColor represents an RGB color for a box label.
type boxColor struct {
	R, G, B int
}

// boxColors mirrors the color scheme used in the UI layer canvas widget.
var boxColors = []boxColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// labelPalette assigns every distinct label a color in order of first placement,
// so the same box type keeps its color across layers and pages.
func labelPalette(placements []model.PlacedBox) map[string]boxColor {
	palette := make(map[string]boxColor)
	for _, p := range placements {
		if _, ok := palette[p.Label]; ok {
			continue
		}
		palette[p.Label] = boxColors[len(palette)%len(boxColors)]
	}
	return palette
}

const renderPadding = 20.0

// RenderLayer draws a top-down view of one layer: x runs left to right and
// z runs from the back wall (top of the image) to the front.
func RenderLayer(layer model.Layer, interior model.Bounds, palette map[string]boxColor, width int) (image.Image, error) {
	size := interior.Size()
	if !size.Valid() {
		return nil, fmt.Errorf("invalid interior bounds")
	}
	if width <= int(2*renderPadding) {
		return nil, fmt.Errorf("image width %d is too small", width)
	}

	scale := (float64(width) - 2*renderPadding) / size.Length
	height := int(math.Ceil(size.Width*scale + 2*renderPadding))

	dc := gg.NewContext(width, height)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	// Container floor
	dc.SetRGB255(235, 235, 235)
	dc.DrawRectangle(renderPadding, renderPadding, size.Length*scale, size.Width*scale)
	dc.FillPreserve()
	dc.SetRGB255(100, 100, 100)
	dc.SetLineWidth(2)
	dc.Stroke()

	for _, p := range layer.Boxes {
		lo := p.Min()
		x := renderPadding + (lo.X-interior.MinX)*scale
		y := renderPadding + (lo.Z-interior.MinZ)*scale
		w := p.Orientation.Length * scale
		h := p.Orientation.Width * scale

		col := palette[p.Label]
		dc.SetRGB255(col.R, col.G, col.B)
		dc.DrawRectangle(x, y, w, h)
		dc.FillPreserve()
		dc.SetRGB255(30, 30, 30)
		dc.SetLineWidth(1)
		dc.Stroke()

		if tw, th := dc.MeasureString(p.Label); tw < w-4 && th < h-4 {
			dc.SetRGB255(0, 0, 0)
			dc.DrawStringAnchored(p.Label, x+w/2, y+h/2, 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// RenderOverview draws a side elevation of the whole load, looking at the
// container from the front. Boxes are translucent so stacked rows stay visible.
func RenderOverview(result model.LoadResult, width int) (image.Image, error) {
	size := result.Interior.Size()
	if !size.Valid() {
		return nil, fmt.Errorf("invalid interior bounds")
	}
	if width <= int(2*renderPadding) {
		return nil, fmt.Errorf("image width %d is too small", width)
	}

	scale := (float64(width) - 2*renderPadding) / size.Length
	height := int(math.Ceil(size.Height*scale + 2*renderPadding))
	palette := labelPalette(result.Placements)

	dc := gg.NewContext(width, height)
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	dc.SetRGB255(100, 100, 100)
	dc.SetLineWidth(2)
	dc.DrawRectangle(renderPadding, renderPadding, size.Length*scale, size.Height*scale)
	dc.Stroke()

	// Back rows first so the front rows draw over them.
	boxes := make([]model.PlacedBox, len(result.Placements))
	copy(boxes, result.Placements)
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Position.Z < boxes[j].Position.Z
	})

	for _, p := range boxes {
		lo, hi := p.Min(), p.Max()
		x := renderPadding + (lo.X-result.Interior.MinX)*scale
		y := renderPadding + (result.Interior.MaxY-hi.Y)*scale
		w := p.Orientation.Length * scale
		h := p.Orientation.Height * scale

		col := palette[p.Label]
		dc.SetRGBA255(col.R, col.G, col.B, 160)
		dc.DrawRectangle(x, y, w, h)
		dc.FillPreserve()
		dc.SetRGBA255(30, 30, 30, 200)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// Thumbnail scales img down to fit within maxW x maxH, keeping its aspect ratio.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// ExportLayerPNGs writes one top-down PNG per layer plus an overview elevation
// into dir and returns the written paths in order.
func ExportLayerPNGs(dir string, result model.LoadResult, width int) ([]string, error) {
	if len(result.Placements) == 0 {
		return nil, fmt.Errorf("no boxes placed to render")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	palette := labelPalette(result.Placements)
	var paths []string

	for i, layer := range result.Layers() {
		img, err := RenderLayer(layer, result.Interior, palette, width)
		if err != nil {
			return paths, fmt.Errorf("failed to render layer %d: %w", i+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("layer-%02d.png", i+1))
		if err := imaging.Save(img, path); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	img, err := RenderOverview(result, width)
	if err != nil {
		return paths, fmt.Errorf("failed to render overview: %w", err)
	}
	path := filepath.Join(dir, "overview.png")
	if err := imaging.Save(img, path); err != nil {
		return paths, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return append(paths, path), nil
}
