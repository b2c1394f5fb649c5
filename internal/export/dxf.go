package export

import (
	"fmt"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// InteriorLayer is the DXF layer holding the usable interior outline.
const InteriorLayer = "INTERIOR"

var tierColors = []color.ColorNumber{
	color.Red,
	color.Yellow,
	color.Green,
	color.Cyan,
	color.Blue,
	color.Magenta,
}

// TierLayerName returns the DXF layer name for the 1-based tier number.
func TierLayerName(tier int) string {
	return fmt.Sprintf("TIER_%02d", tier)
}

// ExportDXF writes the load as a 3D wireframe. Every box becomes its 12 edges
// on the DXF layer of its tier. DXF is Z-up, so the vertical axis of the load
// maps to DXF Z and the container width to DXF Y. Coordinates are measured
// from the back-bottom-left corner of the usable interior.
func ExportDXF(path string, result model.LoadResult) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no boxes placed to export")
	}

	d := dxf.NewDrawing()
	origin := result.Interior.Origin()

	toDXF := func(p model.Point3D) [3]float64 {
		return [3]float64{p.X - origin.X, p.Z - origin.Z, p.Y - origin.Y}
	}

	if _, err := d.AddLayer(InteriorLayer, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", InteriorLayer, err)
	}
	interiorMax := model.Point3D{X: result.Interior.MaxX, Y: result.Interior.MaxY, Z: result.Interior.MaxZ}
	if err := addWireBox(d, toDXF(origin), toDXF(interiorMax)); err != nil {
		return err
	}

	for i, layer := range result.Layers() {
		name := TierLayerName(i + 1)
		if _, err := d.AddLayer(name, tierColors[i%len(tierColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
		for _, p := range layer.Boxes {
			if err := addWireBox(d, toDXF(p.Min()), toDXF(p.Max())); err != nil {
				return fmt.Errorf("failed to draw %s: %w", p.BoxID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// addWireBox draws the edges of the box spanning lo..hi on the current layer.
func addWireBox(d *drawing.Drawing, lo, hi [3]float64) error {
	for _, e := range boxEdges(lo, hi) {
		if _, err := d.Line(e[0][0], e[0][1], e[0][2], e[1][0], e[1][1], e[1][2]); err != nil {
			return err
		}
	}
	return nil
}

// boxEdges returns the 12 edges of an axis-aligned box as point pairs:
// four along each axis.
func boxEdges(lo, hi [3]float64) [][2][3]float64 {
	edges := make([][2][3]float64, 0, 12)
	for axis := 0; axis < 3; axis++ {
		a, b := (axis+1)%3, (axis+2)%3
		for _, va := range []float64{lo[a], hi[a]} {
			for _, vb := range []float64{lo[b], hi[b]} {
				var start, end [3]float64
				start[axis], end[axis] = lo[axis], hi[axis]
				start[a], end[a] = va, va
				start[b], end[b] = vb, vb
				edges = append(edges, [2][3]float64{start, end})
			}
		}
	}
	return edges
}
