// Package export provides functionality for exporting load plans
// to various file formats.
package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadPlan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	thumbnailWidth = 110.0 // mm on the summary page
	thumbnailPx    = 1200
)

// ExportPDF generates a PDF document containing the load plan.
// Each layer is rendered top-down on its own page, followed by a summary page
// with overall statistics, the settings used and a side-view thumbnail.
func ExportPDF(path string, result model.LoadResult, settings model.LoadSettings) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no boxes placed to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	palette := labelPalette(result.Placements)
	layers := result.Layers()

	for i, layer := range layers {
		pdf.AddPage()
		renderLayerPage(pdf, result, layer, palette, i+1, len(layers))
	}

	pdf.AddPage()
	if err := renderSummaryPage(pdf, result, layers, settings); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// renderLayerPage draws a single layer on the current PDF page.
func renderLayerPage(pdf *fpdf.Fpdf, result model.LoadResult, layer model.Layer, palette map[string]boxColor, layerNum, layerCount int) {
	interior := result.Interior
	size := interior.Size()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layer %d of %d: %s (floor +%.0f mm)", layerNum, layerCount, result.Container.Label, layer.Bottom-interior.MinY)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Layer volume: %.2f m³ | Floor coverage: %.1f%%",
		len(layer.Boxes), layerVolume(layer)/1e9, footprintCoverage(layer, interior))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/size.Length, drawHeight/size.Width)
	canvasW := size.Length * scale
	canvasH := size.Width * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container floor
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range layer.Boxes {
		col := palette[p.Label]
		lo := p.Min()
		bw := p.Orientation.Length * scale
		bh := p.Orientation.Width * scale
		bx := offsetX + (lo.X-interior.MinX)*scale
		by := offsetY + (lo.Z-interior.MinZ)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 15 && bh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
			pdf.SetTextColor(0, 0, 0)

			label := p.Label
			dims := fmt.Sprintf("%.0fx%.0fx%.0f", p.Orientation.Length, p.Orientation.Width, p.Orientation.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if bh > 14 && dimsW < bw-2 {
				pdf.SetXY(bx+(bw-dimsW)/2, by+bh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, size, offsetX, offsetY, canvasW, canvasH)
	drawBoxLegend(pdf, layer, palette, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds length and width labels outside the floor rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, size model.BoxDimensions, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f mm", size.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f mm", size.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawBoxLegend renders one swatch per box type in the layer with its count.
func drawBoxLegend(pdf *fpdf.Fpdf, layer model.Layer, palette map[string]boxColor, startY float64) {
	if len(layer.Boxes) == 0 {
		return
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range layer.Boxes {
		if counts[p.Label] == 0 {
			order = append(order, p.Label)
		}
		counts[p.Label]++
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Boxes in layer:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, label := range order {
		col := palette[label]
		text := fmt.Sprintf("%s x%d", label, counts[label])
		textW := pdf.GetStringWidth(text) + 6

		if xPos+textW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(textW-4, 4, text, "", 0, "L", false, 0, "")

		xPos += textW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.LoadResult, layers []model.Layer, settings model.LoadSettings) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	if err := drawOverviewThumbnail(pdf, result, marginTop+18); err != nil {
		return err
	}

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	inner := result.Interior.Size()
	summaryItems := []struct {
		label string
		value string
	}{
		{"Container", result.Container.Label},
		{"Interior", fmt.Sprintf("%.0f x %.0f x %.0f mm", inner.Length, inner.Width, inner.Height)},
		{"Boxes Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Boxes Unplaced", fmt.Sprintf("%d", result.UnplacedCount())},
		{"Loaded Volume", fmt.Sprintf("%.2f m³", result.LoadedVolume()/1e9)},
		{"Fill", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Stack Height", fmt.Sprintf("%.0f mm", result.Height())},
		{"Layers", fmt.Sprintf("%d", len(layers))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	y += 5

	// Per-layer breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layer Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{18, 28, 28, 18, 30}
	headers := []string{"Layer", "Bottom", "Top", "Boxes", "Coverage"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layer := range layers {
		// Keep the table on the page for very tall loads.
		if y > pageHeight-marginBottom-12 {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(100, 5, fmt.Sprintf("... %d more layers", len(layers)-i), "", 0, "L", false, 0, "")
			break
		}

		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f mm", layer.Bottom-result.Interior.MinY),
			fmt.Sprintf("%.0f mm", layerTop(layer)-result.Interior.MinY),
			fmt.Sprintf("%d", len(layer.Boxes)),
			fmt.Sprintf("%.1f%%", footprintCoverage(layer, result.Interior)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Settings and unplaced boxes go in the right column under the thumbnail.
	rightX := pageWidth - marginRight - thumbnailWidth
	ry := marginTop + 18 + thumbnailHeight(result) + 6

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(rightX, ry)
	pdf.CellFormat(100, 7, "Load Settings", "", 0, "L", false, 0, "")
	ry += 8

	rotation := "No"
	if settings.AllowRotation {
		rotation = "Yes"
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Box Gap", fmt.Sprintf("%.1f mm", settings.BoxGap)},
		{"Wall Gap", fmt.Sprintf("%.1f mm", settings.WallGap)},
		{"Support Ratio", fmt.Sprintf("%.0f%%", settings.SupportRatio*100)},
		{"Rotation", rotation},
		{"Scoring", string(settings.Scoring)},
		{"Sort Order", string(settings.SortOrder)},
		{"Algorithm", string(settings.Algorithm)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(rightX+5, ry)
		pdf.CellFormat(35, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		ry += 5
	}

	if len(result.UnplacedBoxes) > 0 {
		ry += 4
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(rightX, ry)
		pdf.CellFormat(thumbnailWidth, 7, "WARNING: Unplaced Boxes", "", 0, "L", false, 0, "")
		ry += 7

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, b := range result.UnplacedBoxes {
			if ry > pageHeight-marginBottom-6 {
				break
			}
			pdf.SetXY(rightX+5, ry)
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f mm (qty: %d)",
				b.Label, b.Dimensions.Length, b.Dimensions.Width, b.Dimensions.Height, b.Quantity)
			pdf.CellFormat(thumbnailWidth-5, 5, text, "", 0, "L", false, 0, "")
			ry += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadPlan - Container Load Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// drawOverviewThumbnail embeds a side elevation of the load in the top right corner.
func drawOverviewThumbnail(pdf *fpdf.Fpdf, result model.LoadResult, y float64) error {
	img, err := RenderOverview(result, thumbnailPx)
	if err != nil {
		return fmt.Errorf("failed to render overview: %w", err)
	}
	thumb := Thumbnail(img, thumbnailPx/2, thumbnailPx/2)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, thumb); err != nil {
		return fmt.Errorf("failed to encode overview: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("overview", opts, &buf)
	x := pageWidth - marginRight - thumbnailWidth
	pdf.ImageOptions("overview", x, y, thumbnailWidth, 0, false, opts, 0, "")
	return nil
}

// thumbnailHeight returns the height in mm the overview occupies at thumbnailWidth.
func thumbnailHeight(result model.LoadResult) float64 {
	size := result.Interior.Size()
	if size.Length <= 0 {
		return 0
	}
	return thumbnailWidth * size.Height / size.Length
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func layerVolume(layer model.Layer) float64 {
	var total float64
	for _, p := range layer.Boxes {
		total += p.Orientation.Volume()
	}
	return total
}

func layerTop(layer model.Layer) float64 {
	top := layer.Bottom
	for _, p := range layer.Boxes {
		top = math.Max(top, p.Max().Y)
	}
	return top
}

// footprintCoverage returns the share of the floor area covered by the layer's
// boxes as a percentage.
func footprintCoverage(layer model.Layer, interior model.Bounds) float64 {
	size := interior.Size()
	floor := size.Length * size.Width
	if floor <= 0 {
		return 0
	}
	var covered float64
	for _, p := range layer.Boxes {
		covered += p.Orientation.BaseArea()
	}
	return covered / floor * 100.0
}
