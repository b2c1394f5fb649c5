package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadPlan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each box label's QR code.
// Positions are the box's back-bottom-left corner measured from the
// back-bottom-left corner of the usable interior.
type LabelInfo struct {
	BoxID     string  `json:"id"`
	Label     string  `json:"label"`
	Length    float64 `json:"length_mm"`
	Width     float64 `json:"width_mm"`
	Height    float64 `json:"height_mm"`
	Layer     int     `json:"layer"`
	Sequence  int     `json:"seq"`
	Container string  `json:"container"`
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	Z         float64 `json:"z_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed boxes,
// in loading order. Each label carries the box name, its placed dimensions,
// layer and position, and a QR code encoding the same data as JSON.
func ExportLabels(path string, result model.LoadResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Sequence numbers are unique within a load.
	imgName := fmt.Sprintf("qr_%d", info.Sequence)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	boxLabel := fitText(fmt.Sprintf("#%d %s", info.Sequence, info.Label), textW, pdf.GetStringWidth)
	pdf.CellFormat(textW, 4.5, boxLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm", info.Length, info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Layer %d @ (%.0f, %.0f, %.0f)", info.Layer, info.X, info.Y, info.Z), "", 1, "L", false, 0, "")

	if info.Container != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(textW, 3, info.Container, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a load result in
// placement order, for use in testing or alternative export formats.
func CollectLabelInfos(result model.LoadResult) []LabelInfo {
	layerOf := make(map[int]int)
	layers := result.Layers()
	for i, p := range result.Placements {
		bottom := p.Min().Y
		for li, layer := range layers {
			if layerContains(layer, bottom) {
				layerOf[i] = li + 1
				break
			}
		}
	}

	origin := result.Interior.Origin()
	var labels []LabelInfo
	for i, p := range result.Placements {
		lo := p.Min()
		labels = append(labels, LabelInfo{
			BoxID:     p.BoxID,
			Label:     p.Label,
			Length:    p.Orientation.Length,
			Width:     p.Orientation.Width,
			Height:    p.Orientation.Height,
			Layer:     layerOf[i],
			Sequence:  i + 1,
			Container: result.Container.Label,
			X:         lo.X - origin.X,
			Y:         lo.Y - origin.Y,
			Z:         lo.Z - origin.Z,
		})
	}
	return labels
}

// layerContains reports whether a box with the given bottom belongs to layer.
func layerContains(layer model.Layer, bottom float64) bool {
	for _, b := range layer.Boxes {
		if b.Min().Y == bottom {
			return true
		}
	}
	return false
}

// fitText shortens s with a trailing ellipsis until width reports it fits
// in maxW. Whole runes are dropped so the result stays valid UTF-8.
func fitText(s string, maxW float64, width func(string) float64) string {
	if width(s) <= maxW {
		return s
	}
	for len(s) > 0 && width(s+"...") > maxW {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s + "..."
}
