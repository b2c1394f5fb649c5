package export

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportManifest.
const (
	ManifestSheet = "Manifest"
	SummarySheet  = "Summary"
	UnplacedSheet = "Unplaced"
)

var manifestHeaders = []string{
	"Seq", "Box ID", "Label", "Layer",
	"Length (mm)", "Width (mm)", "Height (mm)",
	"X (mm)", "Y (mm)", "Z (mm)",
}

// ExportManifest writes an Excel workbook describing the load. The Manifest
// sheet has one row per placed box, sorted by label in natural order and then
// by loading sequence. Summary counts boxes per label and Unplaced lists
// everything that did not fit.
func ExportManifest(path string, result model.LoadResult) error {
	if len(result.Placements) == 0 && len(result.UnplacedBoxes) == 0 {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ManifestSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	infos := CollectLabelInfos(result)
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Label != infos[j].Label {
			return natural.Less(infos[i].Label, infos[j].Label)
		}
		return infos[i].Sequence < infos[j].Sequence
	})

	rows := make([][]interface{}, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []interface{}{
			info.Sequence, info.BoxID, info.Label, info.Layer,
			info.Length, info.Width, info.Height,
			info.X, info.Y, info.Z,
		})
	}
	if err := writeSheet(f, ManifestSheet, manifestHeaders, rows, bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", SummarySheet, err)
	}
	if err := writeSheet(f, SummarySheet, []string{"Label", "Placed", "Unplaced"}, summaryRows(result), bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(UnplacedSheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", UnplacedSheet, err)
	}
	var unplaced [][]interface{}
	for _, b := range result.UnplacedBoxes {
		unplaced = append(unplaced, []interface{}{
			b.ID, b.Label, b.Dimensions.Length, b.Dimensions.Width, b.Dimensions.Height, b.Quantity,
		})
	}
	unplacedHeaders := []string{"Box ID", "Label", "Length (mm)", "Width (mm)", "Height (mm)", "Quantity"}
	if err := writeSheet(f, UnplacedSheet, unplacedHeaders, unplaced, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeSheet writes a bold header row followed by the data rows.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
			}
		}
	}
	return nil
}

// summaryRows counts placed and unplaced boxes per label in natural label order.
func summaryRows(result model.LoadResult) [][]interface{} {
	placed := make(map[string]int)
	unplaced := make(map[string]int)
	seen := make(map[string]bool)
	var labels []string
	add := func(label string) {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	for _, p := range result.Placements {
		add(p.Label)
		placed[p.Label]++
	}
	for _, b := range result.UnplacedBoxes {
		add(b.Label)
		unplaced[b.Label] += b.Quantity
	}

	sort.Sort(natural.StringSlice(labels))

	rows := make([][]interface{}, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []interface{}{l, placed[l], unplaced[l]})
	}
	return rows
}
