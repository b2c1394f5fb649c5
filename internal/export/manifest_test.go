package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportManifest_Sheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.xlsx")

	result := buildTestResult()
	result.UnplacedBoxes = []model.BoxItem{
		{ID: "u1", Label: "Crate", Dimensions: model.BoxDimensions{Length: 1200, Width: 800, Height: 900}, Quantity: 2},
	}

	if err := ExportManifest(path, result); err != nil {
		t.Fatalf("ExportManifest returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ManifestSheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", ManifestSheet, err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Seq" || rows[0][2] != "Label" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	// Sorted by label, then by loading sequence
	wantOrder := []struct{ seq, label string }{
		{"1", "Carton M"},
		{"3", "Carton M"},
		{"2", "Carton S"},
		{"4", "Crate"},
	}
	for i, want := range wantOrder {
		row := rows[i+1]
		if row[0] != want.seq || row[2] != want.label {
			t.Errorf("row %d = (%s, %s), want (%s, %s)", i+1, row[0], row[2], want.seq, want.label)
		}
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", SummarySheet, err)
	}
	if len(summary) != 4 {
		t.Fatalf("expected header + 3 summary rows, got %d", len(summary))
	}
	crate := summary[3]
	if crate[0] != "Crate" || crate[1] != "1" || crate[2] != "2" {
		t.Errorf("unexpected crate summary: %v", crate)
	}

	unplaced, err := f.GetRows(UnplacedSheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", UnplacedSheet, err)
	}
	if len(unplaced) != 2 {
		t.Fatalf("expected header + 1 unplaced row, got %d", len(unplaced))
	}
	if unplaced[1][1] != "Crate" || unplaced[1][5] != "2" {
		t.Errorf("unexpected unplaced row: %v", unplaced[1])
	}
}

func TestExportManifest_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "natural.xlsx")

	result := model.LoadResult{
		Interior: testInterior,
		Placements: []model.PlacedBox{
			placedAt("a", "Box 10", 100, 100, 100, -990, -490, -590),
			placedAt("b", "Box 2", 100, 100, 100, -885, -490, -590),
			placedAt("c", "Box 1", 100, 100, 100, -780, -490, -590),
		},
	}

	if err := ExportManifest(path, result); err != nil {
		t.Fatalf("ExportManifest returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ManifestSheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", ManifestSheet, err)
	}
	want := []string{"Box 1", "Box 2", "Box 10"}
	for i, label := range want {
		if rows[i+1][2] != label {
			t.Errorf("row %d label = %q, want %q", i+1, rows[i+1][2], label)
		}
	}
}

func TestExportManifest_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportManifest(path, model.LoadResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
