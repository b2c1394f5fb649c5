package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Length,Width,Height,Qty\nCarton,600,400,300,2\nCrate,1200,800,900,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Length;Width;Height;Qty\nCarton;600;400;300;2\nCrate;1200;800;900;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tWidth\tHeight\tQty\nCarton\t600\t400\t300\t2\nCrate\t1200\t800\t900\t1\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Length|Width|Height|Qty\nCarton|600|400|300|2\nCrate|1200|800|900|1\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Length", "Width", "Height", "Quantity", "Unit"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Length: 1, Width: 2, Height: 3, Quantity: 4, Unit: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"NAME", "LENGTH", "WIDTH", "HEIGHT", "QTY"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
	if mapping.Unit != -1 {
		t.Errorf("expected no Unit column, got %d", mapping.Unit)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"SKU", "L", "D", "H", "Pcs", "UoM"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Length: 1, Width: 2, Height: 3, Quantity: 4, Unit: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Height", "Width", "Length", "Label"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 4, Length: 3, Width: 2, Height: 1, Quantity: 0, Unit: -1}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Carton", "600", "400", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header detection for numeric data")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Height != 3 || mapping.Quantity != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\nCarton,600,400,300,2\nCrate,1200,800,900,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(result.Boxes))
	}

	b := result.Boxes[0]
	if b.Label != "Carton" {
		t.Errorf("expected label 'Carton', got '%s'", b.Label)
	}
	if b.Dimensions.Length != 600 || b.Dimensions.Width != 400 || b.Dimensions.Height != 300 {
		t.Errorf("expected 600x400x300, got %+v", b.Dimensions)
	}
	if b.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", b.Quantity)
	}
	if b.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Carton,600,400,300,2\nCrate,1200,800,900,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
	if result.Boxes[1].Dimensions.Length != 1200 {
		t.Errorf("expected length 1200, got %f", result.Boxes[1].Dimensions.Length)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	data := "Artikel,Lange,Breite,Hohe,Anzahl\nCarton,600,400,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
}

func TestImportCSVFromReader_SemicolonDecimalComma(t *testing.T) {
	data := "Label;Length;Width;Height;Quantity\nCarton;600,5;400;300;2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(result.Boxes))
	}
	if result.Boxes[0].Dimensions.Length != 600.5 {
		t.Errorf("expected length 600.5, got %f", result.Boxes[0].Dimensions.Length)
	}
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	data := "Qty,Height,Width,Length,Name\n2,300,400,600,Carton\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(result.Boxes))
	}
	b := result.Boxes[0]
	if b.Label != "Carton" || b.Quantity != 2 {
		t.Errorf("unexpected box %+v", b)
	}
	if b.Dimensions.Length != 600 || b.Dimensions.Width != 400 || b.Dimensions.Height != 300 {
		t.Errorf("expected 600x400x300, got %+v", b.Dimensions)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"invalid length", "Carton,abc,400,300,2"},
		{"missing height", "Carton,600,400,,2"},
		{"invalid quantity", "Carton,600,400,300,abc"},
		{"negative width", "Carton,600,-400,300,2"},
		{"zero quantity", "Carton,600,400,300,0"},
		{"nan length", "Carton,nan,400,300,2"},
		{"inf length", "Carton,inf,400,300,2"},
		{"negative infinity height", "Carton,600,400,-Inf,2"},
		{"spelled out infinity width", "Carton,600,Infinity,300,2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Label,Length,Width,Height,Quantity\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')

			if len(result.Errors) != 1 {
				t.Errorf("expected 1 error, got %v", result.Errors)
			}
			if len(result.Boxes) != 0 {
				t.Errorf("expected 0 boxes, got %d", len(result.Boxes))
			}
			if len(result.Errors) == 1 && !strings.HasPrefix(result.Errors[0], "Line 2:") {
				t.Errorf("expected error to name line 2, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\nGood,600,400,300,2\nBad,abc,400,300,2\nAlsoGood,400,300,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 2 {
		t.Errorf("expected 2 valid boxes, got %d", len(result.Boxes))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_NonFiniteRowsSkipped(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\nA,nan,100,100,1\nB,inf,100,100,1\nC,100,100,100,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 1 || result.Boxes[0].Label != "C" {
		t.Fatalf("expected only box C, got %+v", result.Boxes)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\nCarton,600,400,300,2\n\n\nCrate,1200,800,900,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 2 {
		t.Errorf("expected 2 boxes (skipping empty rows), got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\n,600,400,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(result.Boxes))
	}
	if result.Boxes[0].Label != "Box 1" {
		t.Errorf("expected auto-generated label 'Box 1', got '%s'", result.Boxes[0].Label)
	}
}

func TestImportCSVFromReader_UnitParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		warning  bool
	}{
		{"mm", 60, false},
		{"MM", 60, false},
		{"cm", 600, false},
		{"m", 60000, false},
		{"in", 60 * 25.4, false},
		{"", 60, false},
		{"furlong", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			data := "Label,Length,Width,Height,Quantity,Unit\nBox,60,40,30,1," + tt.input + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')

			if len(result.Boxes) != 1 {
				t.Fatalf("expected 1 box, got %d (errors: %v)", len(result.Boxes), result.Errors)
			}
			if got := result.Boxes[0].Dimensions.Length; got < tt.expected-1e-9 || got > tt.expected+1e-9 {
				t.Errorf("unit %q: expected length %f, got %f", tt.input, tt.expected, got)
			}
			hasWarning := false
			for _, w := range result.Warnings {
				if strings.Contains(w, "Unknown unit") {
					hasWarning = true
				}
			}
			if tt.warning != hasWarning {
				t.Errorf("unit %q: expected warning=%v, got %v", tt.input, tt.warning, hasWarning)
			}
		})
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Length,Unit\nCarton,600,mm\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	foundMissing := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Required columns not found") && strings.Contains(e, "Width, Height, Quantity") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("expected 'Required columns not found' error, got: %v", result.Errors)
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxes.csv")
	content := "Label,Length,Width,Height,Quantity\nCarton,600,400,300,2\nCrate,1200,800,900,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(result.Boxes))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxes.csv")
	content := "Label;Length;Width;Height;Quantity\nCarton;600;400;300;2\nCrate;1200;800;900;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Boxes) != 2 {
		t.Errorf("expected 2 boxes, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}

	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "boxes.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Length", "Width", "Height", "Quantity", "Unit"},
		{"Carton", 60, 40, 30, 2, "cm"},
		{"Crate", 1200, 800, 900, 1, "mm"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(result.Boxes))
	}

	if result.Boxes[0].Label != "Carton" {
		t.Errorf("expected 'Carton', got '%s'", result.Boxes[0].Label)
	}
	if result.Boxes[0].Dimensions.Length != 600 {
		t.Errorf("expected length 600 after cm conversion, got %f", result.Boxes[0].Dimensions.Length)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Carton", 600, 400, 300, 2},
		{"Crate", 1200, 800, 900, 1},
	})

	result := ImportExcel(path)

	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Length", "Width", "Height", "Quantity"},
		{"Carton", "abc", 400, 300, 2},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid length")
	}
	if len(result.Errors) > 0 && !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected error to name row 2, got %q", result.Errors[0])
	}
}

// ─── parseUnit Tests ───────────────────────────────────────

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"mm", 1, true},
		{"cm", 10, true},
		{"m", 1000, true},
		{"in", 25.4, true},
		{"INCH", 25.4, true},
		{"  cm  ", 10, true},
		{"", 1, true},
		{"ft", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, ok := parseUnit(tt.input)
			if f != tt.expected {
				t.Errorf("parseUnit(%q): expected %v, got %v", tt.input, tt.expected, f)
			}
			if ok != tt.ok {
				t.Errorf("parseUnit(%q): expected ok=%v, got %v", tt.input, tt.ok, ok)
			}
		})
	}
}

// ─── Edge Cases ────────────────────────────────────────────

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 0 {
		t.Errorf("expected 0 boxes for header-only file, got %d", len(result.Boxes))
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors for header-only file, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := "Label , Length , Width , Height , Quantity\n Carton , 600 , 400 , 300 , 2 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
	if result.Boxes[0].Label != "Carton" {
		t.Errorf("expected trimmed label, got %q", result.Boxes[0].Label)
	}
}

func TestImportCSVFromReader_DecimalValues(t *testing.T) {
	data := "Label,Length,Width,Height,Quantity\nCarton,600.5,400.25,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d (errors: %v)", len(result.Boxes), result.Errors)
	}
	if result.Boxes[0].Dimensions.Length != 600.5 {
		t.Errorf("expected length 600.5, got %f", result.Boxes[0].Dimensions.Length)
	}
	if result.Boxes[0].Dimensions.Width != 400.25 {
		t.Errorf("expected width 400.25, got %f", result.Boxes[0].Dimensions.Width)
	}
}
