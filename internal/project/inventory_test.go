package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".loadplan" {
		t.Errorf("expected parent dir .loadplan, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Containers: []model.ContainerPreset{
			model.NewContainerPreset("Test Trailer", 13600, 2480, 2700, 50),
		},
		Boxes: []model.BoxPreset{
			model.NewBoxPreset("Test Carton", 600, 400, 300),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Containers) != 1 {
		t.Fatalf("expected 1 container, got %d", len(loaded.Containers))
	}
	if loaded.Containers[0].Name != "Test Trailer" {
		t.Errorf("expected container name 'Test Trailer', got %q", loaded.Containers[0].Name)
	}
	if loaded.Containers[0].WallThickness != 50 {
		t.Errorf("expected wall thickness 50, got %f", loaded.Containers[0].WallThickness)
	}

	if len(loaded.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(loaded.Boxes))
	}
	if loaded.Boxes[0].Name != "Test Carton" {
		t.Errorf("expected box name 'Test Carton', got %q", loaded.Boxes[0].Name)
	}
	if loaded.Boxes[0].Dimensions.Length != 600 {
		t.Errorf("expected length 600, got %f", loaded.Boxes[0].Dimensions.Length)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(inv.Containers) == 0 {
		t.Error("expected default containers, got none")
	}
	if len(inv.Boxes) == 0 {
		t.Error("expected default boxes, got none")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "cont-001", Name: "Existing 20ft", Length: 6058, Width: 2438, Height: 2591},
		},
		Boxes: []model.BoxPreset{
			{ID: "box-001", Name: "Existing Carton", Dimensions: model.BoxDimensions{Length: 400, Width: 300, Height: 300}},
		},
	}

	imported := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "cont-001", Name: "Duplicate 20ft", Length: 6058, Width: 2438, Height: 2591}, // same ID, should be skipped
			{ID: "cont-002", Name: "New Trailer", Length: 13600, Width: 2480, Height: 2700},   // new, should be added
		},
		Boxes: []model.BoxPreset{
			{ID: "box-002", Name: "New Crate", Dimensions: model.BoxDimensions{Length: 1200, Width: 800, Height: 900}},
		},
	}

	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Containers) != 2 {
		t.Errorf("expected 2 containers after merge, got %d", len(merged.Containers))
	}
	if merged.Containers[0].Name != "Existing 20ft" {
		t.Errorf("expected first container to be 'Existing 20ft', got %q", merged.Containers[0].Name)
	}
	if merged.Containers[1].Name != "New Trailer" {
		t.Errorf("expected second container to be 'New Trailer', got %q", merged.Containers[1].Name)
	}

	if len(merged.Boxes) != 2 {
		t.Errorf("expected 2 boxes after merge, got %d", len(merged.Boxes))
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Containers) != len(existing.Containers) {
		t.Errorf("existing inventory should be returned unchanged")
	}
}

func TestExportInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "export.json")

	inv := model.DefaultInventory()
	if err := ExportInventory(path, inv); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}

	var loaded model.Inventory
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal exported inventory: %v", err)
	}

	if len(loaded.Containers) != len(inv.Containers) {
		t.Errorf("expected %d containers, got %d", len(inv.Containers), len(loaded.Containers))
	}
	if len(loaded.Boxes) != len(inv.Boxes) {
		t.Errorf("expected %d boxes, got %d", len(inv.Boxes), len(loaded.Boxes))
	}
}
