package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	boxes := []model.BoxItem{model.NewBoxItem("Carton", 600, 400, 400, 20)}
	container := model.DefaultInventory().Containers[0].ToContainerSpec()
	settings := model.DefaultSettings()

	tmpl := model.NewLoadTemplate("Weekly Run", "Standard weekly shipment", boxes, container, settings)
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	if loaded.Templates[0].Name != "Weekly Run" {
		t.Errorf("expected 'Weekly Run', got %q", loaded.Templates[0].Name)
	}
	if len(loaded.Templates[0].Boxes) != 1 {
		t.Errorf("expected 1 box, got %d", len(loaded.Templates[0].Boxes))
	}
	if loaded.Templates[0].Container.Label != container.Label {
		t.Errorf("expected container %q, got %q", container.Label, loaded.Templates[0].Container.Label)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	container := model.ContainerSpec{Label: "Pallet", Length: 1200, Width: 800, Height: 1800}
	store := model.NewTemplateStore()
	store.Add(model.NewLoadTemplate("T1", "First", nil, container, model.DefaultSettings()))
	store.Add(model.NewLoadTemplate("T2", "Second", nil, container, model.DefaultSettings()))
	store.Add(model.NewLoadTemplate("T3", "Third", nil, container, model.DefaultSettings()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
}

func TestLoadTemplates_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte("{\"templates\": ["), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadTemplates(path)
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty usable store on error, got %+v", store.Templates)
	}
}

func TestLoadTemplates_NullTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(`{"templates": null}`), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if store.Templates == nil {
		t.Error("expected non-nil template slice")
	}
}

func TestDefaultTemplatePath(t *testing.T) {
	path := DefaultTemplatePath()
	if filepath.Base(path) != "templates.json" {
		t.Errorf("expected filename templates.json, got %s", filepath.Base(path))
	}
	if filepath.Dir(path) != DefaultConfigDir() {
		t.Errorf("expected templates next to config, got %s", path)
	}
}
