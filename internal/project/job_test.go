package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func TestParseJobWithPreset(t *testing.T) {
	data := []byte(`
name: Shipment 42
preset: 20ft Standard
settings:
  allow_rotation: true
  scoring: contact
boxes:
  - {label: Carton M, length: 600, width: 400, height: 400, quantity: 20}
  - {length: 300, width: 300, height: 300}
`)

	job, err := ParseJob(data, model.DefaultInventory())
	if err != nil {
		t.Fatalf("ParseJob failed: %v", err)
	}

	if job.Container.Label != "20ft Standard" {
		t.Errorf("expected 20ft Standard container, got %q", job.Container.Label)
	}
	if !job.Settings.AllowRotation {
		t.Error("expected allow_rotation from the job")
	}
	if job.Settings.Scoring != model.ScoringContact {
		t.Errorf("expected contact scoring, got %q", job.Settings.Scoring)
	}
	if job.Settings.BoxGap != model.DefaultSettings().BoxGap {
		t.Errorf("expected default box gap, got %f", job.Settings.BoxGap)
	}
	if len(job.Boxes) != 2 {
		t.Fatalf("expected 2 box lines, got %d", len(job.Boxes))
	}
	if job.Boxes[1].Quantity != 1 {
		t.Errorf("expected missing quantity to default to 1, got %d", job.Boxes[1].Quantity)
	}
	if job.Boxes[1].Label != "Box 2" {
		t.Errorf("expected generated label 'Box 2', got %q", job.Boxes[1].Label)
	}

	items := job.Items()
	if items[0].Dimensions.Length != 600 || items[0].Quantity != 20 {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[0].ID == "" {
		t.Error("expected generated item ID")
	}
}

func TestParseJobExplicitContainer(t *testing.T) {
	data := []byte(`
container: {label: Crate, length: 1020, width: 1020, height: 1020}
boxes:
  - {label: Cube, length: 300, width: 300, height: 300, quantity: 27}
`)
	job, err := ParseJob(data, model.Inventory{})
	if err != nil {
		t.Fatalf("ParseJob failed: %v", err)
	}
	if job.Container.Length != 1020 {
		t.Errorf("expected length 1020, got %f", job.Container.Length)
	}
	if job.Name != "Untitled" {
		t.Errorf("expected default name, got %q", job.Name)
	}

	proj := job.Project()
	if proj.TotalBoxes() != 27 {
		t.Errorf("expected 27 boxes in project, got %d", proj.TotalBoxes())
	}
}

func TestParseJobErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "boxes: [\n"},
		{"no container", "boxes:\n  - {length: 1, width: 1, height: 1}\n"},
		{"unknown preset", "preset: Nope\nboxes:\n  - {length: 1, width: 1, height: 1}\n"},
		{"no boxes", "preset: 20ft Standard\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJob([]byte(tt.data), model.DefaultInventory()); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	data := []byte("preset: Euro Pallet (1.8m stack)\nboxes:\n  - {label: Tote, length: 400, width: 300, height: 200, quantity: 4}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadJob(path, model.DefaultInventory())
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}
	if job.Container.Label != "Euro Pallet (1.8m stack)" {
		t.Errorf("expected the pallet preset, got %q", job.Container.Label)
	}

	if _, err := LoadJob(filepath.Join(t.TempDir(), "missing.yaml"), model.DefaultInventory()); err == nil {
		t.Error("expected error for missing job file")
	}
}
