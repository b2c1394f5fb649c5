package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Wireframe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "load.dxf")

	result := buildTestResult()
	if err := ExportDXF(path, result); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen DXF: %v", err)
	}

	var lines []*entity.Line
	for _, ent := range drawing.Entities() {
		if l, ok := ent.(*entity.Line); ok {
			lines = append(lines, l)
		}
	}

	// Interior outline plus 4 boxes
	if want := 12 * (1 + len(result.Placements)); len(lines) != want {
		t.Fatalf("expected %d lines, got %d", want, len(lines))
	}

	// Everything sits at or above the interior floor, and the interior
	// outline reaches the full interior height on DXF Z.
	var maxZ float64
	for _, l := range lines {
		for _, z := range []float64{l.Start[2], l.End[2]} {
			if z < -1e-9 {
				t.Fatalf("line below the floor: %v -> %v", l.Start, l.End)
			}
			maxZ = math.Max(maxZ, z)
		}
	}
	if math.Abs(maxZ-testInterior.Size().Height) > 1e-6 {
		t.Errorf("max Z = %v, want %v", maxZ, testInterior.Size().Height)
	}
}

func TestExportDXF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, model.LoadResult{Interior: testInterior}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestBoxEdges(t *testing.T) {
	lo := [3]float64{0, 0, 0}
	hi := [3]float64{600, 400, 300}

	edges := boxEdges(lo, hi)
	if len(edges) != 12 {
		t.Fatalf("expected 12 edges, got %d", len(edges))
	}

	perAxis := map[float64]int{}
	seen := map[[2][3]float64]bool{}
	for _, e := range edges {
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true

		dx := math.Abs(e[1][0] - e[0][0])
		dy := math.Abs(e[1][1] - e[0][1])
		dz := math.Abs(e[1][2] - e[0][2])
		perAxis[dx+dy+dz]++

		moving := 0
		for _, d := range []float64{dx, dy, dz} {
			if d > 0 {
				moving++
			}
		}
		if moving != 1 {
			t.Errorf("edge %v is not axis-aligned", e)
		}
	}

	for _, length := range []float64{600, 400, 300} {
		if perAxis[length] != 4 {
			t.Errorf("expected 4 edges of length %v, got %d", length, perAxis[length])
		}
	}
}

func TestTierLayerName(t *testing.T) {
	if got := TierLayerName(3); got != "TIER_03" {
		t.Errorf("TierLayerName(3) = %q, want TIER_03", got)
	}
}
