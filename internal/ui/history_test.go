package ui

import (
	"testing"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func projectWith(boxes ...model.BoxItem) model.Project {
	p := model.NewProject()
	p.Boxes = boxes
	return p
}

func carton(id string) model.BoxItem {
	return model.BoxItem{
		ID:         id,
		Label:      "Carton " + id,
		Dimensions: model.BoxDimensions{Length: 600, Width: 400, Height: 400},
		Quantity:   1,
	}
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "Add Box"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "Add Box" {
		t.Errorf("expected undo label 'Add Box', got %q", h.UndoLabel())
	}

	current := MakeSnapshot(projectWith(carton("a")), "current")
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Boxes) != 0 {
		t.Errorf("expected 0 boxes after undo, got %d", len(restored.Boxes))
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "empty"))
	h.Push(MakeSnapshot(projectWith(carton("a")), "one box"))

	current := MakeSnapshot(projectWith(carton("a"), carton("b")), "two boxes")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Boxes) != 1 {
		t.Errorf("expected 1 box, got %d", len(restored.Boxes))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Boxes) != 2 {
		t.Errorf("expected 2 boxes after redo, got %d", len(redone.Boxes))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "empty"))

	if _, ok := h.Undo(MakeSnapshot(projectWith(carton("a")), "one box")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(projectWith(), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(projectWith(), ""))
	}
	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(projectWith(), "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "a"))
	h.Push(MakeSnapshot(projectWith(), "b"))
	h.Undo(MakeSnapshot(projectWith(), "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	proj := projectWith(carton("a"))
	snap := MakeSnapshot(proj, "test")

	proj.Boxes[0].Label = "Modified"
	proj.Container.Length = 1

	if snap.Boxes[0].Label != "Carton a" {
		t.Error("snapshot boxes should be independent of the project")
	}
	if snap.Container.Length == 1 {
		t.Error("snapshot container should be independent of the project")
	}
}

func TestSnapshotRestore(t *testing.T) {
	proj := projectWith(carton("a"))
	proj.Settings.AllowRotation = true
	snap := MakeSnapshot(proj, "before edit")

	proj.Boxes = append(proj.Boxes, carton("b"))
	proj.Settings.AllowRotation = false
	proj.Result = &model.LoadResult{}

	snap.Restore(&proj)

	if len(proj.Boxes) != 1 {
		t.Errorf("expected 1 box after restore, got %d", len(proj.Boxes))
	}
	if !proj.Settings.AllowRotation {
		t.Error("settings should be restored")
	}
	if proj.Result != nil {
		t.Error("restore should drop the stale result")
	}

	// The restored slice must not alias the snapshot.
	proj.Boxes[0].Label = "Changed"
	if snap.Boxes[0].Label != "Carton a" {
		t.Error("restored boxes should not alias the snapshot")
	}
}

func TestMakeSnapshotNilBoxes(t *testing.T) {
	proj := model.NewProject()
	proj.Boxes = nil
	snap := MakeSnapshot(proj, "nil test")
	if snap.Boxes != nil {
		t.Error("nil boxes should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(projectWith(), "empty"))
	h.Push(MakeSnapshot(projectWith(carton("a")), "1 box"))
	h.Push(MakeSnapshot(projectWith(carton("a"), carton("b")), "2 boxes"))

	current := MakeSnapshot(projectWith(carton("a"), carton("b"), carton("c")), "3 boxes")

	s, ok := h.Undo(current)
	if !ok || len(s.Boxes) != 2 {
		t.Fatalf("first undo: expected 2 boxes, got %d", len(s.Boxes))
	}
	s, ok = h.Undo(s)
	if !ok || len(s.Boxes) != 1 {
		t.Fatalf("second undo: expected 1 box, got %d", len(s.Boxes))
	}
	s, ok = h.Undo(s)
	if !ok || len(s.Boxes) != 0 {
		t.Fatalf("third undo: expected 0 boxes, got %d", len(s.Boxes))
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 1; want <= 3; want++ {
		s, ok = h.Redo(s)
		if !ok || len(s.Boxes) != want {
			t.Fatalf("redo: expected %d boxes, got %d", want, len(s.Boxes))
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
