package ui

import "github.com/piwi3910/LoadPlan/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the editable parts of a project: the packing list,
// the container and the load settings. Results are not kept; they are
// stale after any undo.
type Snapshot struct {
	Boxes     []model.BoxItem
	Container model.ContainerSpec
	Settings  model.LoadSettings
	Label     string // Human-readable description (e.g. "Add Box")
}

// MakeSnapshot copies the editable state of proj.
func MakeSnapshot(proj model.Project, label string) Snapshot {
	var boxes []model.BoxItem
	if proj.Boxes != nil {
		boxes = make([]model.BoxItem, len(proj.Boxes))
		copy(boxes, proj.Boxes)
	}
	return Snapshot{
		Boxes:     boxes,
		Container: proj.Container,
		Settings:  proj.Settings,
		Label:     label,
	}
}

// Restore writes the snapshot back into proj and drops its result.
func (s Snapshot) Restore(proj *model.Project) {
	proj.Boxes = make([]model.BoxItem, len(s.Boxes))
	copy(proj.Boxes, s.Boxes)
	proj.Container = s.Container
	proj.Settings = s.Settings
	proj.Result = nil
}

// History manages undo/redo stacks of project snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// Call it before applying the change.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo returns the most recent snapshot and moves current onto the redo stack.
// It reports false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel returns the label of the change Undo would revert, or "".
func (h *History) UndoLabel() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
