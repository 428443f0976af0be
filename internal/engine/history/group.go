package history

import "github.com/dshills/blockdoc/internal/engine/document"

// GroupScope collapses everything pushed during its lifetime into one
// undo entry, usually via defer:
//
//	defer h.GroupScope("reformat section").End()
//	// several Replace calls, each recorded
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope begins a group and returns a scope handle for closing it.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the scope. Calling it again is a no-op.
func (g *GroupScope) End() {
	if !g.active {
		return
	}
	g.active = false
	g.history.EndGroup()
}

// Cancel abandons the scope without recording a compound entry. Edits
// already applied to the document stay applied.
func (g *GroupScope) Cancel() {
	if !g.active {
		return
	}
	g.active = false
	g.history.CancelGroup()
}

// Transaction runs fn inside a group. An error from fn cancels the
// group; success closes it as one undo entry.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}
	h.EndGroup()
	return nil
}

// ExecuteGrouped executes cmds in order as one undo unit. A lone
// command is executed directly; a failure cancels the group and stops.
func (h *History) ExecuteGrouped(name string, st *document.Store, cmds ...Command) error {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return h.Execute(cmds[0], st)
	}
	h.BeginGroup(name)
	for _, cmd := range cmds {
		if err := h.Execute(cmd, st); err != nil {
			h.CancelGroup()
			return err
		}
	}
	h.EndGroup()
	return nil
}

// Checkpoint marks a position in the undo history.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint captures the current undo depth.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes entries until the stack is back at the
// checkpoint's depth.
func (h *History) UndoToCheckpoint(cp Checkpoint, st *document.Store) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(st); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint replays redo entries until the checkpoint's depth is
// reached or the redo stack runs out.
func (h *History) RedoToCheckpoint(cp Checkpoint, st *document.Store) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(st); err != nil {
			return err
		}
	}
	return nil
}
