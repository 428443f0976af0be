package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/blockdoc/internal/engine/document"
)

var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

const defaultMaxEntries = 1000

// undoEntry pairs a command with the time it was recorded.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

func (e *undoEntry) info() EntryInfo {
	return EntryInfo{
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// EntryInfo is a read-only view of one history entry, for undo menus
// and logs.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// History holds the undo and redo stacks for a document store. It is
// safe for concurrent use; the lock is dropped while a command runs so
// a slow re-parse never blocks readers of the counts.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory creates an empty history capped at maxEntries undo
// entries. Zero or negative selects the default of 1000.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs cmd against the store and records it on success.
func (h *History) Execute(cmd Command, st *document.Store) error {
	if err := cmd.Execute(st); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push records a command that has already been applied. Inside a group
// the command joins the pending group; otherwise it lands on the undo
// stack and invalidates the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})
	h.redoStack = nil
	h.trimLocked()
}

// trimLocked drops the oldest undo entries past the cap.
func (h *History) trimLocked() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverses the most recent entry. The entry is popped before the
// command runs, without holding the lock, and is put back if the
// command fails, so a failed undo can be retried.
func (h *History) Undo(st *document.Store) error {
	h.mu.Lock()
	n := len(h.undoStack)
	if n == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := h.undoStack[n-1]
	h.undoStack = h.undoStack[:n-1]
	h.mu.Unlock()

	if err := entry.command.Undo(st); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return nil
}

// Redo re-applies the most recent undone entry. Same pop-then-restore
// discipline as Undo.
func (h *History) Redo(st *document.Store) error {
	h.mu.Lock()
	n := len(h.redoStack)
	if n == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := h.redoStack[n-1]
	h.redoStack = h.redoStack[:n-1]
	h.mu.Unlock()

	if err := entry.command.Execute(st); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return nil
}

// CanUndo reports whether an undo entry is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo entry is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup collects subsequent pushes into one named undo unit.
// Nested calls are ignored; the outermost group wins.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup closes the open group and pushes its commands as a single
// CompoundCommand. An empty group records nothing.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false

	if len(h.groupCmds) == 0 {
		return
	}
	h.pushLocked(&CompoundCommand{
		Name:     h.groupName,
		Commands: h.groupCmds,
	})
	h.groupCmds = nil
}

// CancelGroup discards the open group. Commands already executed keep
// their effect on the document; they just become un-undoable.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupCmds = nil
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear drops both stacks and any open group.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo describes the undo stack, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo describes the redo stack, oldest first.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(stack []*undoEntry) []EntryInfo {
	out := make([]EntryInfo, len(stack))
	for i, entry := range stack {
		out[i] = entry.info()
	}
	return out
}

// PeekUndo describes the entry Undo would reverse next.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo describes the entry Redo would replay next.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the undo cap, evicting the oldest entries if
// the stack is already deeper. Zero or negative selects the default.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = defaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the undo cap.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
