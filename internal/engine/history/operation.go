package history

import (
	"time"

	"github.com/dshills/blockdoc/internal/engine/document"
)

// Edit records one span replacement with enough state to reverse it.
// Offsets are in the coordinates of the document the edit applies to,
// so a sequence of edits replays in order and reverses in reverse
// order.
type Edit struct {
	Start   int    // byte offset of the replaced span
	OldText string // text the edit displaced
	NewText string // text the edit inserted

	Timestamp time.Time // when the edit was recorded
}

// NewEdit creates an edit record.
func NewEdit(start int, oldText, newText string) Edit {
	return Edit{
		Start:     start,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// End returns the offset just past the replaced span.
func (e Edit) End() int {
	return e.Start + len(e.OldText)
}

// NewEnd returns the offset just past the inserted text.
func (e Edit) NewEnd() int {
	return e.Start + len(e.NewText)
}

// Delta returns the change in document length.
func (e Edit) Delta() int {
	return len(e.NewText) - len(e.OldText)
}

// IsInsert reports whether the edit purely inserts text.
func (e Edit) IsInsert() bool {
	return len(e.OldText) == 0 && len(e.NewText) > 0
}

// IsDelete reports whether the edit purely removes text.
func (e Edit) IsDelete() bool {
	return len(e.OldText) > 0 && len(e.NewText) == 0
}

// IsReplace reports whether the edit swaps one span for another.
func (e Edit) IsReplace() bool {
	return len(e.OldText) > 0 && len(e.NewText) > 0 && e.OldText != e.NewText
}

// IsNoop reports whether the edit leaves the text unchanged.
func (e Edit) IsNoop() bool {
	return e.OldText == e.NewText
}

// Invert returns the edit that reverses this one.
func (e Edit) Invert() Edit {
	return Edit{
		Start:     e.Start,
		OldText:   e.NewText,
		NewText:   e.OldText,
		Timestamp: time.Now(),
	}
}

// apply replays the edit against a store.
func (e Edit) apply(st *document.Store) error {
	_, err := st.Replace(e.Start, e.End(), e.NewText)
	return err
}

// EditList is a sequence of edits applied in order.
type EditList []Edit

// Invert returns the reversing edits in reverse order.
func (el EditList) Invert() EditList {
	out := make(EditList, len(el))
	for i, e := range el {
		out[len(el)-1-i] = e.Invert()
	}
	return out
}

// Delta returns the total change in document length.
func (el EditList) Delta() int {
	total := 0
	for _, e := range el {
		total += e.Delta()
	}
	return total
}

// IsNoop reports whether every edit leaves the text unchanged.
func (el EditList) IsNoop() bool {
	for _, e := range el {
		if !e.IsNoop() {
			return false
		}
	}
	return true
}
