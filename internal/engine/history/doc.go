// Package history provides undo/redo over a document store.
//
// Edits are captured as commands that know how to reverse themselves,
// and the History type keeps the undo and redo stacks. Key concepts:
//
// # Edits
//
// An Edit is one span replacement with before/after state: the offset,
// the displaced text, and the inserted text. Inverting an edit swaps
// the two texts.
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo
// methods. Built-in commands include:
//   - EditCommand: Replay edits recorded from committed changes
//   - ReplaceCommand: Replace a byte range, capturing what it displaced
//   - CompoundCommand: Group multiple commands as one undo unit
//
// Edits that already happened elsewhere are recorded with Push;
// FromChange and FromChanges build replayable commands straight from
// the change records the store returns:
//
//	ch, _ := store.Replace(2, 5, "new")
//	h.Push(history.FromChange(ch))
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	// Execute commands
//	h.Execute(cmd, store)
//
//	// Undo/redo
//	h.Undo(store)
//	h.Redo(store)
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("Find and Replace")
//	// ... multiple edits ...
//	h.EndGroup()
//
// Now all edits undo together.
//
// # Block Identity
//
// Undo restores text, not block identity. Reversing an edit re-parses
// the restored span like any other edit, so a block removed and then
// restored by undo comes back under a fresh id.
package history
