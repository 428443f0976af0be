package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/blockdoc/internal/engine/document"
)

// Command represents a composable edit action that can be executed and
// undone against a document store.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(st *document.Store) error

	// Undo reverses the command and returns an error if it fails.
	Undo(st *document.Store) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand replays recorded edits. It is the undo unit behind span
// edits that have already been applied: pushing one onto a History
// records the edits without running them again, and Execute exists for
// redo.
type EditCommand struct {
	Edits EditList
}

// NewEditCommand creates a command from recorded edits.
func NewEditCommand(edits ...Edit) *EditCommand {
	return &EditCommand{Edits: edits}
}

// FromChange creates a command that replays one committed change.
func FromChange(ch *document.Change) *EditCommand {
	return &EditCommand{Edits: EditList{
		NewEdit(ch.Start, ch.OldText, ch.Text),
	}}
}

// FromChanges creates a command that replays a run of committed
// changes, such as the hunks of one text update.
func FromChanges(chs []*document.Change) *EditCommand {
	edits := make(EditList, len(chs))
	for i, ch := range chs {
		edits[i] = NewEdit(ch.Start, ch.OldText, ch.Text)
	}
	return &EditCommand{Edits: edits}
}

// IsNoop reports whether replaying the command would change nothing.
func (c *EditCommand) IsNoop() bool {
	return c.Edits.IsNoop()
}

// Execute replays the edits in order.
func (c *EditCommand) Execute(st *document.Store) error {
	for _, e := range c.Edits {
		if err := e.apply(st); err != nil {
			return fmt.Errorf("replay edit at offset %d: %w", e.Start, err)
		}
	}
	return nil
}

// Undo applies the reversing edits in reverse order.
func (c *EditCommand) Undo(st *document.Store) error {
	for _, e := range c.Edits.Invert() {
		if err := e.apply(st); err != nil {
			return fmt.Errorf("undo edit at offset %d: %w", e.Start, err)
		}
	}
	return nil
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	if len(c.Edits) == 1 {
		return describeEdit(c.Edits[0])
	}
	return fmt.Sprintf("%d edits", len(c.Edits))
}

// describeEdit names an edit for undo menus and logs.
func describeEdit(e Edit) string {
	switch {
	case e.IsNoop():
		return "No change"
	case e.IsInsert():
		switch e.NewText {
		case "\n":
			return "Insert newline"
		case "\t":
			return "Insert tab"
		}
		if utf8.RuneCountInString(e.NewText) <= 20 {
			return fmt.Sprintf("Insert %q", e.NewText)
		}
		return fmt.Sprintf("Insert %d characters", utf8.RuneCountInString(e.NewText))
	case e.IsDelete():
		return fmt.Sprintf("Delete %d characters", utf8.RuneCountInString(e.OldText))
	default:
		return fmt.Sprintf("Replace %d with %d characters",
			utf8.RuneCountInString(e.OldText), utf8.RuneCountInString(e.NewText))
	}
}

// ReplaceCommand substitutes text for a byte range when executed,
// capturing the displaced text so the edit can be undone.
type ReplaceCommand struct {
	Start int
	End   int
	Text  string

	edits EditList
}

// NewReplaceCommand creates a new replace command.
func NewReplaceCommand(start, end int, text string) *ReplaceCommand {
	return &ReplaceCommand{Start: start, End: end, Text: text}
}

// Execute replaces the range, recording what it displaced.
func (c *ReplaceCommand) Execute(st *document.Store) error {
	c.edits = nil

	old := st.TextRange(c.Start, c.End)
	if _, err := st.Replace(c.Start, c.End, c.Text); err != nil {
		return fmt.Errorf("replace at range [%d,%d): %w", c.Start, c.End, err)
	}

	c.edits = EditList{NewEdit(c.Start, old, c.Text)}
	return nil
}

// Undo restores the displaced text.
func (c *ReplaceCommand) Undo(st *document.Store) error {
	for _, e := range c.edits.Invert() {
		if err := e.apply(st); err != nil {
			return fmt.Errorf("undo replace: %w", err)
		}
	}
	return nil
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	if len(c.edits) == 1 {
		return describeEdit(c.edits[0])
	}
	oldLen := c.End - c.Start
	newLen := utf8.RuneCountInString(c.Text)
	if oldLen == 0 {
		return fmt.Sprintf("Insert %d characters", newLen)
	}
	if newLen == 0 {
		return fmt.Sprintf("Delete %d bytes", oldLen)
	}
	return fmt.Sprintf("Replace %d bytes with %d characters", oldLen, newLen)
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(st *document.Store) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(st); err != nil {
			// On error, try to undo what we've done
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(st)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(st *document.Store) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(st); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
