package engine

import (
	"fmt"

	"github.com/dshills/blockdoc/internal/engine/document"
	"github.com/dshills/blockdoc/internal/engine/history"
	"github.com/dshills/blockdoc/internal/event"
	lua "github.com/dshills/blockdoc/internal/grammar/lua"
)

// Re-export the document types for convenience.
type (
	// ID identifies a block.
	ID = document.ID

	// Block is one parsed block of the document.
	Block = document.Block

	// Change describes one committed edit.
	Change = document.Change

	// Location is a named mark position.
	Location = document.Location

	// ParseFunc splits text into blocks.
	ParseFunc = document.ParseFunc

	// ChangeEvent is published after every edit.
	ChangeEvent = document.ChangeEvent

	// LoadEvent is published after a full load.
	LoadEvent = document.LoadEvent
)

// Re-export the event topics.
const (
	TopicChange = document.TopicChange
	TopicLoad   = document.TopicLoad
)

// Engine is the facade over one parsed document: a store, the grammar
// that parses it, and the bus its events publish on. It replaces any
// notion of a global document with an explicit handle.
//
// Like the store it wraps, an Engine belongs to one goroutine at a
// time. Event handlers run synchronously on the mutating goroutine.
type Engine struct {
	store   *document.Store
	history *history.History
	bus     *event.Bus
	lua     *lua.Grammar
	subs    []*event.Subscription

	// configuration captured by options
	name       string
	content    string
	maxUndo    int
	makeParser func() (document.ParseFunc, *lua.Grammar, error)
}

// New creates an Engine. Without a grammar option the full grammar is
// used. WithContent loads the initial text before New returns.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	var parser document.ParseFunc
	if e.makeParser != nil {
		var err error
		parser, e.lua, err = e.makeParser()
		if err != nil {
			return nil, err
		}
	} else {
		parser = defaultGrammar
	}

	if e.bus == nil {
		e.bus = event.NewBus()
	}
	e.store = document.NewStore(
		document.WithParser(parser),
		document.WithBus(e.bus),
		document.WithName(e.name),
	)
	e.history = history.NewHistory(e.maxUndo)

	if e.content != "" {
		if err := e.store.Load(e.content); err != nil {
			e.closeLua()
			return nil, err
		}
	}
	return e, nil
}

// Name returns the document name.
func (e *Engine) Name() string { return e.store.Name() }

// Bus returns the event bus.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Load parses text as the entire document, replacing all state. A load
// is not an edit, so undo history is discarded.
func (e *Engine) Load(text string) error {
	if err := e.store.Load(text); err != nil {
		return err
	}
	e.history.Clear()
	return nil
}

// Replace substitutes text for the byte range [start, end). The edit
// is recorded for undo.
func (e *Engine) Replace(start, end int, text string) (*Change, error) {
	ch, err := e.store.Replace(start, end, text)
	if err != nil {
		return nil, err
	}
	e.record(history.FromChange(ch))
	return ch, nil
}

// UpdateText diffs the document against text and applies the minimal
// edits. The hunks are recorded for undo as one unit; hunks applied
// before a failure are still recorded so they can be reversed.
func (e *Engine) UpdateText(text string) ([]*Change, error) {
	chs, err := e.store.UpdateText(text)
	if len(chs) > 0 {
		e.record(history.FromChanges(chs))
	}
	return chs, err
}

// record pushes a command unless replaying it would change nothing.
func (e *Engine) record(cmd *history.EditCommand) {
	if cmd.IsNoop() {
		return
	}
	e.history.Push(cmd)
}

// Undo reverses the most recent recorded edit. Undo restores text, not
// block identity: blocks the edit removed come back under fresh ids.
func (e *Engine) Undo() error { return e.history.Undo(e.store) }

// Redo reapplies the most recently undone edit.
func (e *Engine) Redo() error { return e.history.Redo(e.store) }

// CanUndo reports whether an edit is available to undo.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether an undone edit is available to redo.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// History returns the undo/redo stack, for grouping edits into one
// undo unit and inspecting what undo would reverse.
func (e *Engine) History() *history.History { return e.history }

// Text returns the full document text.
func (e *Engine) Text() string { return e.store.Text() }

// TextRange returns the text of the byte range [start, end).
func (e *Engine) TextRange(start, end int) string {
	return e.store.TextRange(start, end)
}

// Length returns the document length in bytes.
func (e *Engine) Length() int { return e.store.Length() }

// Count returns the number of blocks.
func (e *Engine) Count() int { return e.store.Count() }

// First returns the first block, or nil when the document is empty.
func (e *Engine) First() *Block { return e.store.First() }

// Get returns a block by id.
func (e *Engine) Get(id ID) (*Block, bool) { return e.store.Get(id) }

// Blocks returns all blocks in document order.
func (e *Engine) Blocks() []*Block { return e.store.Blocks() }

// Each walks blocks in document order until fn returns false.
func (e *Engine) Each(fn func(*Block) bool) { e.store.Each(fn) }

// BlockAt returns the block covering the byte offset and the offset's
// position within it.
func (e *Engine) BlockAt(offset int) (*Block, int, bool) {
	return e.store.BlockAt(offset)
}

// OffsetOf returns a block's starting byte offset.
func (e *Engine) OffsetOf(id ID) (int, bool) { return e.store.OffsetOf(id) }

// SetMark places a named mark at a byte offset.
func (e *Engine) SetMark(name string, offset int) error {
	return e.store.SetMark(name, offset)
}

// RemoveMark deletes a mark, reporting whether it existed.
func (e *Engine) RemoveMark(name string) bool { return e.store.RemoveMark(name) }

// MarkOffset returns a mark's current byte offset.
func (e *Engine) MarkOffset(name string) (int, bool) {
	return e.store.MarkOffset(name)
}

// MarkBlock returns the block a mark currently sits in.
func (e *Engine) MarkBlock(name string) (*Block, int, bool) {
	return e.store.MarkBlock(name)
}

// Marks returns every mark in document order.
func (e *Engine) Marks() []Location { return e.store.Marks() }

// Fingerprint returns a hash of the document text.
func (e *Engine) Fingerprint() uint64 { return e.store.Fingerprint() }

// Check verifies internal consistency.
func (e *Engine) Check() error { return e.store.Check() }

// OnChange subscribes fn to edits on this document. Cancel the returned
// subscription to stop, or let Close do it.
func (e *Engine) OnChange(fn func(*Change)) (*event.Subscription, error) {
	return e.subscribe(TopicChange, func(ev any) {
		if ce, ok := ev.(ChangeEvent); ok {
			fn(ce.Change)
		}
	})
}

// OnLoad subscribes fn to full loads of this document.
func (e *Engine) OnLoad(fn func(LoadEvent)) (*event.Subscription, error) {
	return e.subscribe(TopicLoad, func(ev any) {
		if le, ok := ev.(LoadEvent); ok {
			fn(le)
		}
	})
}

func (e *Engine) subscribe(topic event.Topic, fn event.HandlerFunc) (*event.Subscription, error) {
	sub, err := e.bus.Subscribe(topic, fn)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.subs = append(e.subs, sub)
	return sub, nil
}

// Close cancels the engine's subscriptions and releases the grammar.
// The document itself needs no teardown.
func (e *Engine) Close() error {
	for _, sub := range e.subs {
		sub.Cancel()
	}
	e.subs = nil
	return e.closeLua()
}

func (e *Engine) closeLua() error {
	if e.lua == nil {
		return nil
	}
	return e.lua.Close()
}
