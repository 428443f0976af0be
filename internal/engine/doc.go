// Package engine provides the facade over a block-structured document.
//
// The engine combines a document store, a grammar, and an event bus
// into one handle. There is no global document: every Engine owns its
// own state, and callers hold the handle explicitly.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - fingertree: persistent 2-3 finger tree with measure-directed search
//   - index: block offset index and floating mark index over the tree
//   - document: the block store with incremental re-parse on edit
//   - history: undo/redo stacks over the store's change records
//
// Grammars live outside the engine tree (internal/grammar and
// internal/grammar/lua) and plug in as plain parse functions.
//
// # Ownership
//
// An Engine is not thread-safe. It belongs to one goroutine at a time,
// and event handlers run synchronously on the goroutine that mutated
// the document.
//
// # Basic Usage
//
// Create an engine and edit through it:
//
//	e, err := engine.New(
//	    engine.WithGrammarName("notes"),
//	    engine.WithName("notes.md"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	e.Load("# Title\n\nbody\n")
//	ch, _ := e.Replace(8, 8, "intro ")
//	fmt.Println(ch.Summary())
//
// # Observing Edits
//
// Subscribe to the document's change feed:
//
//	e.OnChange(func(ch *engine.Change) {
//	    log.Printf("%s: %s", e.Name(), ch.Summary())
//	})
//
// Handlers receive every committed edit, including empty ones, in
// commit order.
//
// # Undo
//
// Edits made through Replace and UpdateText are recorded; Undo and
// Redo walk the record:
//
//	e.Replace(0, 0, "x")
//	e.Undo() // document back to its prior text
//	e.Redo()
//
// Undo restores text, not block identity. Grouping several edits into
// one undo unit goes through History:
//
//	e.History().BeginGroup("reformat")
//	// ... several edits ...
//	e.History().EndGroup()
//
// # Scripted Grammars
//
// A Lua script can replace the built-in grammars:
//
//	script, _ := os.ReadFile("grammar.lua")
//	e, err := engine.New(engine.WithLuaGrammar(string(script)))
//
// The script defines parse(text) returning an array of
// {type=..., text=...} tables whose texts concatenate back to the
// input.
package engine
