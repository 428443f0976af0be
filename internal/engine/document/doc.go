// Package document maintains a block-structured text document under
// incremental edits.
//
// A Store holds the authoritative state: a table of blocks, a doubly
// linked list recording their order, a block index for offset queries, a
// mark index for named floating positions, and the parser that decides
// where block boundaries fall. The parser is external and pluggable; the
// store never interprets text itself.
//
// Replace is the core operation. Rather than re-parsing the whole
// document, it re-parses a window of blocks around the edit, widening the
// window until the parse stops disturbing the boundary blocks, then diffs
// the window's old blocks against the parse, reuses the ids of blocks
// that survive, and patches the indices. The result is a change record
// naming exactly the blocks that were added, updated, and removed, which
// is also published on the store's event bus.
//
// Key behaviors:
//   - Block ids are stable: an edit inside one block updates that block
//     in place, and untouched neighbors keep their ids
//   - Marks float: positions after an edit shift with the text
//   - Writes are transactional: block and index mutation is only legal
//     inside a change scope, and violations panic
//   - A parser error aborts the edit with nothing committed
//
// A Store is not safe for concurrent use. It is single-threaded by
// design, like the rest of the edit pipeline: one logical writer at a
// time, with callers owning any serialization. Event delivery is
// synchronous and happens as the outermost change scope closes.
package document
