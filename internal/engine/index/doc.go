// Package index provides the two order-statistics indices a block document
// keeps over its content: a block index answering offset-for-id and
// id-for-offset queries, and a mark index of named positions that float
// across edits.
//
// Both are thin policy layers over the measured finger tree. The block
// index stores one leaf per block in document order and measures id
// membership plus byte width, so lookups in either direction are a single
// measured split. The mark index stores byte deltas between consecutive
// marks, so shifting the entire tail of a document after an edit adjusts
// exactly one leaf.
//
// The indices are derived data: the document's block table and linked list
// stay authoritative, and the block index repairs itself against them when
// an update arrives out of order.
package index
