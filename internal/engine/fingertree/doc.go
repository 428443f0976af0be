// Package fingertree provides an immutable 2-3 finger tree with monoid
// measures, the order-statistics backbone for the block and mark indices.
//
// A finger tree keeps 1-4 element digits at both ends of each spine level
// and a middle subtree of 2-3 nodes, giving amortized O(1) access and
// update at either end and O(log n) concatenation and measured split.
// Every node caches the monoid sum of the measures beneath it, so Split
// can steer by any monotonic predicate over prefix measures (offsets,
// counts, id membership) without touching the elements themselves.
//
// Key properties:
//   - Immutable: operations return new trees; originals are never modified
//   - Amortized O(1) AddFirst/AddLast/RemoveFirst/RemoveLast
//   - O(log n) Split on a monotonic measure predicate
//   - O(log min(m,n)) Concat
//   - Middle spines are built lazily through memoized-once cells, so deep
//     reconstruction is deferred until a traversal or split needs it
//
// Basic usage:
//
//	t := fingertree.FromSlice[widthMeasurer, Span, Width](widthMeasurer{}, spans)
//	left, right := t.Split(func(w Width) bool { return w.Bytes > offset })
//	first := right.PeekFirst()
//
// The element and measure types are fixed per tree by the Measurer type
// parameter; the internal spine stores elements untyped because each level
// of a finger tree holds nodes of the level below, a shape Go generics
// cannot express directly. The typed API converts at the boundary.
package fingertree
