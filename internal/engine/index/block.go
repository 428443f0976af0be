package index

import (
	u "github.com/leisure-tools/utils"

	"github.com/dshills/blockdoc/internal/engine/fingertree"
)

// ID identifies a block within a document. The empty ID marks the edge of
// the linked list.
type ID string

// Entry is one block's leaf in the block index: its id and the byte width
// of its text.
type Entry struct {
	ID    ID
	Width int
}

// Measure aggregates a run of entries: how many, their total width, and
// the set of ids they cover.
type Measure struct {
	Count int
	Width int
	IDs   u.Set[ID]
}

type blockMeasurer struct{}

func (blockMeasurer) Identity() Measure { return Measure{} }

func (blockMeasurer) Measure(e Entry) Measure {
	return Measure{Count: 1, Width: e.Width, IDs: u.NewSet(e.ID)}
}

func (blockMeasurer) Sum(a, b Measure) Measure {
	return Measure{
		Count: a.Count + b.Count,
		Width: a.Width + b.Width,
		IDs:   a.IDs.Union(b.IDs),
	}
}

type entryTree = fingertree.FingerTree[blockMeasurer, Entry, Measure]

func emptyEntries() entryTree {
	return fingertree.Empty[blockMeasurer, Entry, Measure](blockMeasurer{})
}

// Linked describes a block the way the owning linked list sees it: the
// index entry plus the authoritative neighbor ids.
type Linked struct {
	Entry
	Prev ID
	Next ID
}

// Fetch resolves an id against the authoritative block table during index
// repair.
type Fetch func(id ID) (Linked, bool)

// BlockIndex keeps one leaf per block in document order. It is rebuilt
// from scratch only at document load; every edit patches it in place.
type BlockIndex struct {
	tree entryTree
}

// NewBlockIndex returns an empty index.
func NewBlockIndex() *BlockIndex {
	return &BlockIndex{tree: emptyEntries()}
}

// Load replaces the index content with entries, given in document order.
func (x *BlockIndex) Load(entries []Entry) {
	x.tree = fingertree.FromSlice[blockMeasurer, Entry, Measure](blockMeasurer{}, entries)
}

// Clear empties the index.
func (x *BlockIndex) Clear() {
	x.tree = emptyEntries()
}

// Width returns the total byte width of all indexed blocks.
func (x *BlockIndex) Width() int {
	return x.tree.Measure().Width
}

// Count returns the number of indexed blocks.
func (x *BlockIndex) Count() int {
	return x.tree.Measure().Count
}

// Has reports whether id is indexed.
func (x *BlockIndex) Has(id ID) bool {
	return x.tree.Measure().IDs.Has(id)
}

// OffsetOf returns the document offset at which id's block begins.
func (x *BlockIndex) OffsetOf(id ID) (int, bool) {
	left, right := x.splitAt(id)
	if right.IsEmpty() {
		return 0, false
	}
	return left.Measure().Width, true
}

// At locates the block containing the byte offset, returning its id and
// the offset within it. An offset at or past the end resolves to the last
// block and its width; an empty index reports ok false.
func (x *BlockIndex) At(offset int) (ID, int, bool) {
	if x.tree.IsEmpty() {
		return "", 0, false
	}
	left, right := x.tree.Split(func(m Measure) bool { return m.Width > offset })
	if right.IsEmpty() {
		last := left.PeekLast()
		return last.ID, last.Width, true
	}
	return right.PeekFirst().ID, offset - left.Measure().Width, true
}

// EachEntry visits entries in document order until fn returns false.
func (x *BlockIndex) EachEntry(fn func(Entry) bool) {
	x.tree.Each(fn)
}

// Entries returns the leaves in document order.
func (x *BlockIndex) Entries() []Entry {
	return x.tree.ToSlice()
}

// Index installs or refreshes the leaf for b. The fast path applies when
// b is already indexed between its own neighbors: the leaf is replaced in
// a single split. Anything else falls through to a bounded repair walk
// that re-anchors leaves against the linked list via fetch.
func (x *BlockIndex) Index(b Linked, fetch Fetch) {
	left, right := x.splitAt(b.ID)
	if !right.IsEmpty() {
		rest := right.RemoveFirst()
		prevOK := b.Prev == leftNeighbor(left)
		nextOK := b.Next == rightNeighbor(rest)
		if prevOK && nextOK {
			x.tree = left.AddLast(b.Entry).Concat(rest)
			return
		}
	}
	x.insertAndRepair(b, fetch)
}

// Unindex removes id's leaf; removing an absent id is a no-op.
func (x *BlockIndex) Unindex(id ID) {
	left, right := x.splitAt(id)
	if right.IsEmpty() {
		return
	}
	x.tree = left.Concat(right.RemoveFirst())
}

// splitAt partitions the tree so the right part begins with id's leaf, if
// present.
func (x *BlockIndex) splitAt(id ID) (entryTree, entryTree) {
	return x.tree.Split(func(m Measure) bool { return m.IDs.Has(id) })
}

// leftNeighbor is the id of the last leaf of a left split, "" when empty.
func leftNeighbor(left entryTree) ID {
	if left.IsEmpty() {
		return ""
	}
	return left.PeekLast().ID
}

// rightNeighbor is the id of the first leaf of a right split, "" when
// empty.
func rightNeighbor(right entryTree) ID {
	if right.IsEmpty() {
		return ""
	}
	return right.PeekFirst().ID
}

// insertAndRepair places b next to its neighbors and then walks outward
// along the linked list, re-anchoring every leaf whose index position
// disagrees with the list, until the neighborhood is consistent. The walk
// touches O(k) blocks for a k-block disturbance.
func (x *BlockIndex) insertAndRepair(b Linked, fetch Fetch) {
	x.Unindex(b.ID)
	x.insertNear(b)

	for id := b.Next; id != ""; {
		cur, ok := fetch(id)
		if !ok {
			break
		}
		if x.anchored(cur) {
			break
		}
		x.Unindex(cur.ID)
		x.insertNear(cur)
		id = cur.Next
	}
	for id := b.Prev; id != ""; {
		cur, ok := fetch(id)
		if !ok {
			break
		}
		if x.anchored(cur) {
			break
		}
		x.Unindex(cur.ID)
		x.insertNear(cur)
		id = cur.Prev
	}
}

// insertNear places b's leaf directly after its prev leaf; a block with no
// prev is the list head and goes first. Failing both, it lands before its
// next leaf, else at the tail.
func (x *BlockIndex) insertNear(b Linked) {
	if b.Prev == "" {
		x.tree = x.tree.AddFirst(b.Entry)
		return
	}
	left, right := x.splitAt(b.Prev)
	if !right.IsEmpty() {
		prevLeaf := right.PeekFirst()
		x.tree = left.AddLast(prevLeaf).AddLast(b.Entry).Concat(right.RemoveFirst())
		return
	}
	if b.Next != "" {
		left, right := x.splitAt(b.Next)
		if !right.IsEmpty() {
			x.tree = left.AddLast(b.Entry).Concat(right)
			return
		}
	}
	x.tree = x.tree.AddLast(b.Entry)
}

// anchored reports whether b's leaf sits between its linked-list neighbors.
func (x *BlockIndex) anchored(b Linked) bool {
	left, right := x.splitAt(b.ID)
	if right.IsEmpty() {
		return false
	}
	rest := right.RemoveFirst()
	return b.Prev == leftNeighbor(left) && b.Next == rightNeighbor(rest)
}
