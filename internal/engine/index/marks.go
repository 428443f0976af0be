package index

import (
	u "github.com/leisure-tools/utils"

	"github.com/dshills/blockdoc/internal/engine/fingertree"
)

// Mark is one named position. Delta is the byte distance from the previous
// mark (or from the document start for the first mark); absolute offsets
// are prefix sums, which is what lets an edit shift the whole tail of a
// document by touching a single leaf.
type Mark struct {
	Name  string
	Delta int
}

// MarkMeasure aggregates a run of marks: count, summed deltas (the width
// up to and including the run), and the set of names.
type MarkMeasure struct {
	Count int
	Width int
	Names u.Set[string]
}

type markMeasurer struct{}

func (markMeasurer) Identity() MarkMeasure { return MarkMeasure{} }

func (markMeasurer) Measure(mk Mark) MarkMeasure {
	return MarkMeasure{Count: 1, Width: mk.Delta, Names: u.NewSet(mk.Name)}
}

func (markMeasurer) Sum(a, b MarkMeasure) MarkMeasure {
	return MarkMeasure{
		Count: a.Count + b.Count,
		Width: a.Width + b.Width,
		Names: a.Names.Union(b.Names),
	}
}

type markTree = fingertree.FingerTree[markMeasurer, Mark, MarkMeasure]

// Location is a mark resolved to its absolute offset.
type Location struct {
	Name   string
	Offset int
}

// MarkIndex tracks named positions in offset order.
type MarkIndex struct {
	tree markTree
}

// NewMarkIndex returns an empty mark index.
func NewMarkIndex() *MarkIndex {
	return &MarkIndex{tree: fingertree.Empty[markMeasurer, Mark, MarkMeasure](markMeasurer{})}
}

// Clear removes all marks.
func (x *MarkIndex) Clear() {
	x.tree = fingertree.Empty[markMeasurer, Mark, MarkMeasure](markMeasurer{})
}

// Count returns the number of marks.
func (x *MarkIndex) Count() int {
	return x.tree.Measure().Count
}

// Has reports whether a mark named name exists.
func (x *MarkIndex) Has(name string) bool {
	return x.tree.Measure().Names.Has(name)
}

// Set places name at offset, moving it if it already exists. A mark set at
// another mark's offset lands after it.
func (x *MarkIndex) Set(name string, offset int) {
	x.Remove(name)
	left, right := x.tree.Split(func(m MarkMeasure) bool { return m.Width > offset })
	mk := Mark{Name: name, Delta: offset - left.Measure().Width}
	if !right.IsEmpty() {
		// Keep downstream absolutes unchanged.
		head := right.PeekFirst()
		head.Delta -= mk.Delta
		right = right.RemoveFirst().AddFirst(head)
	}
	x.tree = left.AddLast(mk).Concat(right)
}

// Remove deletes name, folding its delta into the following mark so
// downstream offsets are unchanged. Removing an absent name is a no-op.
func (x *MarkIndex) Remove(name string) {
	left, right := x.tree.Split(func(m MarkMeasure) bool { return m.Names.Has(name) })
	if right.IsEmpty() {
		return
	}
	mk := right.PeekFirst()
	right = right.RemoveFirst()
	if !right.IsEmpty() {
		head := right.PeekFirst()
		head.Delta += mk.Delta
		right = right.RemoveFirst().AddFirst(head)
	}
	x.tree = left.Concat(right)
}

// Offset returns the absolute offset of name.
func (x *MarkIndex) Offset(name string) (int, bool) {
	left, right := x.tree.Split(func(m MarkMeasure) bool { return m.Names.Has(name) })
	if right.IsEmpty() {
		return 0, false
	}
	return left.Measure().Width + right.PeekFirst().Delta, true
}

// Float shifts every mark strictly after start by the width change of
// replacing [start, end) with newWidth bytes. Only the first such mark's
// delta is touched; the rest ride the prefix sum. Marks at or before
// start stay put.
func (x *MarkIndex) Float(start, end, newWidth int) {
	shift := newWidth - (end - start)
	if shift == 0 {
		return
	}
	left, right := x.tree.Split(func(m MarkMeasure) bool { return m.Width > start })
	if right.IsEmpty() {
		return
	}
	head := right.PeekFirst()
	head.Delta += shift
	x.tree = left.Concat(right.RemoveFirst().AddFirst(head))
}

// All returns every mark with its absolute offset, in offset order.
func (x *MarkIndex) All() []Location {
	var out []Location
	off := 0
	x.tree.Each(func(mk Mark) bool {
		off += mk.Delta
		out = append(out, Location{Name: mk.Name, Offset: off})
		return true
	})
	return out
}

// Names returns the mark names in offset order.
func (x *MarkIndex) Names() []string {
	var out []string
	x.tree.Each(func(mk Mark) bool {
		out = append(out, mk.Name)
		return true
	})
	return out
}
