package fingertree

import (
	"fmt"
	"iter"
	"strings"
)

// Each calls fn on every element in order, stopping early when fn returns
// false. Traversal is structural, O(n) over the whole tree.
func (t FingerTree[MS, V, M]) Each(fn func(v V) bool) {
	t.node().each(func(v any) bool { return fn(v.(V)) })
}

// EachReverse calls fn on every element in reverse order, stopping early
// when fn returns false.
func (t FingerTree[MS, V, M]) EachReverse(fn func(v V) bool) {
	t.node().eachReverse(func(v any) bool { return fn(v.(V)) })
}

// Seq returns a forward range-over-func iterator.
func (t FingerTree[MS, V, M]) Seq() iter.Seq[V] {
	return func(yield func(V) bool) {
		t.Each(yield)
	}
}

// SeqReverse returns a backward range-over-func iterator.
func (t FingerTree[MS, V, M]) SeqReverse() iter.Seq[V] {
	return func(yield func(V) bool) {
		t.EachReverse(yield)
	}
}

// ToSlice copies the elements into a fresh slice in order.
func (t FingerTree[MS, V, M]) ToSlice() []V {
	var out []V
	t.Each(func(v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// String renders the elements for diagnostics.
func (t FingerTree[MS, V, M]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	t.Each(func(v V) bool {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%v", v)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
