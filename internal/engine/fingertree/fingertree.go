package fingertree

// FingerTree is an immutable measured sequence of V with measure type M.
// The measurer travels with the tree as a type parameter so distinct
// measures are distinct types; a zero-size measurer struct costs nothing.
// The zero FingerTree value behaves as an empty tree provided the zero MS
// is a usable measurer; prefer Empty or FromSlice.
//
// Trees share structure freely: every operation returns a new tree and the
// receiver is never modified, so snapshots are free and old values remain
// valid. Concurrent readers are safe; the lazy spine cells memoize through
// sync.Once.
type FingerTree[MS Measurer[V, M], V, M any] struct {
	ms   MS
	root tree
}

// Empty returns the empty tree for a measurer.
func Empty[MS Measurer[V, M], V, M any](ms MS) FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: ms, root: sharedEmpty}
}

// FromSlice builds a tree from values in order, O(n).
func FromSlice[MS Measurer[V, M], V, M any](ms MS, values []V) FingerTree[MS, V, M] {
	t := Empty[MS, V, M](ms)
	m := t.m()
	root := t.root
	for _, v := range values {
		root = root.addLast(m, v)
	}
	t.root = root
	return t
}

func (t FingerTree[MS, V, M]) m() measurer {
	return adapted[MS, V, M]{ms: t.ms}
}

func (t FingerTree[MS, V, M]) node() tree {
	if t.root == nil {
		return sharedEmpty
	}
	return t.root
}

// IsEmpty reports whether the tree has no elements.
func (t FingerTree[MS, V, M]) IsEmpty() bool {
	return t.node().isEmpty()
}

// Measure returns the monoid sum over all elements, Identity when empty.
func (t FingerTree[MS, V, M]) Measure() M {
	return t.node().meas(t.m()).(M)
}

// AddFirst prepends a value.
func (t FingerTree[MS, V, M]) AddFirst(v V) FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: t.ms, root: t.node().addFirst(t.m(), v)}
}

// AddLast appends a value.
func (t FingerTree[MS, V, M]) AddLast(v V) FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: t.ms, root: t.node().addLast(t.m(), v)}
}

// RemoveFirst drops the first element; on an empty tree it returns the
// empty tree.
func (t FingerTree[MS, V, M]) RemoveFirst() FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: t.ms, root: t.node().removeFirst(t.m())}
}

// RemoveLast drops the last element; on an empty tree it returns the
// empty tree.
func (t FingerTree[MS, V, M]) RemoveLast() FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: t.ms, root: t.node().removeLast(t.m())}
}

// PeekFirst returns the first element, or the zero V when empty; callers
// gate on IsEmpty.
func (t FingerTree[MS, V, M]) PeekFirst() V {
	if v := t.node().peekFirst(); v != nil {
		return v.(V)
	}
	var zero V
	return zero
}

// PeekLast returns the last element, or the zero V when empty.
func (t FingerTree[MS, V, M]) PeekLast() V {
	if v := t.node().peekLast(); v != nil {
		return v.(V)
	}
	var zero V
	return zero
}

// Concat appends o after t. Both inputs remain valid.
func (t FingerTree[MS, V, M]) Concat(o FingerTree[MS, V, M]) FingerTree[MS, V, M] {
	return FingerTree[MS, V, M]{ms: t.ms, root: concatTrees(t.m(), t.node(), o.node())}
}

// Split partitions the tree around the first element at which the running
// prefix measure satisfies pred: the right tree begins with that element.
// If pred never becomes true the left tree is the whole sequence. pred
// must be monotone over prefix measures; a non-monotonic predicate yields
// some valid partition with no further guarantee.
func (t FingerTree[MS, V, M]) Split(pred func(M) bool) (FingerTree[MS, V, M], FingerTree[MS, V, M]) {
	l, r := splitPair(t.m(), func(a any) bool { return pred(a.(M)) }, t.node())
	return FingerTree[MS, V, M]{ms: t.ms, root: l}, FingerTree[MS, V, M]{ms: t.ms, root: r}
}
