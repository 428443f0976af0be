package fingertree

import "sync"

// tree is the spine representation. All methods are unexported, so the
// variant set is closed: emptyTree, singleTree, deepTree, and delayedTree
// are the only implementations. Elements are untyped; at the top level
// they are caller values, one level down they are *node, and so on.
type tree interface {
	isEmpty() bool
	meas(m measurer) any
	addFirst(m measurer, v any) tree
	addLast(m measurer, v any) tree
	removeFirst(m measurer) tree
	removeLast(m measurer) tree
	peekFirst() any
	peekLast() any
	each(fn func(v any) bool) bool
	eachReverse(fn func(v any) bool) bool
}

// node is an interior 2-3 node with the cached sum of its children's
// measures. The cache is computed at construction and never invalidated;
// nodes are immutable.
type node struct {
	m        any
	children []any
}

func newNode(m measurer, children ...any) *node {
	s := m.measure(children[0])
	for _, c := range children[1:] {
		s = m.sum(s, m.measure(c))
	}
	return &node{m: s, children: children}
}

// digit holds 1-4 elements at the edge of a spine level. Digits are
// immutable; every change builds a fresh slice, so subslices may share
// backing arrays freely.
type digit []any

func (d digit) meas(m measurer) any {
	s := m.measure(d[0])
	for _, v := range d[1:] {
		s = m.sum(s, m.measure(v))
	}
	return s
}

func (d digit) each(fn func(v any) bool) bool {
	for _, v := range d {
		if !eachElem(v, fn) {
			return false
		}
	}
	return true
}

func (d digit) eachReverse(fn func(v any) bool) bool {
	for i := len(d) - 1; i >= 0; i-- {
		if !eachElemReverse(d[i], fn) {
			return false
		}
	}
	return true
}

func digitPrepend(v any, d digit) digit {
	out := make(digit, 0, len(d)+1)
	out = append(out, v)
	return append(out, d...)
}

func digitAppend(d digit, v any) digit {
	out := make(digit, 0, len(d)+1)
	out = append(out, d...)
	return append(out, v)
}

// eachElem applies fn to the leaf values beneath v, unwrapping interior
// nodes. Caller values can never alias *node, which is unexported.
func eachElem(v any, fn func(v any) bool) bool {
	if n, ok := v.(*node); ok {
		for _, c := range n.children {
			if !eachElem(c, fn) {
				return false
			}
		}
		return true
	}
	return fn(v)
}

func eachElemReverse(v any, fn func(v any) bool) bool {
	if n, ok := v.(*node); ok {
		for i := len(n.children) - 1; i >= 0; i-- {
			if !eachElemReverse(n.children[i], fn) {
				return false
			}
		}
		return true
	}
	return fn(v)
}

var sharedEmpty tree = &emptyTree{}

// emptyTree is the zero-length spine.
type emptyTree struct{}

func (*emptyTree) isEmpty() bool                     { return true }
func (*emptyTree) meas(m measurer) any               { return m.identity() }
func (*emptyTree) addFirst(m measurer, v any) tree   { return &singleTree{v: v} }
func (*emptyTree) addLast(m measurer, v any) tree    { return &singleTree{v: v} }
func (e *emptyTree) removeFirst(measurer) tree       { return e }
func (e *emptyTree) removeLast(measurer) tree        { return e }
func (*emptyTree) peekFirst() any                    { return nil }
func (*emptyTree) peekLast() any                     { return nil }
func (*emptyTree) each(func(v any) bool) bool        { return true }
func (*emptyTree) eachReverse(func(v any) bool) bool { return true }

// singleTree holds exactly one element.
type singleTree struct {
	v any
}

func (*singleTree) isEmpty() bool { return false }

func (t *singleTree) meas(m measurer) any { return m.measure(t.v) }

func (t *singleTree) addFirst(m measurer, v any) tree {
	return newDeep(digit{v}, sharedEmpty, digit{t.v})
}

func (t *singleTree) addLast(m measurer, v any) tree {
	return newDeep(digit{t.v}, sharedEmpty, digit{v})
}

func (*singleTree) removeFirst(measurer) tree { return sharedEmpty }
func (*singleTree) removeLast(measurer) tree  { return sharedEmpty }
func (t *singleTree) peekFirst() any          { return t.v }
func (t *singleTree) peekLast() any           { return t.v }

func (t *singleTree) each(fn func(v any) bool) bool        { return eachElem(t.v, fn) }
func (t *singleTree) eachReverse(fn func(v any) bool) bool { return eachElemReverse(t.v, fn) }

// deepTree has digits at both ends and a middle subtree whose elements are
// interior nodes. Its measure is folded on demand from the digits and the
// middle; only interior nodes cache measures.
type deepTree struct {
	pr  digit
	mid tree
	sf  digit
}

func newDeep(pr digit, mid tree, sf digit) *deepTree {
	return &deepTree{pr: pr, mid: mid, sf: sf}
}

func (*deepTree) isEmpty() bool { return false }

func (t *deepTree) meas(m measurer) any {
	s := t.pr.meas(m)
	if !t.mid.isEmpty() {
		s = m.sum(s, t.mid.meas(nodeMeasurer{m}))
	}
	return m.sum(s, t.sf.meas(m))
}

func (t *deepTree) addFirst(m measurer, v any) tree {
	if len(t.pr) < 4 {
		return newDeep(digitPrepend(v, t.pr), t.mid, t.sf)
	}
	// Digit overflow: push the rightmost three as a node into the middle.
	// The push is delayed so bursts of adds stay O(1).
	overflow := newNode(m, t.pr[1], t.pr[2], t.pr[3])
	mid := t.mid
	nm := nodeMeasurer{m}
	return newDeep(
		digit{v, t.pr[0]},
		delay(func() tree { return mid.addFirst(nm, overflow) }),
		t.sf,
	)
}

func (t *deepTree) addLast(m measurer, v any) tree {
	if len(t.sf) < 4 {
		return newDeep(t.pr, t.mid, digitAppend(t.sf, v))
	}
	overflow := newNode(m, t.sf[0], t.sf[1], t.sf[2])
	mid := t.mid
	nm := nodeMeasurer{m}
	return newDeep(
		t.pr,
		delay(func() tree { return mid.addLast(nm, overflow) }),
		digit{t.sf[3], v},
	)
}

func (t *deepTree) removeFirst(m measurer) tree {
	if len(t.pr) > 1 {
		return newDeep(t.pr[1:], t.mid, t.sf)
	}
	if !t.mid.isEmpty() {
		// Promote the middle's first node to a fresh left digit.
		n := t.mid.peekFirst().(*node)
		mid := t.mid
		nm := nodeMeasurer{m}
		return newDeep(
			digit(n.children),
			delay(func() tree { return mid.removeFirst(nm) }),
			t.sf,
		)
	}
	return digitToTree(t.sf)
}

func (t *deepTree) removeLast(m measurer) tree {
	if len(t.sf) > 1 {
		return newDeep(t.pr, t.mid, t.sf[:len(t.sf)-1])
	}
	if !t.mid.isEmpty() {
		n := t.mid.peekLast().(*node)
		mid := t.mid
		nm := nodeMeasurer{m}
		return newDeep(
			t.pr,
			delay(func() tree { return mid.removeLast(nm) }),
			digit(n.children),
		)
	}
	return digitToTree(t.pr)
}

func (t *deepTree) peekFirst() any { return t.pr[0] }
func (t *deepTree) peekLast() any  { return t.sf[len(t.sf)-1] }

func (t *deepTree) each(fn func(v any) bool) bool {
	if !t.pr.each(fn) {
		return false
	}
	if !t.mid.each(fn) {
		return false
	}
	return t.sf.each(fn)
}

func (t *deepTree) eachReverse(fn func(v any) bool) bool {
	if !t.sf.eachReverse(fn) {
		return false
	}
	if !t.mid.eachReverse(fn) {
		return false
	}
	return t.pr.eachReverse(fn)
}

// digitToTree rebuilds a shallow spine from the 0-4 elements of a digit,
// used when the middle is exhausted.
func digitToTree(d digit) tree {
	switch len(d) {
	case 0:
		return sharedEmpty
	case 1:
		return &singleTree{v: d[0]}
	case 2:
		return newDeep(digit{d[0]}, sharedEmpty, digit{d[1]})
	case 3:
		return newDeep(digit{d[0], d[1]}, sharedEmpty, digit{d[2]})
	default:
		return newDeep(digit{d[0], d[1]}, sharedEmpty, digit{d[2], d[3]})
	}
}

// delayedTree defers building a middle spine until it is first needed.
// Forcing is memoized and race-free; every other method forces.
type delayedTree struct {
	once sync.Once
	fn   func() tree
	t    tree
}

func delay(fn func() tree) *delayedTree {
	return &delayedTree{fn: fn}
}

func (d *delayedTree) force() tree {
	d.once.Do(func() {
		d.t = d.fn()
		d.fn = nil
	})
	return d.t
}

// forced unwraps a delayed spine for type switches in concat and split.
func forced(t tree) tree {
	if d, ok := t.(*delayedTree); ok {
		return d.force()
	}
	return t
}

func (d *delayedTree) isEmpty() bool                   { return d.force().isEmpty() }
func (d *delayedTree) meas(m measurer) any             { return d.force().meas(m) }
func (d *delayedTree) addFirst(m measurer, v any) tree { return d.force().addFirst(m, v) }
func (d *delayedTree) addLast(m measurer, v any) tree  { return d.force().addLast(m, v) }
func (d *delayedTree) removeFirst(m measurer) tree     { return d.force().removeFirst(m) }
func (d *delayedTree) removeLast(m measurer) tree      { return d.force().removeLast(m) }
func (d *delayedTree) peekFirst() any                  { return d.force().peekFirst() }
func (d *delayedTree) peekLast() any                   { return d.force().peekLast() }
func (d *delayedTree) each(fn func(v any) bool) bool   { return d.force().each(fn) }
func (d *delayedTree) eachReverse(fn func(v any) bool) bool {
	return d.force().eachReverse(fn)
}
