package fingertree

import (
	"fmt"
	"slices"
	"testing"
	"testing/quick"
)

// chunk and width form the test measure: element count plus byte width,
// the same shape the block index uses.
type chunk string

type width struct {
	Count int
	Bytes int
}

type widthMeasurer struct{}

func (widthMeasurer) Identity() width { return width{} }

func (widthMeasurer) Measure(c chunk) width { return width{Count: 1, Bytes: len(c)} }

func (widthMeasurer) Sum(a, b width) width {
	return width{Count: a.Count + b.Count, Bytes: a.Bytes + b.Bytes}
}

type chunkTree = FingerTree[widthMeasurer, chunk, width]

func emptyChunks() chunkTree {
	return Empty[widthMeasurer, chunk, width](widthMeasurer{})
}

func fromStrings(ss ...string) chunkTree {
	cs := make([]chunk, len(ss))
	for i, s := range ss {
		cs[i] = chunk(s)
	}
	return FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)
}

// numbered returns n distinct chunks c0..c(n-1).
func numbered(n int) []chunk {
	cs := make([]chunk, n)
	for i := range cs {
		cs[i] = chunk(fmt.Sprintf("c%d", i))
	}
	return cs
}

func TestEmpty(t *testing.T) {
	e := emptyChunks()
	if !e.IsEmpty() {
		t.Error("Empty tree should be empty")
	}
	if got := e.Measure(); got != (width{}) {
		t.Errorf("Measure() = %+v, want zero", got)
	}
	if got := e.PeekFirst(); got != "" {
		t.Errorf("PeekFirst() = %q, want zero value", got)
	}
	if got := e.PeekLast(); got != "" {
		t.Errorf("PeekLast() = %q, want zero value", got)
	}
	if got := e.RemoveFirst(); !got.IsEmpty() {
		t.Error("RemoveFirst on empty should stay empty")
	}
	if got := e.RemoveLast(); !got.IsEmpty() {
		t.Error("RemoveLast on empty should stay empty")
	}
	if got := e.ToSlice(); len(got) != 0 {
		t.Errorf("ToSlice() = %v, want none", got)
	}
}

func TestZeroValue(t *testing.T) {
	var zero chunkTree
	if !zero.IsEmpty() {
		t.Error("zero FingerTree should behave as empty")
	}
	one := zero.AddLast("a")
	if got := one.ToSlice(); !slices.Equal(got, []chunk{"a"}) {
		t.Errorf("ToSlice() = %v, want [a]", got)
	}
}

func TestFromSlice(t *testing.T) {
	// Sizes cross every digit and spine boundary.
	sizes := []int{0, 1, 2, 3, 4, 5, 8, 9, 13, 21, 40, 100}

	for _, n := range sizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			want := numbered(n)
			tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, want)
			if got := tr.ToSlice(); !slices.Equal(got, want) {
				t.Errorf("ToSlice() = %v, want %v", got, want)
			}
			wantBytes := 0
			for _, c := range want {
				wantBytes += len(c)
			}
			m := tr.Measure()
			if m.Count != n || m.Bytes != wantBytes {
				t.Errorf("Measure() = %+v, want count %d bytes %d", m, n, wantBytes)
			}
		})
	}
}

func TestAddFirst(t *testing.T) {
	want := numbered(40)
	tr := emptyChunks()
	for i := len(want) - 1; i >= 0; i-- {
		tr = tr.AddFirst(want[i])
	}
	if got := tr.ToSlice(); !slices.Equal(got, want) {
		t.Errorf("ToSlice() = %v, want %v", got, want)
	}
	if got := tr.PeekFirst(); got != want[0] {
		t.Errorf("PeekFirst() = %q, want %q", got, want[0])
	}
	if got := tr.PeekLast(); got != want[len(want)-1] {
		t.Errorf("PeekLast() = %q, want %q", got, want[len(want)-1])
	}
}

func TestAddLast(t *testing.T) {
	want := numbered(40)
	tr := emptyChunks()
	for _, c := range want {
		tr = tr.AddLast(c)
	}
	if got := tr.ToSlice(); !slices.Equal(got, want) {
		t.Errorf("ToSlice() = %v, want %v", got, want)
	}
}

func TestRemoveFirst(t *testing.T) {
	model := numbered(40)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, model)

	for len(model) > 0 {
		if got := tr.PeekFirst(); got != model[0] {
			t.Fatalf("PeekFirst() = %q, want %q", got, model[0])
		}
		tr = tr.RemoveFirst()
		model = model[1:]
		if got := tr.ToSlice(); !slices.Equal(got, model) {
			t.Fatalf("after RemoveFirst: %v, want %v", got, model)
		}
	}
	if !tr.IsEmpty() {
		t.Error("tree should be empty after draining")
	}
}

func TestRemoveLast(t *testing.T) {
	model := numbered(40)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, model)

	for len(model) > 0 {
		if got := tr.PeekLast(); got != model[len(model)-1] {
			t.Fatalf("PeekLast() = %q, want %q", got, model[len(model)-1])
		}
		tr = tr.RemoveLast()
		model = model[:len(model)-1]
		if got := tr.ToSlice(); !slices.Equal(got, model) {
			t.Fatalf("after RemoveLast: %v, want %v", got, model)
		}
	}
}

func TestPersistence(t *testing.T) {
	// Keep every intermediate tree while building, then tear the final one
	// apart both ways. No snapshot may change.
	all := numbered(60)
	trees := []chunkTree{emptyChunks()}
	for _, c := range all {
		trees = append(trees, trees[len(trees)-1].AddLast(c))
	}

	final := trees[len(trees)-1]
	for !final.IsEmpty() {
		final = final.RemoveFirst()
	}
	reversed := trees[len(trees)-1]
	for !reversed.IsEmpty() {
		reversed = reversed.RemoveLast()
	}

	for i, tr := range trees {
		if got := tr.ToSlice(); !slices.Equal(got, all[:i]) {
			t.Fatalf("snapshot %d changed: %v, want %v", i, got, all[:i])
		}
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name  string
		left  int
		right int
	}{
		{"both empty", 0, 0},
		{"left empty", 0, 5},
		{"right empty", 5, 0},
		{"singles", 1, 1},
		{"small", 3, 4},
		{"digit boundary", 4, 4},
		{"deep", 20, 30},
		{"large", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := numbered(tt.left + tt.right)
			l := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, all[:tt.left])
			r := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, all[tt.left:])
			got := l.Concat(r)
			if !slices.Equal(got.ToSlice(), all) {
				t.Errorf("Concat = %v, want %v", got.ToSlice(), all)
			}
			if m := got.Measure(); m.Count != len(all) {
				t.Errorf("Measure().Count = %d, want %d", m.Count, len(all))
			}
			// Inputs are unchanged.
			if !slices.Equal(l.ToSlice(), all[:tt.left]) {
				t.Error("left input modified by Concat")
			}
			if !slices.Equal(r.ToSlice(), all[tt.left:]) {
				t.Error("right input modified by Concat")
			}
		})
	}
}

func TestSplitByBytes(t *testing.T) {
	cs := numbered(25)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)
	total := tr.Measure().Bytes

	for target := -1; target <= total+3; target++ {
		l, r := tr.Split(func(w width) bool { return w.Bytes > target })

		// Round trip.
		joined := l.Concat(r)
		if !slices.Equal(joined.ToSlice(), cs) {
			t.Fatalf("target %d: concat of split parts = %v, want %v", target, joined.ToSlice(), cs)
		}

		// Left is the maximal prefix with Bytes <= target.
		if lb := l.Measure().Bytes; lb > target && target >= 0 {
			t.Fatalf("target %d: left bytes %d exceeds target", target, lb)
		}
		if !r.IsEmpty() {
			// The flip element pushes the prefix past the target.
			crossed := l.Measure().Bytes + len(r.PeekFirst())
			if crossed <= target {
				t.Fatalf("target %d: first right element does not cross it (prefix %d)", target, crossed)
			}
		} else if total > target {
			t.Fatalf("target %d: right empty but total %d crosses it", target, total)
		}
	}
}

func TestSplitByCount(t *testing.T) {
	cs := numbered(30)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)

	for k := 0; k <= len(cs); k++ {
		l, r := tr.Split(func(w width) bool { return w.Count > k })
		if got := l.Measure().Count; got != min(k, len(cs)) {
			t.Fatalf("k=%d: left count %d, want %d", k, got, min(k, len(cs)))
		}
		if !r.IsEmpty() {
			if got := r.PeekFirst(); got != cs[k] {
				t.Fatalf("k=%d: right starts with %q, want %q", k, got, cs[k])
			}
		}
	}
}

func TestSplitEdges(t *testing.T) {
	e := emptyChunks()
	l, r := e.Split(func(w width) bool { return true })
	if !l.IsEmpty() || !r.IsEmpty() {
		t.Error("split of empty tree should be two empty trees")
	}

	tr := fromStrings("a", "b", "c")
	l, r = tr.Split(func(w width) bool { return false })
	if !r.IsEmpty() || l.Measure().Count != 3 {
		t.Error("never-flipping predicate should keep everything left")
	}

	l, r = tr.Split(func(w width) bool { return true })
	if !l.IsEmpty() || r.Measure().Count != 3 {
		t.Error("always-true predicate should keep everything right")
	}
	if got := r.PeekFirst(); got != "a" {
		t.Errorf("right should start at first element, got %q", got)
	}
}

func TestEachEarlyStop(t *testing.T) {
	tr := fromStrings("a", "b", "c", "d", "e")
	var seen []chunk
	tr.Each(func(c chunk) bool {
		seen = append(seen, c)
		return len(seen) < 3
	})
	if !slices.Equal(seen, []chunk{"a", "b", "c"}) {
		t.Errorf("early stop saw %v, want [a b c]", seen)
	}
}

func TestEachReverse(t *testing.T) {
	cs := numbered(25)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)
	var seen []chunk
	tr.EachReverse(func(c chunk) bool {
		seen = append(seen, c)
		return true
	})
	slices.Reverse(seen)
	if !slices.Equal(seen, cs) {
		t.Errorf("EachReverse saw %v, want %v", seen, cs)
	}
}

func TestSeq(t *testing.T) {
	cs := numbered(10)
	tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)

	var forward []chunk
	for c := range tr.Seq() {
		forward = append(forward, c)
	}
	if !slices.Equal(forward, cs) {
		t.Errorf("Seq() = %v, want %v", forward, cs)
	}

	var backward []chunk
	for c := range tr.SeqReverse() {
		backward = append(backward, c)
		if len(backward) == 4 {
			break
		}
	}
	want := []chunk{"c9", "c8", "c7", "c6"}
	if !slices.Equal(backward, want) {
		t.Errorf("SeqReverse() = %v, want %v", backward, want)
	}
}

func TestString(t *testing.T) {
	if got := fromStrings("a", "b").String(); got != "[a b]" {
		t.Errorf("String() = %q, want %q", got, "[a b]")
	}
	if got := emptyChunks().String(); got != "[]" {
		t.Errorf("String() = %q, want %q", got, "[]")
	}
}

func TestDequeModelProperty(t *testing.T) {
	f := func(ops []byte) bool {
		tr := emptyChunks()
		var model []chunk
		next := 0

		for _, op := range ops {
			switch op % 4 {
			case 0:
				c := chunk(fmt.Sprintf("v%d", next))
				next++
				tr = tr.AddFirst(c)
				model = append([]chunk{c}, model...)
			case 1:
				c := chunk(fmt.Sprintf("v%d", next))
				next++
				tr = tr.AddLast(c)
				model = append(model, c)
			case 2:
				tr = tr.RemoveFirst()
				if len(model) > 0 {
					model = model[1:]
				}
			case 3:
				tr = tr.RemoveLast()
				if len(model) > 0 {
					model = model[:len(model)-1]
				}
			}
		}
		return slices.Equal(tr.ToSlice(), model) && tr.Measure().Count == len(model)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSplitConcatProperty(t *testing.T) {
	f := func(words []string, cut uint16) bool {
		cs := make([]chunk, len(words))
		total := 0
		for i, w := range words {
			cs[i] = chunk(w)
			total += len(w)
		}
		tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)

		target := 0
		if total > 0 {
			target = int(cut) % (total + 1)
		}
		l, r := tr.Split(func(w width) bool { return w.Bytes > target })
		return slices.Equal(l.Concat(r).ToSlice(), cs)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestMeasureProperty(t *testing.T) {
	f := func(words []string) bool {
		cs := make([]chunk, len(words))
		wantBytes := 0
		for i, w := range words {
			cs[i] = chunk(w)
			wantBytes += len(w)
		}
		tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)
		m := tr.Measure()
		return m.Count == len(words) && m.Bytes == wantBytes
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
