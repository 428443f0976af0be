package fingertree

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

// FuzzDequeOps drives both ends of the tree against a slice model.
func FuzzDequeOps(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 1, 2, 3})
	f.Add([]byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0})
	f.Add([]byte{2, 3, 2, 3})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 3})

	f.Fuzz(func(t *testing.T, ops []byte) {
		tr := emptyChunks()
		var model []chunk

		for i, op := range ops {
			c := chunk(fmt.Sprintf("v%d", i))
			switch op % 4 {
			case 0:
				tr = tr.AddFirst(c)
				model = append([]chunk{c}, model...)
			case 1:
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

			if tr.IsEmpty() != (len(model) == 0) {
				t.Fatalf("op %d: IsEmpty() = %v with model size %d", i, tr.IsEmpty(), len(model))
			}
			if len(model) > 0 {
				if got := tr.PeekFirst(); got != model[0] {
					t.Fatalf("op %d: PeekFirst() = %q, want %q", i, got, model[0])
				}
				if got := tr.PeekLast(); got != model[len(model)-1] {
					t.Fatalf("op %d: PeekLast() = %q, want %q", i, got, model[len(model)-1])
				}
			}
		}

		if got := tr.ToSlice(); !slices.Equal(got, model) {
			t.Errorf("final content %v, want %v", got, model)
		}
		if m := tr.Measure(); m.Count != len(model) {
			t.Errorf("final count %d, want %d", m.Count, len(model))
		}
	})
}

// FuzzSplit checks the split partition against the slice model for
// arbitrary contents and byte targets.
func FuzzSplit(f *testing.F) {
	f.Add("", uint16(0))
	f.Add("a b c", uint16(2))
	f.Add("one two three four five", uint16(11))
	f.Add("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", uint16(31))

	f.Fuzz(func(t *testing.T, words string, cut uint16) {
		var cs []chunk
		total := 0
		for _, w := range strings.Fields(words) {
			cs = append(cs, chunk(w))
			total += len(w)
		}
		tr := FromSlice[widthMeasurer, chunk, width](widthMeasurer{}, cs)

		target := 0
		if total > 0 {
			target = int(cut) % (total + 1)
		}
		l, r := tr.Split(func(w width) bool { return w.Bytes > target })

		if got := l.Concat(r).ToSlice(); !slices.Equal(got, cs) {
			t.Fatalf("split at %d does not reassemble: %v, want %v", target, got, cs)
		}
		if lb := l.Measure().Bytes; lb > target {
			t.Errorf("left bytes %d exceed target %d", lb, target)
		}
		if !r.IsEmpty() {
			if crossed := l.Measure().Bytes + len(r.PeekFirst()); crossed <= target {
				t.Errorf("first right element leaves prefix at %d, target %d", crossed, target)
			}
		}
	})
}
