package document

import (
	"fmt"
	"strings"
)

// Replace substitutes text for the byte range [start, end) and
// incrementally re-parses the document around the edit. Only a window
// of blocks near the edit is re-parsed; blocks outside it are never
// touched. Within the window, blocks whose text survives keep their
// ids, edited blocks are updated in place, and marks float with the
// text.
//
// The committed change is returned and also published as a ChangeEvent,
// even when the edit turns out to change nothing. A parser error aborts
// the edit with nothing committed. An out-of-range span panics.
func (s *Store) Replace(start, end int, text string) (*Change, error) {
	length := s.Length()
	if start < 0 || end < start || end > length {
		panic(fmt.Sprintf("document: replace range [%d,%d) out of bounds for length %d", start, end, length))
	}
	if s.parser == nil {
		return nil, ErrNoParser
	}

	if s.first == "" {
		return s.spliceInitial(text)
	}

	win, err := s.stabilize(start, end, text)
	if err != nil {
		return nil, err
	}
	return s.applyWindow(start, end, text, win), nil
}

// spliceInitial populates an empty document, the degenerate window.
func (s *Store) spliceInitial(text string) (*Change, error) {
	parsed, err := s.runParser(text)
	if err != nil {
		return nil, err
	}

	ch := s.makeChanges(0, 0, text, "", func() {
		var prev *Block
		for _, nb := range parsed {
			nb.ID = s.newID()
			nb.Prev, nb.Next = "", ""
			if prev != nil {
				prev.Next = nb.ID
				nb.Prev = prev.ID
			}
			prev = nb
		}
		for _, nb := range parsed {
			s.setBlock(nb)
		}
		if len(parsed) > 0 {
			s.first = parsed[0].ID
		}
		for _, nb := range parsed {
			s.indexBlock(nb)
		}
		s.recordRuns(nil, parsed)
		s.floatMarks(0, 0, len(text))
	})
	return ch, nil
}

// window is the contiguous run of blocks re-parsed for one edit.
type window struct {
	blocks []*Block // current blocks covering the window, document order
	start  int      // document offset of blocks[0]
	text   string   // concatenated text of blocks
	parsed []*Block // parse of the window text with the edit applied
}

// stabilize finds a window around [start, end) whose re-parse does not
// leak past its edges. Starting from the blocks the edit touches, it
// grows the window one block per unsettled side and re-parses, until on
// each side either the outermost included block's text is reproduced
// verbatim at the window's edge of the parse, or the window has reached
// the document's edge. Growth re-checks both sides every round because
// widening one side can reshape the parse at the other.
func (s *Store) stabilize(start, end int, text string) (*window, error) {
	lo, _, _ := s.BlockAt(start)
	hi := lo
	if end > start {
		hi, _, _ = s.BlockAt(end - 1)
	}
	winStart, _ := s.index.OffsetOf(lo.ID)

	guardL, guardR := false, false
	growL, growR := true, true
	for {
		if growL {
			if pb := s.prev(lo); pb != nil {
				lo = pb
				winStart -= len(pb.Text)
				guardL = true
			}
		}
		if growR {
			if nb := s.next(hi); nb != nil {
				hi = nb
				guardR = true
			}
		}

		run := s.windowRun(lo, hi)
		winText := runText(run)
		rs, re := start-winStart, end-winStart
		candidate := winText[:rs] + text + winText[re:]
		parsed, err := s.runParser(candidate)
		if err != nil {
			return nil, err
		}

		leftOK := lo.Prev == "" ||
			(guardL && len(parsed) > 0 && parsed[0].Text == lo.Text)
		rightOK := hi.Next == "" ||
			(guardR && len(parsed) > 0 && parsed[len(parsed)-1].Text == hi.Text)
		if leftOK && rightOK {
			return &window{blocks: run, start: winStart, text: winText, parsed: parsed}, nil
		}
		growL = !leftOK
		growR = !rightOK
	}
}

// windowRun collects the blocks from lo through hi in document order.
func (s *Store) windowRun(lo, hi *Block) []*Block {
	var out []*Block
	for b := lo; b != nil; b = s.next(b) {
		out = append(out, b)
		if b == hi {
			break
		}
	}
	return out
}

// runText concatenates a run's text in order.
func runText(run []*Block) string {
	var sb strings.Builder
	for _, b := range run {
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// applyWindow diffs the window's old blocks against its parse and
// commits the difference. Identical leading and trailing blocks are
// trimmed off untouched. Survivors in the middle pair up positionally
// and keep the old ids; surplus old blocks retire from the tail of the
// run; surplus new blocks get fresh ids.
func (s *Store) applyWindow(start, end int, text string, win *window) *Change {
	old, parsed := win.blocks, win.parsed

	p := 0
	for p < len(old) && p < len(parsed) && old[p].Text == parsed[p].Text {
		p++
	}
	sfx := 0
	for sfx < len(old)-p && sfx < len(parsed)-p &&
		old[len(old)-1-sfx].Text == parsed[len(parsed)-1-sfx].Text {
		sfx++
	}

	oldRun := old[p : len(old)-sfx]
	newRun := parsed[p : len(parsed)-sfx]

	for i, nb := range newRun {
		if i < len(oldRun) {
			nb.ID = oldRun[i].ID
		} else {
			nb.ID = s.newID()
		}
	}
	var removed []*Block
	if len(oldRun) > len(newRun) {
		removed = oldRun[len(newRun):]
	}

	// the blocks flanking the replaced run, "" at document edges
	prevID := old[0].Prev
	if p > 0 {
		prevID = old[p-1].ID
	}
	nextID := old[len(old)-1].Next
	if sfx > 0 {
		nextID = old[len(old)-sfx].ID
	}

	for i, nb := range newRun {
		nb.Prev = prevID
		if i > 0 {
			nb.Prev = newRun[i-1].ID
		}
		nb.Next = nextID
		if i < len(newRun)-1 {
			nb.Next = newRun[i+1].ID
		}
	}

	headID := nextID
	tailID := prevID
	if len(newRun) > 0 {
		headID = newRun[0].ID
		tailID = newRun[len(newRun)-1].ID
	}

	oldText := win.text[start-win.start : end-win.start]
	return s.makeChanges(start, end, text, oldText, func() {
		for _, rb := range removed {
			s.deleteBlock(rb.ID)
		}
		for _, nb := range newRun {
			if cur, ok := s.blocks[nb.ID]; !ok || !sameBlock(cur, nb) {
				s.setBlock(nb)
			}
		}
		if prevID == "" {
			s.first = headID
		} else if pb := s.blocks[prevID]; pb.Next != headID {
			patched := pb.clone()
			patched.Next = headID
			s.setBlock(patched)
		}
		if nextID != "" {
			if nb := s.blocks[nextID]; nb.Prev != tailID {
				patched := nb.clone()
				patched.Prev = tailID
				s.setBlock(patched)
			}
		}

		for _, rb := range removed {
			s.unindexBlock(rb.ID)
		}
		for _, nb := range newRun {
			s.indexBlock(nb)
		}

		s.recordRuns(oldRun, newRun)
		s.floatMarks(start, end, len(text))
	})
}
