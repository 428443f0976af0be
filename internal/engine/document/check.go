package document

import "fmt"

// Check validates the document's internal consistency: the linked order
// is a single acyclic chain, the block table holds exactly the chain's
// blocks, and the offset index agrees with the chain in order and
// width. It returns nil when healthy and an error wrapping ErrCorrupt
// describing the first problem found otherwise.
//
// Check never repairs anything. It exists for tests and for diagnosing
// a store after a handler or parser panic unwound mid-edit.
func (s *Store) Check() error {
	if s.first == "" {
		if n := len(s.blocks); n != 0 {
			return fmt.Errorf("%w: no first block but table holds %d", ErrCorrupt, n)
		}
		if s.index.Count() != 0 || s.index.Width() != 0 {
			return fmt.Errorf("%w: empty document but index holds %d entries, width %d",
				ErrCorrupt, s.index.Count(), s.index.Width())
		}
		return nil
	}

	entries := s.index.Entries()
	seen := make(map[ID]bool, len(s.blocks))
	pos := 0
	width := 0
	prev := ID("")
	for id := s.first; id != ""; {
		b, ok := s.blocks[id]
		if !ok {
			return fmt.Errorf("%w: chain references missing block %q", ErrCorrupt, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: chain loops at block %q", ErrCorrupt, id)
		}
		seen[id] = true
		if b.Prev != prev {
			return fmt.Errorf("%w: block %q prev is %q, want %q", ErrCorrupt, id, b.Prev, prev)
		}
		if b.Text == "" {
			return fmt.Errorf("%w: block %q has empty text", ErrCorrupt, id)
		}
		if pos >= len(entries) {
			return fmt.Errorf("%w: block %q missing from index", ErrCorrupt, id)
		}
		if e := entries[pos]; e.ID != id || e.Width != len(b.Text) {
			return fmt.Errorf("%w: index entry %d is %q width %d, want %q width %d",
				ErrCorrupt, pos, e.ID, e.Width, id, len(b.Text))
		}
		width += len(b.Text)
		pos++
		prev = id
		id = b.Next
	}

	if len(seen) != len(s.blocks) {
		return fmt.Errorf("%w: table holds %d blocks, chain reaches %d", ErrCorrupt, len(s.blocks), len(seen))
	}
	if pos != len(entries) {
		return fmt.Errorf("%w: index holds %d entries, chain has %d blocks", ErrCorrupt, len(entries), pos)
	}
	if width != s.index.Width() {
		return fmt.Errorf("%w: chain width %d, index width %d", ErrCorrupt, width, s.index.Width())
	}
	return nil
}
