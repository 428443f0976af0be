package document

import (
	"fmt"

	"github.com/dshills/blockdoc/internal/engine/index"
)

// Location is a named mark resolved to its document offset.
type Location = index.Location

// SetMark places a named mark at a byte offset, moving it if it already
// exists. Marks are positions between bytes, so offset may equal the
// document length. Marks float with subsequent edits and are cleared by
// Load.
func (s *Store) SetMark(name string, offset int) error {
	if name == "" {
		return ErrMarkName
	}
	if length := s.Length(); offset < 0 || offset > length {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrMarkRange, offset, length)
	}
	s.marks.Set(name, offset)
	return nil
}

// RemoveMark removes a named mark, reporting whether it existed.
func (s *Store) RemoveMark(name string) bool {
	if !s.marks.Has(name) {
		return false
	}
	s.marks.Remove(name)
	return true
}

// MarkOffset returns the current offset of a named mark.
func (s *Store) MarkOffset(name string) (int, bool) {
	return s.marks.Offset(name)
}

// MarkBlock resolves a mark to the block containing it and the offset
// within that block.
func (s *Store) MarkBlock(name string) (*Block, int, bool) {
	off, ok := s.marks.Offset(name)
	if !ok {
		return nil, 0, false
	}
	return s.BlockAt(off)
}

// Marks returns every mark ordered by offset. Marks then sharing an
// offset appear in the order they were set.
func (s *Store) Marks() []Location {
	return s.marks.All()
}

// MarkCount returns the number of marks.
func (s *Store) MarkCount() int {
	return s.marks.Count()
}
