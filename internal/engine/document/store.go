package document

import (
	"fmt"
	"strings"

	"github.com/dshills/blockdoc/internal/engine/index"
	"github.com/dshills/blockdoc/internal/event"
)

// ParseFunc splits text into blocks. Implementations must cover their
// input exactly: concatenating the returned blocks' Text reproduces the
// input byte for byte, and no block may have empty text. Ids and links
// on returned blocks are ignored; the store assigns its own. Returned
// blocks must be fresh on every call since the store takes ownership.
type ParseFunc func(text string) ([]*Block, error)

// Store holds one block-structured document: the block table, the
// linked order, the offset index, and named marks. See the package
// documentation for the editing model.
type Store struct {
	name   string
	parser ParseFunc
	bus    *event.Bus

	blocks map[ID]*Block
	first  ID
	index  *index.BlockIndex
	marks  *index.MarkIndex

	nextID   int
	txnDepth int
	pending  *pendingChange
}

// NewStore creates an empty document store. Without WithParser the
// store can be queried but not loaded or edited.
func NewStore(opts ...Option) *Store {
	s := &Store{
		bus:    event.NewBus(),
		blocks: make(map[ID]*Block),
		index:  index.NewBlockIndex(),
		marks:  index.NewMarkIndex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the document name.
func (s *Store) Name() string { return s.name }

// Bus returns the event bus the store publishes on.
func (s *Store) Bus() *event.Bus { return s.bus }

// Load replaces the entire document with a fresh parse of text. All
// existing blocks, ids, and marks are discarded. A load is wholesale
// rather than an edit, so it publishes a LoadEvent, not a change.
func (s *Store) Load(text string) error {
	blocks, err := s.runParser(text)
	if err != nil {
		return err
	}

	s.blocks = make(map[ID]*Block, len(blocks))
	s.first = ""
	s.index.Clear()
	s.marks.Clear()

	entries := make([]index.Entry, len(blocks))
	var prev *Block
	for i, b := range blocks {
		b.ID = s.newID()
		b.Prev, b.Next = "", ""
		if prev != nil {
			prev.Next = b.ID
			b.Prev = prev.ID
		}
		s.blocks[b.ID] = b
		entries[i] = index.Entry{ID: b.ID, Width: len(b.Text)}
		prev = b
	}
	if len(blocks) > 0 {
		s.first = blocks[0].ID
	}
	s.index.Load(entries)

	s.publish(LoadEvent{Name: s.name, Length: s.Length(), Blocks: len(blocks)})
	return nil
}

// First returns the first block in document order, or nil when the
// document is empty.
func (s *Store) First() *Block {
	if s.first == "" {
		return nil
	}
	return s.blocks[s.first]
}

// Get returns the block with the given id.
func (s *Store) Get(id ID) (*Block, bool) {
	b, ok := s.blocks[id]
	return b, ok
}

// Count returns the number of blocks.
func (s *Store) Count() int { return len(s.blocks) }

// Length returns the document length in bytes.
func (s *Store) Length() int { return s.index.Width() }

// Text reassembles the full document text in linked order.
func (s *Store) Text() string {
	var sb strings.Builder
	sb.Grow(s.Length())
	for b := s.First(); b != nil; b = s.next(b) {
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// TextRange returns the text of the byte range [start, end). Only the
// blocks covering the range are visited. An out-of-range span panics,
// matching Replace.
func (s *Store) TextRange(start, end int) string {
	length := s.Length()
	if start < 0 || end < start || end > length {
		panic(fmt.Sprintf("document: text range [%d,%d) out of bounds for length %d", start, end, length))
	}
	if start == end {
		return ""
	}

	b, rel, _ := s.BlockAt(start)
	var sb strings.Builder
	sb.Grow(end - start)
	remaining := end - start
	for b != nil && remaining > 0 {
		t := b.Text[rel:]
		if len(t) > remaining {
			t = t[:remaining]
		}
		sb.WriteString(t)
		remaining -= len(t)
		rel = 0
		b = s.next(b)
	}
	return sb.String()
}

// Each visits blocks in document order until fn returns false.
func (s *Store) Each(fn func(*Block) bool) {
	for b := s.First(); b != nil; b = s.next(b) {
		if !fn(b) {
			return
		}
	}
}

// Blocks returns all blocks in document order.
func (s *Store) Blocks() []*Block {
	out := make([]*Block, 0, s.Count())
	s.Each(func(b *Block) bool {
		out = append(out, b)
		return true
	})
	return out
}

// BlockAt returns the block containing the byte offset and the offset
// relative to the block's start. An offset at or past the end resolves
// to the last block; an empty document reports ok false.
func (s *Store) BlockAt(offset int) (*Block, int, bool) {
	id, rel, ok := s.index.At(offset)
	if !ok {
		return nil, 0, false
	}
	b, ok := s.blocks[id]
	if !ok {
		return nil, 0, false
	}
	return b, rel, true
}

// OffsetOf returns the document offset of the block's first byte.
func (s *Store) OffsetOf(id ID) (int, bool) {
	return s.index.OffsetOf(id)
}

// DocOffset converts a block-relative offset to a document offset.
func (s *Store) DocOffset(id ID, rel int) (int, bool) {
	off, ok := s.index.OffsetOf(id)
	if !ok {
		return 0, false
	}
	return off + rel, true
}

// next follows the linked order, returning nil at the end.
func (s *Store) next(b *Block) *Block {
	if b.Next == "" {
		return nil
	}
	return s.blocks[b.Next]
}

// prev follows the linked order backwards, returning nil at the start.
func (s *Store) prev(b *Block) *Block {
	if b.Prev == "" {
		return nil
	}
	return s.blocks[b.Prev]
}

// newID allocates a fresh block id. Ids are never reused within a
// store's lifetime, loads included.
func (s *Store) newID() ID {
	s.nextID++
	return ID(fmt.Sprintf("block-%d", s.nextID))
}

// runParser invokes the configured parser and enforces its contract.
// Parser failures come back wrapped in ErrParse with the cause intact.
func (s *Store) runParser(text string) ([]*Block, error) {
	if s.parser == nil {
		return nil, ErrNoParser
	}
	blocks, err := s.parser(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	n := 0
	for _, b := range blocks {
		if b.Text == "" {
			return nil, fmt.Errorf("%w: parser returned an empty block", ErrParseMismatch)
		}
		n += len(b.Text)
	}
	if n != len(text) {
		return nil, fmt.Errorf("%w: %d bytes parsed from %d input bytes", ErrParseMismatch, n, len(text))
	}
	if len(blocks) > 0 {
		var sb strings.Builder
		sb.Grow(n)
		for _, b := range blocks {
			sb.WriteString(b.Text)
		}
		if sb.String() != text {
			return nil, fmt.Errorf("%w: block texts differ from input", ErrParseMismatch)
		}
	}
	return blocks, nil
}

// fetchLinked resolves a block for index repair. Its signature matches
// index.Fetch.
func (s *Store) fetchLinked(id index.ID) (index.Linked, bool) {
	b, ok := s.blocks[id]
	if !ok {
		return index.Linked{}, false
	}
	return linkedOf(b), true
}

// linkedOf projects a block onto its index view.
func linkedOf(b *Block) index.Linked {
	return index.Linked{
		Entry: index.Entry{ID: b.ID, Width: len(b.Text)},
		Prev:  b.Prev,
		Next:  b.Next,
	}
}

// publish sends an event on the store's bus. Store events always name a
// topic, so delivery cannot fail.
func (s *Store) publish(ev any) {
	_ = s.bus.Publish(ev)
}
