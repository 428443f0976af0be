package document

import (
	"fmt"
	"maps"
)

// Change describes one committed edit. Start, End, Text, and OldText
// record the span edit itself, with OldText holding the text the edit
// displaced, so a change carries enough to reverse it. Adds, Updates,
// and Removes name exactly the blocks the edit touched; Old holds the
// previous value of every updated block. OldBlocks and NewBlocks are
// the replaced and replacement runs in document order. Maps are nil
// when empty.
type Change struct {
	Name    string `json:"name,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
	OldText string `json:"oldText,omitempty"`

	Adds    map[ID]*Block `json:"adds,omitempty"`
	Updates map[ID]*Block `json:"updates,omitempty"`
	Removes map[ID]*Block `json:"removes,omitempty"`
	Old     map[ID]*Block `json:"old,omitempty"`

	OldFirst ID `json:"oldFirst,omitempty"`
	First    ID `json:"first,omitempty"`

	OldBlocks []*Block `json:"oldBlocks,omitempty"`
	NewBlocks []*Block `json:"newBlocks,omitempty"`
}

// IsEmpty reports whether the edit left every block untouched.
func (c *Change) IsEmpty() bool {
	return len(c.Adds) == 0 && len(c.Updates) == 0 && len(c.Removes) == 0
}

// Summary renders the change in one line for logs and tooling.
func (c *Change) Summary() string {
	return fmt.Sprintf("[%d,%d)+%dB: %d adds, %d updates, %d removes",
		c.Start, c.End, len(c.Text), len(c.Adds), len(c.Updates), len(c.Removes))
}

// pendingChange accumulates writes while a change scope is open.
type pendingChange struct {
	start, end int
	text       string
	oldText    string
	oldFirst   ID

	sets    map[ID]*Block
	olds    map[ID]*Block
	removes map[ID]*Block

	oldRun []*Block
	newRun []*Block
}

// makeChanges opens a change scope around fn. Scopes nest by counting;
// the accumulated change is materialized, published, and returned when
// the outermost scope closes. Nested scopes return nil. If fn panics
// the scope unwinds without publishing and the store may be left
// partially written; Check reports whether it survived.
//
// The event is published after the scope has closed, so handlers see a
// quiescent store and may call back into it.
func (s *Store) makeChanges(start, end int, text, oldText string, fn func()) *Change {
	s.txnDepth++
	if s.txnDepth == 1 {
		s.pending = &pendingChange{
			start:    start,
			end:      end,
			text:     text,
			oldText:  oldText,
			oldFirst: s.first,
			sets:     make(map[ID]*Block),
			olds:     make(map[ID]*Block),
			removes:  make(map[ID]*Block),
		}
	}

	ch := func() *Change {
		defer func() {
			s.txnDepth--
			if s.txnDepth == 0 {
				s.pending = nil
			}
		}()

		fn()

		if s.txnDepth > 1 {
			return nil
		}
		return s.materialize()
	}()

	if ch != nil {
		s.publish(ChangeEvent{Name: s.name, Change: ch})
	}
	return ch
}

// mustChange panics unless a change scope is open.
func (s *Store) mustChange(op string) {
	if s.txnDepth == 0 {
		panic(fmt.Sprintf("document: %s outside a change scope", op))
	}
}

// setBlock writes a block into the table, recording its previous value
// the first time an id is touched in this scope.
func (s *Store) setBlock(b *Block) {
	s.mustChange("setBlock")
	if old, existed := s.blocks[b.ID]; existed {
		if _, seen := s.pending.olds[b.ID]; !seen {
			s.pending.olds[b.ID] = old
		}
	}
	delete(s.pending.removes, b.ID)
	s.pending.sets[b.ID] = b
	s.blocks[b.ID] = b
}

// deleteBlock removes a block from the table. A block both added and
// deleted within one scope cancels out of the change record.
func (s *Store) deleteBlock(id ID) {
	s.mustChange("deleteBlock")
	cur, existed := s.blocks[id]
	if !existed {
		return
	}
	delete(s.blocks, id)

	if _, added := s.pending.sets[id]; added {
		delete(s.pending.sets, id)
		if old, seen := s.pending.olds[id]; seen {
			s.pending.removes[id] = old
			delete(s.pending.olds, id)
		}
		return
	}
	s.pending.removes[id] = cur
}

// indexBlock re-anchors a block's leaf in the offset index.
func (s *Store) indexBlock(b *Block) {
	s.mustChange("indexBlock")
	s.index.Index(linkedOf(b), s.fetchLinked)
}

// unindexBlock drops a block's leaf from the offset index.
func (s *Store) unindexBlock(id ID) {
	s.mustChange("unindexBlock")
	s.index.Unindex(id)
}

// floatMarks shifts marks across the replaced span.
func (s *Store) floatMarks(start, end, width int) {
	s.mustChange("floatMarks")
	s.marks.Float(start, end, width)
}

// recordRuns notes the replaced and replacement runs for the change
// record.
func (s *Store) recordRuns(oldRun, newRun []*Block) {
	s.mustChange("recordRuns")
	s.pending.oldRun = oldRun
	s.pending.newRun = newRun
}

// materialize builds the Change for the open scope.
func (s *Store) materialize() *Change {
	p := s.pending
	ch := &Change{
		Name:      s.name,
		Start:     p.start,
		End:       p.end,
		Text:      p.text,
		OldText:   p.oldText,
		OldFirst:  p.oldFirst,
		First:     s.first,
		OldBlocks: p.oldRun,
		NewBlocks: p.newRun,
	}
	for id, b := range p.sets {
		if old, seen := p.olds[id]; seen {
			if ch.Updates == nil {
				ch.Updates = make(map[ID]*Block)
				ch.Old = make(map[ID]*Block)
			}
			ch.Updates[id] = b
			ch.Old[id] = old
		} else {
			if ch.Adds == nil {
				ch.Adds = make(map[ID]*Block)
			}
			ch.Adds[id] = b
		}
	}
	if len(p.removes) > 0 {
		ch.Removes = maps.Clone(p.removes)
	}
	return ch
}
