package document

import "github.com/sergi/go-diff/diffmatchpatch"

// UpdateText edits the document until its text equals text. It computes
// a character-level diff against the current content and applies each
// hunk as its own Replace, coalescing an adjacent delete and insert
// into a single replacement. One Change per hunk is returned in
// application order; a document already matching returns nil.
//
// If a hunk's Replace fails, the hunks already applied stay applied and
// are returned alongside the error.
func (s *Store) UpdateText(text string) ([]*Change, error) {
	current := s.Text()
	if current == text {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, text, false)

	var changes []*Change
	pos := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(d.Text)

		case diffmatchpatch.DiffDelete:
			ins := ""
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				ins = diffs[i+1].Text
				i++
			}
			ch, err := s.Replace(pos, pos+len(d.Text), ins)
			if err != nil {
				return changes, err
			}
			changes = append(changes, ch)
			pos += len(ins)

		case diffmatchpatch.DiffInsert:
			ch, err := s.Replace(pos, pos, d.Text)
			if err != nil {
				return changes, err
			}
			changes = append(changes, ch)
			pos += len(d.Text)
		}
	}
	return changes, nil
}
