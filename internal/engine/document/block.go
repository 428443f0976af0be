package document

import (
	"maps"
	"reflect"

	"github.com/dshills/blockdoc/internal/engine/index"
)

// ID identifies a block. The store assigns ids when blocks enter the
// document and they remain stable for the block's lifetime.
type ID = index.ID

// Block is one parsed unit of the document. Text always holds the exact
// source bytes the block covers; concatenating Text over the linked
// order reproduces the document. Type and Fields carry whatever the
// parser derived from the text.
//
// Blocks handed out by a Store are shared, not copied. Treat them as
// immutable; mutate the document through Replace and friends.
type Block struct {
	ID     ID             `json:"id"`
	Type   string         `json:"type,omitempty"`
	Text   string         `json:"text"`
	Prev   ID             `json:"prev,omitempty"`
	Next   ID             `json:"next,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Width reports the length of the block's text in bytes.
func (b *Block) Width() int { return len(b.Text) }

// clone returns a copy safe to relink without disturbing the original.
// Fields is copied one level deep; parsers hand over fresh values.
func (b *Block) clone() *Block {
	nb := *b
	nb.Fields = maps.Clone(b.Fields)
	return &nb
}

// sameBlock reports whether two blocks would store identically, links
// included. Used to skip writes that would not change anything.
func sameBlock(a, b *Block) bool {
	return a.ID == b.ID && a.Type == b.Type && a.Text == b.Text &&
		a.Prev == b.Prev && a.Next == b.Next &&
		reflect.DeepEqual(a.Fields, b.Fields)
}
