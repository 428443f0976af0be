// Package grammar provides the built-in parsers that split text into
// document blocks. Every grammar satisfies document.ParseFunc and obeys
// its contract: concatenating the returned block texts reproduces the
// input byte for byte.
package grammar

import (
	"strings"

	"github.com/dshills/blockdoc/internal/engine/document"
)

// Block types produced by the built-in grammars.
const (
	TypeLine    = "line"
	TypeText    = "text"
	TypeHeading = "heading"
	TypeCode    = "code"
	TypeTable   = "table"
)

// Lines treats every newline-terminated line as one block, plus a final
// unterminated tail. The degenerate grammar, useful as a baseline and in
// tests.
func Lines(text string) ([]*document.Block, error) {
	var blocks []*document.Block
	for _, line := range splitLines(text) {
		blocks = append(blocks, &document.Block{Type: TypeLine, Text: line})
	}
	return blocks, nil
}

// Paragraphs splits after blank lines. A paragraph owns its trailing
// blank lines, so boundaries fall between a blank line and the next
// non-blank one.
func Paragraphs(text string) ([]*document.Block, error) {
	var blocks []*document.Block
	var cur strings.Builder
	sawBlank := false

	flush := func() {
		if cur.Len() > 0 {
			blocks = append(blocks, &document.Block{Type: TypeText, Text: cur.String()})
			cur.Reset()
			sawBlank = false
		}
	}

	for _, line := range splitLines(text) {
		blank := strings.TrimSpace(line) == ""
		if !blank && sawBlank {
			flush()
		}
		cur.WriteString(line)
		if blank {
			sawBlank = true
		}
	}
	flush()
	return blocks, nil
}

// ByName returns a built-in grammar by name.
func ByName(name string) (document.ParseFunc, bool) {
	switch name {
	case "lines":
		return Lines, true
	case "paragraphs":
		return Paragraphs, true
	case "notes":
		return Notes, true
	}
	return nil, false
}

// Names lists the built-in grammar names.
func Names() []string {
	return []string{"lines", "paragraphs", "notes"}
}

// splitLines cuts text into lines, each keeping its trailing newline.
// The last line may be unterminated.
func splitLines(text string) []string {
	var out []string
	for len(text) > 0 {
		line := text
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			line = text[:idx+1]
		}
		out = append(out, line)
		text = text[len(line):]
	}
	return out
}
