package grammar

import (
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dshills/blockdoc/internal/engine/document"
)

// Notes is the full reference grammar. It scans line by line and
// recognizes, in order: headings ("#"-prefixed), fenced code blocks
// (``` with an optional info string; json, yaml, and toml fences are
// decoded into Fields["value"]), tables (runs of "|"-prefixed lines),
// and paragraphs for everything else. Paragraphs own their trailing
// blank lines, as in Paragraphs.
func Notes(text string) ([]*document.Block, error) {
	lines := splitLines(text)
	var blocks []*document.Block
	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case headingLevel(line) > 0:
			blocks = append(blocks, headingBlock(line))
			i++
		case isFence(line):
			b, n := fenceBlock(lines[i:])
			blocks = append(blocks, b)
			i += n
		case isTableRow(line):
			b, n := tableBlock(lines[i:])
			blocks = append(blocks, b)
			i += n
		default:
			b, n := paragraphBlock(lines[i:])
			blocks = append(blocks, b)
			i += n
		}
	}
	return blocks, nil
}

// headingLevel returns the heading depth, or 0 when the line is not a
// heading. A heading is one or more '#' followed by a space.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func headingBlock(line string) *document.Block {
	level := headingLevel(line)
	return &document.Block{
		Type: TypeHeading,
		Text: line,
		Fields: map[string]any{
			"level": level,
			"title": strings.TrimSpace(line[level+1:]),
		},
	}
}

func isFence(line string) bool {
	return strings.HasPrefix(line, "```")
}

// fenceBlock consumes an opening fence through its closing fence, or to
// the end of input when unclosed.
func fenceBlock(lines []string) (*document.Block, int) {
	var text, body strings.Builder
	text.WriteString(lines[0])

	lang := ""
	if fields := strings.Fields(strings.TrimPrefix(lines[0], "```")); len(fields) > 0 {
		lang = fields[0]
	}

	n := 1
	for n < len(lines) {
		line := lines[n]
		text.WriteString(line)
		n++
		if strings.TrimSpace(line) == "```" {
			break
		}
		body.WriteString(line)
	}

	b := &document.Block{Type: TypeCode, Text: text.String()}
	fields := map[string]any{}
	if lang != "" {
		fields["lang"] = lang
	}
	if v, ok := decodeFenceData(lang, body.String()); ok {
		fields["value"] = v
	}
	if len(fields) > 0 {
		b.Fields = fields
	}
	return b, n
}

// decodeFenceData decodes the body of a data fence. A body that fails
// to decode is content, not a parse failure, so the value is simply
// absent.
func decodeFenceData(lang, body string) (any, bool) {
	if strings.TrimSpace(body) == "" {
		return nil, false
	}
	switch lang {
	case "json":
		var v any
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, false
		}
		return v, true
	case "yaml":
		var v any
		if err := yaml.Unmarshal([]byte(body), &v); err != nil {
			return nil, false
		}
		return v, true
	case "toml":
		var v map[string]any
		if err := toml.Unmarshal([]byte(body), &v); err != nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|")
}

// tableBlock consumes a run of table rows, splitting each into trimmed
// cells.
func tableBlock(lines []string) (*document.Block, int) {
	var text strings.Builder
	var rows [][]string
	n := 0
	for n < len(lines) && isTableRow(lines[n]) {
		text.WriteString(lines[n])
		rows = append(rows, tableCells(lines[n]))
		n++
	}
	return &document.Block{
		Type:   TypeTable,
		Text:   text.String(),
		Fields: map[string]any{"rows": rows},
	}, n
}

func tableCells(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// paragraphBlock consumes lines until a structural line or the
// blank-to-text boundary that ends a paragraph.
func paragraphBlock(lines []string) (*document.Block, int) {
	var text strings.Builder
	n := 0
	sawBlank := false
	for n < len(lines) {
		line := lines[n]
		blank := strings.TrimSpace(line) == ""
		if n > 0 && !blank && (sawBlank || structural(line)) {
			break
		}
		text.WriteString(line)
		if blank {
			sawBlank = true
		}
		n++
	}
	return &document.Block{Type: TypeText, Text: text.String()}, n
}

func structural(line string) bool {
	return headingLevel(line) > 0 || isFence(line) || isTableRow(line)
}
