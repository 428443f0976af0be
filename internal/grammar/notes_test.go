package grammar

import (
	"testing"

	"github.com/dshills/blockdoc/internal/engine/document"
)

func TestNotesHeadings(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level int
		title string
	}{
		{"level one", "# Title\n", 1, "Title"},
		{"level three", "### deep dive\n", 3, "deep dive"},
		{"empty title", "# \n", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := parseWith(t, Notes, tt.text)
			if len(blocks) != 1 || blocks[0].Type != TypeHeading {
				t.Fatalf("parse(%q) = %+v, want one heading", tt.text, blocks)
			}
			if got := blocks[0].Fields["level"]; got != tt.level {
				t.Errorf("level = %v, want %d", got, tt.level)
			}
			if got := blocks[0].Fields["title"]; got != tt.title {
				t.Errorf("title = %v, want %q", got, tt.title)
			}
		})
	}
}

func TestNotesNotHeadings(t *testing.T) {
	for _, text := range []string{"#nospace\n", "#\n", "x # y\n"} {
		blocks := parseWith(t, Notes, text)
		if len(blocks) != 1 || blocks[0].Type != TypeText {
			t.Errorf("parse(%q) = %+v, want one text block", text, blocks)
		}
	}
}

func TestNotesFences(t *testing.T) {
	t.Run("closed with lang", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```go\nfunc f() {}\n```\n")
		if len(blocks) != 1 || blocks[0].Type != TypeCode {
			t.Fatalf("blocks = %+v, want one code block", blocks)
		}
		if got := blocks[0].Fields["lang"]; got != "go" {
			t.Errorf("lang = %v, want go", got)
		}
		if _, ok := blocks[0].Fields["value"]; ok {
			t.Error("go fence decoded a value")
		}
	})

	t.Run("unclosed runs to end", func(t *testing.T) {
		blocks := parseWith(t, Notes, "before\n```\ndangling")
		wantBlockTexts(t, blocks, "before\n", "```\ndangling")
		if blocks[1].Type != TypeCode {
			t.Errorf("type = %q, want %q", blocks[1].Type, TypeCode)
		}
	})

	t.Run("info string keeps first word", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```json lines\n\n```\n")
		if got := blocks[0].Fields["lang"]; got != "json" {
			t.Errorf("lang = %v, want json", got)
		}
	})

	t.Run("bare fence has no lang", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```\nx\n```\n")
		if blocks[0].Fields != nil {
			t.Errorf("Fields = %v, want nil", blocks[0].Fields)
		}
	})
}

func TestNotesDataFences(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```json\n{\"a\": 1, \"b\": \"x\"}\n```\n")
		v, ok := blocks[0].Fields["value"].(map[string]any)
		if !ok {
			t.Fatalf("value = %v, want a map", blocks[0].Fields["value"])
		}
		if v["a"] != float64(1) || v["b"] != "x" {
			t.Errorf("value = %v", v)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```yaml\nname: svc\nport: 8080\n```\n")
		v, ok := blocks[0].Fields["value"].(map[string]any)
		if !ok {
			t.Fatalf("value = %v, want a map", blocks[0].Fields["value"])
		}
		if v["name"] != "svc" || v["port"] != 8080 {
			t.Errorf("value = %v", v)
		}
	})

	t.Run("toml", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```toml\ntitle = \"notes\"\n```\n")
		v, ok := blocks[0].Fields["value"].(map[string]any)
		if !ok {
			t.Fatalf("value = %v, want a map", blocks[0].Fields["value"])
		}
		if v["title"] != "notes" {
			t.Errorf("value = %v", v)
		}
	})

	t.Run("invalid body is content", func(t *testing.T) {
		blocks := parseWith(t, Notes, "```json\n{not json\n```\n")
		if _, ok := blocks[0].Fields["value"]; ok {
			t.Error("invalid json decoded a value")
		}
		if got := blocks[0].Fields["lang"]; got != "json" {
			t.Errorf("lang = %v, want json", got)
		}
	})
}

func TestNotesTables(t *testing.T) {
	blocks := parseWith(t, Notes, "| a | b |\n| c | d |\nplain\n")
	wantBlockTexts(t, blocks, "| a | b |\n| c | d |\n", "plain\n")
	if blocks[0].Type != TypeTable {
		t.Fatalf("type = %q, want %q", blocks[0].Type, TypeTable)
	}
	rows, ok := blocks[0].Fields["rows"].([][]string)
	if !ok || len(rows) != 2 {
		t.Fatalf("rows = %v, want two rows", blocks[0].Fields["rows"])
	}
	if rows[0][0] != "a" || rows[0][1] != "b" || rows[1][0] != "c" || rows[1][1] != "d" {
		t.Errorf("rows = %v", rows)
	}
}

func TestNotesParagraphBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"blank separates", "aaa\nbbb\n\nccc\n", []string{"aaa\nbbb\n\n", "ccc\n"}},
		{"structural separates", "text\n# h\n", []string{"text\n", "# h\n"}},
		{"leading blank block", "\ntext\n", []string{"\n", "text\n"}},
		{"blank then structural", "text\n\n| a |\n", []string{"text\n\n", "| a |\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantBlockTexts(t, parseWith(t, Notes, tt.text), tt.want...)
		})
	}
}

func TestNotesMixed(t *testing.T) {
	src := "# Title\n\nintro\ncontinues\n\n```json\n{\"k\": \"v\"}\n```\n| a | b |\nrest\n"
	blocks := parseWith(t, Notes, src)
	wantBlockTexts(t, blocks,
		"# Title\n",
		"\n",
		"intro\ncontinues\n\n",
		"```json\n{\"k\": \"v\"}\n```\n",
		"| a | b |\n",
		"rest\n",
	)
	wantTypes := []string{TypeHeading, TypeText, TypeText, TypeCode, TypeTable, TypeText}
	for i, b := range blocks {
		if b.Type != wantTypes[i] {
			t.Errorf("block %d type = %q, want %q", i, b.Type, wantTypes[i])
		}
	}
}

func TestNotesStoreFenceMerge(t *testing.T) {
	s := document.NewStore(document.WithParser(Notes))
	if err := s.Load("para\n```go\ncode\n```\nafter\n"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var ids []document.ID
	s.Each(func(b *document.Block) bool {
		ids = append(ids, b.ID)
		return true
	})
	if len(ids) != 3 {
		t.Fatalf("loaded %d blocks, want 3", len(ids))
	}

	// deleting the opening backticks dissolves the fence: its first lines
	// join the leading paragraph and the old closer opens a new fence
	// that swallows the tail
	ch, err := s.Replace(5, 8, "")
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got := s.Text(); got != "para\ngo\ncode\n```\nafter\n" {
		t.Errorf("Text() = %q", got)
	}

	blocks := s.Blocks()
	wantBlockTexts(t, blocks, "para\ngo\ncode\n", "```\nafter\n")
	if blocks[0].ID != ids[0] || blocks[1].ID != ids[1] {
		t.Errorf("ids = [%s %s], want [%s %s]", blocks[0].ID, blocks[1].ID, ids[0], ids[1])
	}
	if blocks[0].Type != TypeText || blocks[1].Type != TypeCode {
		t.Errorf("types = [%s %s]", blocks[0].Type, blocks[1].Type)
	}
	if len(ch.Adds) != 0 || len(ch.Removes) != 1 {
		t.Errorf("change = %s, want no adds and one remove", ch.Summary())
	}
	if _, ok := ch.Removes[ids[2]]; !ok {
		t.Errorf("Removes missing %q", ids[2])
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestNotesStoreHeadingSplit(t *testing.T) {
	s := document.NewStore(document.WithParser(Notes))
	if err := s.Load("alpha\nbeta\n"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first := s.Blocks()
	if len(first) != 1 {
		t.Fatalf("loaded %d blocks, want 1", len(first))
	}

	// typing a heading marker mid-paragraph splits it in two
	ch, err := s.Replace(6, 6, "# ")
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	blocks := s.Blocks()
	wantBlockTexts(t, blocks, "alpha\n", "# beta\n")
	if blocks[0].ID != first[0].ID {
		t.Errorf("first id = %s, want %s", blocks[0].ID, first[0].ID)
	}
	if blocks[1].ID == first[0].ID {
		t.Error("split block reused the original id")
	}
	if blocks[1].Type != TypeHeading {
		t.Errorf("type = %q, want %q", blocks[1].Type, TypeHeading)
	}
	if got := blocks[1].Fields["title"]; got != "beta" {
		t.Errorf("title = %v, want beta", got)
	}
	if len(ch.Adds) != 1 || len(ch.Updates) != 1 || len(ch.Removes) != 0 {
		t.Errorf("change = %s, want one add and one update", ch.Summary())
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}
