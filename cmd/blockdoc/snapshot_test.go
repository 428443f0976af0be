package main

import (
	"path/filepath"
	"testing"

	"github.com/dshills/blockdoc/internal/engine"
)

func TestSnapshotRoundTrip(t *testing.T) {
	eng, err := engine.New(
		engine.WithGrammarName("notes"),
		engine.WithName("notes.md"),
		engine.WithContent("# Title\n\nbody\n"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer eng.Close()
	if err := eng.SetMark("cursor", 9); err != nil {
		t.Fatalf("SetMark() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.zst")
	if err := writeSnapshot(eng, "notes", path); err != nil {
		t.Fatalf("writeSnapshot() error = %v", err)
	}

	restored, gname, err := restoreEngine(options{restore: path})
	if err != nil {
		t.Fatalf("restoreEngine() error = %v", err)
	}
	defer restored.Close()

	if gname != "notes" {
		t.Errorf("grammar = %q, want notes", gname)
	}
	if restored.Name() != "notes.md" {
		t.Errorf("Name() = %q, want notes.md", restored.Name())
	}
	if restored.Text() != eng.Text() {
		t.Errorf("Text() = %q, want %q", restored.Text(), eng.Text())
	}
	if restored.Fingerprint() != eng.Fingerprint() {
		t.Error("fingerprints differ after restore")
	}
	if off, ok := restored.MarkOffset("cursor"); !ok || off != 9 {
		t.Errorf("MarkOffset(cursor) = %d, %v, want 9", off, ok)
	}
	if err := restored.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSnapshotGrammarOverride(t *testing.T) {
	eng, err := engine.New(engine.WithGrammarName("notes"), engine.WithContent("# h\n"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer eng.Close()

	path := filepath.Join(t.TempDir(), "doc.zst")
	if err := writeSnapshot(eng, "notes", path); err != nil {
		t.Fatalf("writeSnapshot() error = %v", err)
	}

	restored, gname, err := restoreEngine(options{
		restore:    path,
		grammar:    "lines",
		grammarSet: true,
	})
	if err != nil {
		t.Fatalf("restoreEngine() error = %v", err)
	}
	defer restored.Close()

	if gname != "lines" {
		t.Errorf("grammar = %q, want lines", gname)
	}
	if got := restored.First().Type; got != "line" {
		t.Errorf("type = %q, want line", got)
	}
}

func TestReadSnapshotErrors(t *testing.T) {
	if _, err := readSnapshot(filepath.Join(t.TempDir(), "missing.zst")); err == nil {
		t.Error("readSnapshot(missing) error = nil")
	}
}
