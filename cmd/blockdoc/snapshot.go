package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/dshills/blockdoc/internal/engine"
)

// snapshot is the document state persisted by -snapshot and read back
// by -restore: zstd-compressed JSON.
type snapshot struct {
	Name    string      `json:"name"`
	Grammar string      `json:"grammar"`
	Text    string      `json:"text"`
	Marks   []markState `json:"marks"`
}

// Shared encoder and decoder; both are safe for concurrent use and
// expensive to construct.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func writeSnapshot(eng *engine.Engine, grammar, path string) error {
	st := stateOf(eng, grammar)
	snap := snapshot{
		Name:    st.Name,
		Grammar: grammar,
		Text:    eng.Text(),
		Marks:   st.Marks,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return os.WriteFile(path, zstdEncoder.EncodeAll(data, nil), 0o644)
}

func readSnapshot(path string) (*snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := zstdDecoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// restoreEngine rebuilds an engine from a snapshot. The snapshot's
// grammar applies unless -grammar was given explicitly.
func restoreEngine(opts options) (*engine.Engine, string, error) {
	snap, err := readSnapshot(opts.restore)
	if err != nil {
		return nil, "", err
	}

	gname := snap.Grammar
	if opts.grammarSet {
		gname = opts.grammar
	}
	gopt, err := grammarOption(gname)
	if err != nil {
		return nil, "", err
	}

	eng, err := engine.New(gopt, engine.WithName(snap.Name), engine.WithContent(snap.Text))
	if err != nil {
		return nil, "", err
	}
	for _, m := range snap.Marks {
		if err := eng.SetMark(m.Name, m.Offset); err != nil {
			eng.Close()
			return nil, "", fmt.Errorf("snapshot mark %q: %w", m.Name, err)
		}
	}
	return eng, gname, nil
}
