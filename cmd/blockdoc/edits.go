package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/dshills/blockdoc/internal/engine"
)

// editOp is one line of an edit script. The populated keys select the
// operation: start/end/text replace a range, mark+offset place a mark,
// unmark removes one, settext diffs the whole document, undo and redo
// walk the edit history by the given number of steps.
type editOp struct {
	Start   *int    `json:"start"`
	End     *int    `json:"end"`
	Text    *string `json:"text"`
	Mark    string  `json:"mark"`
	Offset  *int    `json:"offset"`
	Unmark  string  `json:"unmark"`
	SetText *string `json:"settext"`
	Undo    *int    `json:"undo"`
	Redo    *int    `json:"redo"`
}

// applyEdits runs a JSONL edit script against the engine, printing the
// change record for every document edit.
func applyEdits(eng *engine.Engine, path string, jsonOut bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var op editOp
		if err := json.Unmarshal([]byte(line), &op); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := applyOp(eng, &op, jsonOut); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	return sc.Err()
}

func applyOp(eng *engine.Engine, op *editOp, jsonOut bool) error {
	switch {
	case op.Mark != "":
		if op.Offset == nil {
			return errors.New("mark requires an offset")
		}
		return eng.SetMark(op.Mark, *op.Offset)

	case op.Unmark != "":
		if !eng.RemoveMark(op.Unmark) {
			return fmt.Errorf("%w: %q", engine.ErrNoMark, op.Unmark)
		}
		return nil

	case op.SetText != nil:
		changes, err := eng.UpdateText(*op.SetText)
		for _, ch := range changes {
			printChange(ch, jsonOut)
		}
		return err

	case op.Undo != nil:
		for i := 0; i < max(*op.Undo, 1); i++ {
			if err := eng.Undo(); err != nil {
				return err
			}
		}
		return nil

	case op.Redo != nil:
		for i := 0; i < max(*op.Redo, 1); i++ {
			if err := eng.Redo(); err != nil {
				return err
			}
		}
		return nil

	case op.Start != nil:
		start := *op.Start
		end := start
		if op.End != nil {
			end = *op.End
		}
		var text string
		if op.Text != nil {
			text = *op.Text
		}
		if start < 0 || end < start || end > eng.Length() {
			return fmt.Errorf("replace range [%d,%d) out of bounds for length %d", start, end, eng.Length())
		}
		ch, err := eng.Replace(start, end, text)
		if err != nil {
			return err
		}
		printChange(ch, jsonOut)
		return nil
	}
	return errors.New("unrecognized edit operation")
}
