package main

import (
	"fmt"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/dshills/blockdoc/internal/engine"
)

// Colors for the human-readable views.
var (
	headingColor = color.New(color.FgGreen, color.Bold)
	codeColor    = color.New(color.FgCyan)
	tableColor   = color.New(color.FgMagenta)
	idColor      = color.New(color.Faint)
	changeColor  = color.New(color.FgYellow)
	plainColor   = color.New()
)

func typeColor(typ string) *color.Color {
	switch typ {
	case "heading":
		return headingColor
	case "code":
		return codeColor
	case "table":
		return tableColor
	}
	return plainColor
}

// markState and docState shape the machine-readable rendering used by
// -json, -get, and snapshots.
type markState struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
}

type docState struct {
	Name        string          `json:"name"`
	Grammar     string          `json:"grammar"`
	Length      int             `json:"length"`
	Count       int             `json:"count"`
	Fingerprint string          `json:"fingerprint"`
	Blocks      []*engine.Block `json:"blocks"`
	Marks       []markState     `json:"marks"`
}

func stateOf(eng *engine.Engine, grammar string) docState {
	marks := eng.Marks()
	ms := make([]markState, len(marks))
	for i, m := range marks {
		ms[i] = markState{Name: m.Name, Offset: m.Offset}
	}
	return docState{
		Name:        eng.Name(),
		Grammar:     grammar,
		Length:      eng.Length(),
		Count:       eng.Count(),
		Fingerprint: fmt.Sprintf("%016x", eng.Fingerprint()),
		Blocks:      eng.Blocks(),
		Marks:       ms,
	}
}

func printJSON(eng *engine.Engine, grammar string) error {
	data, err := json.MarshalIndent(stateOf(eng, grammar), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printQuery(eng *engine.Engine, grammar, path string) error {
	data, err := json.Marshal(stateOf(eng, grammar))
	if err != nil {
		return err
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return fmt.Errorf("no value at %q", path)
	}
	fmt.Println(res.String())
	return nil
}

func printBlocks(eng *engine.Engine) {
	off := 0
	i := 0
	eng.Each(func(b *engine.Block) bool {
		typ := b.Type
		if typ == "" {
			typ = "-"
		}
		fmt.Printf("%3d  %s %s [%d,%d) %q\n",
			i,
			idColor.Sprintf("%-10s", b.ID),
			typeColor(b.Type).Sprintf("%-8s", typ),
			off, off+b.Width(), b.Text)
		off += b.Width()
		i++
		return true
	})

	marks := eng.Marks()
	if len(marks) > 0 {
		fmt.Println("marks:")
		for _, m := range marks {
			fmt.Printf("  %s @%d\n", m.Name, m.Offset)
		}
	}
}

func printChange(ch *engine.Change, jsonOut bool) {
	if jsonOut {
		data, _ := json.Marshal(ch)
		fmt.Println(string(data))
		return
	}
	fmt.Println(changeColor.Sprint(ch.Summary()))
}
