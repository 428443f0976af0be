// Package lua runs user-supplied grammar scripts. A script defines a
// global parse(text) function returning an array of {type=..., text=...}
// tables; extra table fields pass through as block fields. Output must
// obey the parser contract: block texts are non-empty and concatenate
// back to the input.
//
// gopher-lua's LState is not goroutine-safe, so a Grammar serializes all
// calls through a mutex. Scripts run with only the base, table, string,
// and math libraries open.
package lua

import (
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockdoc/internal/engine/document"
)

const parseGlobal = "parse"

// Grammar is a Lua-scripted block parser. Its Parse method satisfies
// document.ParseFunc.
type Grammar struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// New compiles a grammar script and validates that it defines a global
// parse function. The caller owns the returned Grammar and must Close it.
func New(script string) (*Grammar, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua grammar: %w", err)
	}
	if L.GetGlobal(parseGlobal).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoParse
	}
	return &Grammar{L: L}, nil
}

// openSafeLibraries opens base, table, string, and math. io, os, debug,
// and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Parse runs the script's parse function over text and converts its
// output to blocks.
func (g *Grammar) Parse(text string) ([]*document.Block, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrClosed
	}

	ret, err := g.call(text)
	if err != nil {
		return nil, err
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: parse returned %s, want table", ErrBadOutput, ret.Type())
	}
	return toBlocks(tbl, text)
}

// call invokes parse(text) and returns its single result.
func (g *Grammar) call(text string) (ret lua.LValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	g.L.Push(g.L.GetGlobal(parseGlobal))
	g.L.Push(lua.LString(text))
	if err := g.L.PCall(1, 1, nil); err != nil {
		return nil, fmt.Errorf("lua grammar: %w", err)
	}
	ret = g.L.Get(-1)
	g.L.Pop(1)
	return ret, nil
}

// Close releases the Lua state. Parse returns ErrClosed afterwards.
func (g *Grammar) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.L.Close()
	g.closed = true
	return nil
}

// toBlocks converts the script's result array, checking the parser
// contract element by element.
func toBlocks(tbl *lua.LTable, text string) ([]*document.Block, error) {
	n := tbl.Len()
	blocks := make([]*document.Block, 0, n)
	off := 0
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a table", ErrBadOutput, i)
		}
		b, err := toBlock(entry, i)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(text[off:], b.Text) {
			return nil, fmt.Errorf("%w: element %d text diverges from input at offset %d", ErrBadOutput, i, off)
		}
		off += len(b.Text)
		blocks = append(blocks, b)
	}
	if off != len(text) {
		return nil, fmt.Errorf("%w: blocks cover %d of %d bytes", ErrBadOutput, off, len(text))
	}
	return blocks, nil
}

// toBlock maps one result table onto a Block. "type" and "text" are
// reserved keys; everything else lands in Fields.
func toBlock(entry *lua.LTable, i int) (*document.Block, error) {
	b := &document.Block{}
	var fieldErr error
	sawText := false

	entry.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || fieldErr != nil {
			return
		}
		switch string(ks) {
		case "type":
			if s, ok := v.(lua.LString); ok {
				b.Type = string(s)
			} else {
				fieldErr = fmt.Errorf("%w: element %d type is %s, want string", ErrBadOutput, i, v.Type())
			}
		case "text":
			if s, ok := v.(lua.LString); ok {
				b.Text = string(s)
				sawText = true
			} else {
				fieldErr = fmt.Errorf("%w: element %d text is %s, want string", ErrBadOutput, i, v.Type())
			}
		default:
			if b.Fields == nil {
				b.Fields = map[string]any{}
			}
			b.Fields[string(ks)] = toGoValue(v, make(map[*lua.LTable]bool))
		}
	})

	if fieldErr != nil {
		return nil, fieldErr
	}
	if !sawText || b.Text == "" {
		return nil, fmt.Errorf("%w: element %d has no text", ErrBadOutput, i)
	}
	return b, nil
}
