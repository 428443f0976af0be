package engine

import (
	"fmt"

	"github.com/dshills/blockdoc/internal/engine/document"
	"github.com/dshills/blockdoc/internal/event"
	"github.com/dshills/blockdoc/internal/grammar"
	lua "github.com/dshills/blockdoc/internal/grammar/lua"
)

// defaultGrammar parses documents when no grammar option is given.
var defaultGrammar document.ParseFunc = grammar.Notes

// Option configures an Engine during creation.
type Option func(*Engine)

// WithName sets the document name carried on changes and events.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// WithContent sets the initial content, loaded before New returns.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.content = content
	}
}

// WithBus publishes the engine's events on an existing bus instead of a
// private one.
func WithBus(bus *event.Bus) Option {
	return func(e *Engine) {
		if bus != nil {
			e.bus = bus
		}
	}
}

// WithMaxUndoEntries caps the undo stack; the oldest entries fall off
// first. Zero or negative keeps the default of 1000.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		e.maxUndo = n
	}
}

// WithGrammar parses the document with parse. Grammar options override
// one another; the last one wins.
func WithGrammar(parse document.ParseFunc) Option {
	return func(e *Engine) {
		e.makeParser = func() (document.ParseFunc, *lua.Grammar, error) {
			return parse, nil, nil
		}
	}
}

// WithGrammarName selects a built-in grammar by name. New fails with
// ErrUnknownGrammar when the name is not one of grammar.Names.
func WithGrammarName(name string) Option {
	return func(e *Engine) {
		e.makeParser = func() (document.ParseFunc, *lua.Grammar, error) {
			parse, ok := grammar.ByName(name)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, name)
			}
			return parse, nil, nil
		}
	}
}

// WithLuaGrammar compiles script as the document grammar. The compiled
// state is released by Close.
func WithLuaGrammar(script string) Option {
	return func(e *Engine) {
		e.makeParser = func() (document.ParseFunc, *lua.Grammar, error) {
			g, err := lua.New(script)
			if err != nil {
				return nil, nil, err
			}
			return g.Parse, g, nil
		}
	}
}
