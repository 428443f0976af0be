package engine

import (
	"errors"

	"github.com/dshills/blockdoc/internal/engine/document"
	"github.com/dshills/blockdoc/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrUnknownGrammar indicates a grammar name not in grammar.Names.
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// Re-export the document and history sentinels so callers can match
// without importing the inner packages.
var (
	ErrNoParser      = document.ErrNoParser
	ErrParse         = document.ErrParse
	ErrParseMismatch = document.ErrParseMismatch
	ErrMarkRange     = document.ErrMarkRange
	ErrMarkName      = document.ErrMarkName
	ErrNoMark        = document.ErrNoMark
	ErrCorrupt       = document.ErrCorrupt

	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
)
