package document

import "errors"

var (
	// ErrNoParser indicates the store was asked to parse text but no
	// parser has been configured.
	ErrNoParser = errors.New("no parser configured")

	// ErrParse wraps a failure reported by the configured parser.
	ErrParse = errors.New("parse failed")

	// ErrParseMismatch indicates the parser returned blocks whose texts
	// do not reassemble into the input it was given.
	ErrParseMismatch = errors.New("parser output does not reassemble its input")

	// ErrMarkRange indicates a mark was set outside the document.
	ErrMarkRange = errors.New("mark offset out of range")

	// ErrMarkName indicates an empty or otherwise unusable mark name.
	ErrMarkName = errors.New("invalid mark name")

	// ErrNoMark indicates a named mark does not exist.
	ErrNoMark = errors.New("no such mark")

	// ErrCorrupt indicates a consistency check found the document
	// structure damaged.
	ErrCorrupt = errors.New("document structure corrupt")
)
