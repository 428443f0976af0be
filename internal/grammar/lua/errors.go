package lua

import "errors"

// Errors for Lua grammar operations.
var (
	// ErrClosed is returned when parsing with a closed grammar.
	ErrClosed = errors.New("lua grammar is closed")

	// ErrNoParse is returned when a script does not define a global
	// parse function.
	ErrNoParse = errors.New("lua script does not define parse(text)")

	// ErrBadOutput is returned when parse returns anything other than an
	// array of block tables covering the input.
	ErrBadOutput = errors.New("lua parse returned invalid blocks")
)
