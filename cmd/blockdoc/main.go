// Package main is the blockdoc command, an inspector and edit driver
// for block-structured documents.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/dshills/blockdoc/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	grammar    string
	grammarSet bool
	edits      string
	jsonOut    bool
	get        string
	snapshot   string
	restore    string
	verify     bool
	colorMode  string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if err := setupColor(opts.colorMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	eng, gname, err := buildEngine(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer eng.Close()

	if opts.edits != "" {
		if err := applyEdits(eng, opts.edits, opts.jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.snapshot != "" {
		if err := writeSnapshot(eng, gname, opts.snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.verify {
		if err := eng.Check(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("%016x\n", eng.Fingerprint())
		return 0
	}

	switch {
	case opts.get != "":
		if err := printQuery(eng, gname, opts.get); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case opts.jsonOut:
		if err := printJSON(eng, gname); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		printBlocks(eng)
	}
	return 0
}

// buildEngine constructs the engine from a snapshot, a file, or stdin.
// It returns the engine and the grammar spec it was built with.
func buildEngine(opts options) (*engine.Engine, string, error) {
	if opts.restore != "" {
		return restoreEngine(opts)
	}

	gopt, err := grammarOption(opts.grammar)
	if err != nil {
		return nil, "", err
	}
	content, name, err := readInput(opts.file)
	if err != nil {
		return nil, "", err
	}

	eng, err := engine.New(gopt, engine.WithName(name), engine.WithContent(content))
	if err != nil {
		return nil, "", err
	}
	return eng, opts.grammar, nil
}

// grammarOption maps a -grammar spec to an engine option. "lua:PATH"
// loads a script; anything else names a built-in grammar.
func grammarOption(spec string) (engine.Option, error) {
	if path, ok := strings.CutPrefix(spec, "lua:"); ok {
		script, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("lua grammar: %w", err)
		}
		return engine.WithLuaGrammar(string(script)), nil
	}
	return engine.WithGrammarName(spec), nil
}

// readInput reads the positional file, or stdin when input is piped.
// With neither, the document starts empty.
func readInput(file string) (content, name string, err error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return string(data), filepath.Base(file), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return "", "stdin", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", err
	}
	return string(data), "stdin", nil
}

func setupColor(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	default:
		return fmt.Errorf("invalid color mode %q (must be auto, always, or never)", mode)
	}
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.grammar, "grammar", "notes", "Grammar: lines, paragraphs, notes, or lua:PATH")
	flag.StringVar(&opts.grammar, "g", "notes", "Grammar (shorthand)")
	flag.StringVar(&opts.edits, "edits", "", "Apply a JSONL edit script")
	flag.BoolVar(&opts.jsonOut, "json", false, "Machine-readable JSON output")
	flag.StringVar(&opts.get, "get", "", "Print one field of the document state (gjson path)")
	flag.StringVar(&opts.snapshot, "snapshot", "", "Write a compressed snapshot to PATH")
	flag.StringVar(&opts.restore, "restore", "", "Load the document from a snapshot instead of a file")
	flag.BoolVar(&opts.verify, "verify", false, "Check structure and print the fingerprint")
	flag.StringVar(&opts.colorMode, "color", "auto", "Colorize output: auto, always, never")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blockdoc - block document inspector and edit driver\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockdoc [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockdoc notes.md                      Print the block table\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -grammar lines notes.md       Parse line by line\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -edits script.jsonl notes.md  Apply an edit script\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -json notes.md                Dump state as JSON\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -get blocks.0.text notes.md   Query one field\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -snapshot doc.zst notes.md    Snapshot to a file\n")
		fmt.Fprintf(os.Stderr, "  blockdoc -restore doc.zst -verify      Restore and verify\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("blockdoc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "grammar" || f.Name == "g" {
			opts.grammarSet = true
		}
	})

	if args := flag.Args(); len(args) > 0 {
		opts.file = args[0]
	}
	return opts
}
