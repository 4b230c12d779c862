// Command cssparse parses CSS files and prints their syntax tree outline
// followed by any diagnostics.
//
// Usage:
//
//	cssparse [-comments] [-tokens] [-mode name] [-quiet] file...
//
// The exit code is 1 when any file fails to read or has errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	css "github.com/mgechev/ngcss"
	"github.com/mgechev/ngcss/parser"
	"github.com/mgechev/ngcss/scanner"
	"github.com/mgechev/ngcss/token"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	locStyle     = lipgloss.NewStyle().Bold(true)
	excerptStyle = lipgloss.NewStyle().Faint(true)
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	m := NewMain()
	if err := m.Run(os.Args[1:]...); err != nil {
		if err != errFailed {
			fmt.Fprintln(m.Stderr, err)
		}
		os.Exit(1)
	}
}

// errFailed is returned by Run when diagnostics were already printed.
var errFailed = errors.New("errors found")

// Main represents the command line program.
type Main struct {
	Stdout io.Writer
	Stderr io.Writer

	comments bool
	tokens   bool
	quiet    bool
	mode     scanner.Mode
}

// NewMain returns a program writing to the standard streams.
func NewMain() *Main {
	return &Main{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run parses the flags and processes every file argument.
func (m *Main) Run(args ...string) error {
	fs := flag.NewFlagSet("cssparse", flag.ContinueOnError)
	fs.SetOutput(m.Stderr)
	fs.BoolVar(&m.comments, "comments", false, "keep comments in the tree")
	fs.BoolVar(&m.tokens, "tokens", false, "print the token stream instead of the tree")
	fs.BoolVar(&m.quiet, "quiet", false, "print diagnostics only")
	mode := fs.String("mode", "ALL", "scanner mode used with -tokens")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: cssparse [-comments] [-tokens] [-mode name] [-quiet] file...")
	}

	var ok bool
	if m.mode, ok = scanner.ParseMode(*mode); !ok {
		return fmt.Errorf("unknown scanner mode %q", *mode)
	}

	failed := false
	for _, path := range fs.Args() {
		if err := m.process(path); err != nil {
			if err != errFailed {
				fmt.Fprintln(m.Stderr, err)
			}
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// process handles a single file.
func (m *Main) process(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if m.tokens {
		text, err := css.Decode(b)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		toks, err := css.Tokenize(text, m.mode, m.comments)
		if !m.quiet {
			m.printTokens(toks)
		}
		return m.report(err)
	}

	ss, err := css.Parse(b, path, &parser.Options{TrackComments: m.comments})
	if !m.quiet {
		if err := css.Dump(m.Stdout, ss); err != nil {
			return err
		}
	}
	return m.report(err)
}

// printTokens writes one token per line.
func (m *Main) printTokens(toks []token.Token) {
	for _, tok := range toks {
		fmt.Fprintf(m.Stdout, "%s\t%s\t%q\n", tok.Pos, tok.Kind, tok.Value)
	}
}

// report prints every diagnostic held by err and returns errFailed if any.
func (m *Main) report(err error) error {
	if err == nil {
		return nil
	}
	for _, e := range parser.Errors(err) {
		fmt.Fprintln(m.Stderr, format(e))
	}
	return errFailed
}

// format renders a diagnostic with its location and a styled excerpt.
func format(err error) string {
	var (
		loc, msg, excerpt string
		perr              *parser.Error
		lerr              *scanner.Error
	)
	switch {
	case errors.As(err, &perr):
		loc, msg, excerpt = perr.URL+":"+perr.Pos().String(), perr.Message, perr.Excerpt
	case errors.As(err, &lerr):
		loc, msg, excerpt = lerr.Pos().String(), lerr.Message, lerr.Excerpt
	default:
		return errorStyle.Render("error") + " " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render("error") + " " + locStyle.Render(loc) + " " + msg)
	if line, caret, ok := strings.Cut(excerpt, "\n"); ok {
		sb.WriteString("\n    " + excerptStyle.Render(line))
		sb.WriteString("\n    " + caretStyle.Render(caret))
	}
	return sb.String()
}
