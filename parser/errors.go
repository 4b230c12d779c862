package parser

import (
	"errors"
	"fmt"

	"github.com/mgechev/ngcss/scanner"
	"github.com/mgechev/ngcss/token"
)

// ErrParse indicates a syntax error. Every *Error wraps it.
var ErrParse = errors.New("parse error")

// Error represents a syntax error.
type Error struct {
	URL     string      // source the style sheet was read from, if known
	Token   token.Token // token at which the error was detected
	Message string      // raw message, without position or excerpt
	Excerpt string      // offending source line with a caret under the column
}

// newError returns an error for tok with an excerpt taken from src.
func newError(src, url string, tok token.Token, msg string) *Error {
	return &Error{URL: url, Token: tok, Message: msg, Excerpt: token.Excerpt(src, tok.Pos)}
}

// Pos returns the position of the offending token.
func (e *Error) Pos() token.Pos { return e.Token.Pos }

// Error returns the formatted message including the source excerpt.
func (e *Error) Error() string {
	msg := scanner.FormatMessage(e.Message, e.Token.Pos, e.Excerpt)
	if e.URL != "" {
		return e.URL + ": " + msg
	}
	return msg
}

// Unwrap returns ErrParse.
func (e *Error) Unwrap() error { return ErrParse }

// ErrorList represents a list of lexical and syntax errors in the order they
// were found. Entries are either *scanner.Error or *Error.
type ErrorList []error

// Error returns the first error and the number of remaining ones.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}

// Unwrap returns the errors in the list so errors.Is and errors.As can match
// ErrLex and ErrParse.
func (a ErrorList) Unwrap() []error { return a }

// err returns the list as an error, or nil if it is empty.
func (a ErrorList) err() error {
	if len(a) == 0 {
		return nil
	}
	return a
}

// Errors returns the individual errors held by err. It returns nil for a nil
// error and a single-element list for errors that are not an ErrorList.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	return []error{err}
}
