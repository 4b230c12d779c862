package scanner

import (
	"errors"
	"fmt"

	"github.com/mgechev/ngcss/token"
)

// ErrLex indicates a scanner failure. Every *Error wraps it.
var ErrLex = errors.New("lex error")

// Error represents a scanning error.
type Error struct {
	Token   token.Token // the Invalid token produced for the malformed input
	Message string      // raw message, without position or excerpt
	Excerpt string      // offending source line with a caret under the column
}

// NewError returns an error for tok with an excerpt taken from src.
func NewError(src string, tok token.Token, msg string) *Error {
	return &Error{Token: tok, Message: msg, Excerpt: token.Excerpt(src, tok.Pos)}
}

// Pos returns the position of the offending token.
func (e *Error) Pos() token.Pos { return e.Token.Pos }

// Error returns the formatted message including the source excerpt.
func (e *Error) Error() string {
	return FormatMessage(e.Message, e.Token.Pos, e.Excerpt)
}

// Unwrap returns ErrLex.
func (e *Error) Unwrap() error { return ErrLex }

// FormatMessage renders a diagnostic as "msg at line L, column C:" followed
// by the excerpt on the next lines. Line and column are printed 1-based.
func FormatMessage(msg string, pos token.Pos, excerpt string) string {
	return fmt.Sprintf("%s at line %d, column %d:\n%s", msg, pos.Line+1, pos.Column+1, excerpt)
}
