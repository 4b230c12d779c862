package scanner

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mgechev/ngcss/token"
)

// eof represents the end of the input.
const eof rune = -1

// Scanner implements a mode-sensitive CSS scanner.
//
// The scanner works on a fully buffered string. The same characters can be
// tokenized differently depending on the current mode, which the parser sets
// before descending into a grammar production and restores afterwards.
type Scanner struct {
	input         string
	trackComments bool
	mode          Mode

	pos   token.Pos // position of ch
	ch    rune      // current code point, eof at the end of input
	width int       // byte width of ch
}

// New returns a new instance of Scanner positioned at the start of input.
// When trackComments is set, comments are returned as Comment tokens instead
// of being skipped.
func New(input string, trackComments bool) *Scanner {
	s := &Scanner{input: input, trackComments: trackComments}
	s.decode()
	return s
}

// Mode returns the current scanning mode.
func (s *Scanner) Mode() Mode { return s.mode }

// SetMode changes the scanning mode for subsequent calls to Scan.
func (s *Scanner) SetMode(m Mode) { s.mode = m }

// Pos returns the position of the next code point.
func (s *Scanner) Pos() token.Pos { return s.pos }

// Peek returns the next code point without consuming it, or -1 at the end.
func (s *Scanner) Peek() rune { return s.ch }

// PeekAt returns the code point k positions ahead of the next one.
// PeekAt(0) is equivalent to Peek.
func (s *Scanner) PeekAt(k int) rune {
	off := s.pos.Offset
	for i := 0; ; i++ {
		if off >= len(s.input) {
			return eof
		}
		ch, w := utf8.DecodeRuneInString(s.input[off:])
		if i == k {
			return ch
		}
		off += w
	}
}

// Advance consumes the next code point. It is a no-op at the end of input.
func (s *Scanner) Advance() {
	if s.ch == eof {
		return
	}
	if s.ch == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column++
	}
	s.pos.Offset += s.width
	s.decode()
}

// Snapshot captures the position of the scanner.
type Snapshot struct {
	pos token.Pos
}

// Snapshot returns the current position so it can be restored later.
func (s *Scanner) Snapshot() Snapshot {
	return Snapshot{pos: s.pos}
}

// Restore moves the scanner back to a previously taken snapshot.
// The mode is left untouched.
func (s *Scanner) Restore(snap Snapshot) {
	s.pos = snap.pos
	s.decode()
}

// decode reads the code point at the current offset.
func (s *Scanner) decode() {
	if s.pos.Offset >= len(s.input) {
		s.ch, s.width = eof, 0
		return
	}
	s.ch, s.width = utf8.DecodeRuneInString(s.input[s.pos.Offset:])
}

// Scan returns the next token. Malformed input yields an Invalid token along
// with an error describing it; scanning can continue afterwards. Once the end
// of input is reached every call returns an EOF token.
func (s *Scanner) Scan() (token.Token, *Error) {
	for {
		if s.mode.tracksWhitespace() {
			if isWhitespace(s.ch) {
				return s.scanWhitespace(), nil
			}
		} else {
			s.skipWhitespace()
		}

		if s.ch == '/' && s.PeekAt(1) == '*' {
			tok, err := s.scanComment()
			if err != nil || s.trackComments {
				return tok, err
			}
			continue
		}
		break
	}

	start := s.pos
	switch ch := s.ch; {
	case ch == eof:
		return token.Token{Kind: token.EOF, Pos: start, End: start}, nil
	case ch == '"' || ch == '\'':
		return s.scanString()
	case s.startsNumber():
		return s.scanNumber(), nil
	case ch == '@' && startsIdent(s.PeekAt(1), s.PeekAt(2), s.PeekAt(3)):
		s.Advance()
		s.scanName()
		return s.token(token.AtKeyword, start), nil
	case startsIdent(ch, s.PeekAt(1), s.PeekAt(2)):
		s.scanName()
		return s.token(token.Identifier, start), nil
	case ch == '\\':
		s.Advance()
		return s.invalid(start, "invalid escape")
	case isNonPrintable(ch):
		s.Advance()
		return s.invalid(start, "unexpected character "+strconv.QuoteRune(ch))
	default:
		s.Advance()
		return s.token(token.Character, start), nil
	}
}

// scanWhitespace consumes a contiguous run of whitespace.
func (s *Scanner) scanWhitespace() token.Token {
	start := s.pos
	s.skipWhitespace()
	return s.token(token.Whitespace, start)
}

// skipWhitespace consumes whitespace without producing a token.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.Advance()
	}
}

// scanComment consumes a comment, including the "/*" and "*/" delimiters.
func (s *Scanner) scanComment() (token.Token, *Error) {
	start := s.pos
	s.Advance()
	s.Advance()
	for {
		if s.ch == eof {
			return s.invalid(start, "unterminated comment")
		}
		if s.ch == '*' && s.PeekAt(1) == '/' {
			s.Advance()
			s.Advance()
			return s.token(token.Comment, start), nil
		}
		s.Advance()
	}
}

// scanString consumes a quoted string.
//
// A newline or the end of input before the closing quote makes the string
// invalid. In that case only the opening quote is consumed so the rest of the
// line is scanned again as regular tokens.
func (s *Scanner) scanString() (token.Token, *Error) {
	start, quote := s.pos, s.ch
	s.Advance()
	for {
		switch s.ch {
		case quote:
			s.Advance()
			return s.token(token.String, start), nil
		case eof, '\n', '\r', '\f':
			s.Restore(Snapshot{pos: start})
			s.Advance()
			return s.invalid(start, "unterminated string")
		case '\\':
			s.Advance()
			if s.ch != eof {
				s.Advance()
			}
		default:
			s.Advance()
		}
	}
}

// startsNumber reports whether the next code points start a number in the
// current mode.
func (s *Scanner) startsNumber() bool {
	switch ch := s.ch; {
	case isDigit(ch):
		return true
	case ch == '.':
		return !s.mode.isSelector() && isDigit(s.PeekAt(1))
	case ch == '+' || ch == '-':
		if !s.mode.allowsSignedNumbers() {
			return false
		}
		next := s.PeekAt(1)
		return isDigit(next) || (next == '.' && isDigit(s.PeekAt(2)))
	}
	return false
}

// scanNumber consumes an integer or decimal number.
//
// Units are not part of the number: "10px" is a Number followed by an
// adjoining Identifier. Two modes glue a suffix onto the number and return a
// single IdentifierOrNumber token: keyframe selectors ("50%") and pseudo-selector
// arguments ("2n").
func (s *Scanner) scanNumber() token.Token {
	start := s.pos
	if s.ch == '+' || s.ch == '-' {
		s.Advance()
	}
	s.scanDigits()
	if s.ch == '.' && isDigit(s.PeekAt(1)) {
		s.Advance()
		s.scanDigits()
	}
	num, _ := strconv.ParseFloat(s.input[start.Offset:s.pos.Offset], 64)

	kind := token.Number
	switch {
	case s.mode == KeyframeBlock && s.ch == '%':
		s.Advance()
		kind = token.IdentifierOrNumber
	case s.mode == PseudoSelectorWithArguments && isNameStart(s.ch):
		s.scanName()
		kind = token.IdentifierOrNumber
	}

	tok := s.token(kind, start)
	tok.Number = num
	return tok
}

// scanDigits consumes a contiguous series of digits.
func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.Advance()
	}
}

// scanName consumes name code points and escapes.
func (s *Scanner) scanName() {
	for {
		if isName(s.ch) {
			s.Advance()
		} else if s.ch == '\\' && isValidEscape(s.ch, s.PeekAt(1)) {
			s.scanEscape()
		} else {
			return
		}
	}
}

// scanEscape consumes a backslash escape: either up to six hex digits and an
// optional trailing whitespace, or a single escaped code point.
func (s *Scanner) scanEscape() {
	s.Advance()
	if !isHexDigit(s.ch) {
		s.Advance()
		return
	}
	for i := 0; i < 6 && isHexDigit(s.ch); i++ {
		s.Advance()
	}
	if isWhitespace(s.ch) {
		s.Advance()
	}
}

// token returns a token of the given kind spanning from start to the current position.
func (s *Scanner) token(kind token.Kind, start token.Pos) token.Token {
	return token.Token{
		Kind:  kind,
		Value: s.input[start.Offset:s.pos.Offset],
		Pos:   start,
		End:   s.pos,
	}
}

// invalid returns an Invalid token spanning from start to the current
// position together with the matching error.
func (s *Scanner) invalid(start token.Pos, msg string) (token.Token, *Error) {
	tok := s.token(token.Invalid, start)
	return tok, NewError(s.input, tok, msg)
}

// startsIdent checks if the three code points would start an identifier.
func startsIdent(ch0, ch1, ch2 rune) bool {
	switch {
	case ch0 == '-':
		return isNameStart(ch1) || ch1 == '-' || isValidEscape(ch1, ch2)
	case isNameStart(ch0):
		return true
	case ch0 == '\\':
		return isValidEscape(ch0, ch1)
	}
	return false
}

// isValidEscape checks if the two code points are a valid escape.
func isValidEscape(ch0, ch1 rune) bool {
	return ch0 == '\\' && ch1 != '\n' && ch1 != '\r' && ch1 != '\f' && ch1 != eof
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// isLetter returns true if the rune is a letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isHexDigit returns true if the rune is a hex digit.
func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNameStart returns true if the rune can start a name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || ch >= 0x80 || ch == '_'
}

// isName returns true if the character is a name code point.
func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

// isNonPrintable returns true if the character is non-printable.
func isNonPrintable(ch rune) bool {
	return (ch >= 0 && ch <= 0x08) || ch == 0x0B || (ch >= 0x0E && ch <= 0x1F) || ch == 0x7F
}

// Mode represents a scanning context.
type Mode int

const (
	All Mode = iota
	AllTrackWS
	Selector
	PseudoSelector
	PseudoSelectorWithArguments
	AttributeSelector
	AtRuleQuery
	MediaQuery
	Block
	KeyframeBlock
	StyleBlock
	StyleValue
	StyleValueFunction
	StyleCalcFunction
)

var modes = [...]string{
	All:                         "ALL",
	AllTrackWS:                  "ALL_TRACK_WS",
	Selector:                    "SELECTOR",
	PseudoSelector:              "PSEUDO_SELECTOR",
	PseudoSelectorWithArguments: "PSEUDO_SELECTOR_WITH_ARGUMENTS",
	AttributeSelector:           "ATTRIBUTE_SELECTOR",
	AtRuleQuery:                 "AT_RULE_QUERY",
	MediaQuery:                  "MEDIA_QUERY",
	Block:                       "BLOCK",
	KeyframeBlock:               "KEYFRAME_BLOCK",
	StyleBlock:                  "STYLE_BLOCK",
	StyleValue:                  "STYLE_VALUE",
	StyleValueFunction:          "STYLE_VALUE_FUNCTION",
	StyleCalcFunction:           "STYLE_CALC_FUNCTION",
}

// String returns the name of the mode.
func (m Mode) String() string {
	if m >= 0 && m < Mode(len(modes)) {
		return modes[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode returns the mode with the given name, case-insensitively.
func ParseMode(name string) (Mode, bool) {
	for m, s := range modes {
		if strings.EqualFold(s, name) {
			return Mode(m), true
		}
	}
	return 0, false
}

// tracksWhitespace reports whether whitespace is returned as a token.
// Descendant combinators and verbatim values depend on it.
func (m Mode) tracksWhitespace() bool {
	switch m {
	case AllTrackWS, Selector, PseudoSelector, StyleValue:
		return true
	}
	return false
}

// isSelector reports whether m is one of the selector modes.
func (m Mode) isSelector() bool {
	switch m {
	case Selector, PseudoSelector, AttributeSelector:
		return true
	}
	return false
}

// allowsSignedNumbers reports whether "+1" and "-1" scan as numbers.
// In selectors "+" is a combinator and inside calc() it is an operator.
func (m Mode) allowsSignedNumbers() bool {
	return !m.isSelector() && m != StyleCalcFunction
}
