package token

import (
	"strconv"
	"strings"
)

// Kind represents the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	String
	Comment
	Identifier
	Number
	IdentifierOrNumber
	AtKeyword
	Character
	Whitespace
	Invalid
)

var kinds = [...]string{
	EOF:                "EOF",
	String:             "STRING",
	Comment:            "COMMENT",
	Identifier:         "IDENT",
	Number:             "NUMBER",
	IdentifierOrNumber: "IDENT_OR_NUMBER",
	AtKeyword:          "ATKEYWORD",
	Character:          "CHAR",
	Whitespace:         "WHITESPACE",
	Invalid:            "INVALID",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k >= 0 && k < Kind(len(kinds)) {
		return kinds[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Pos specifies the position of a code point in the source text.
// Offset is a byte offset. Line and Column are both zero-based and Column
// counts code points from the start of the line.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Before reports whether p comes strictly before q.
func (p Pos) Before(q Pos) bool {
	return p.Offset < q.Offset
}

// String returns the 1-based "line:column" form of the position.
func (p Pos) String() string {
	return strconv.Itoa(p.Line+1) + ":" + strconv.Itoa(p.Column+1)
}

// Token represents a lexical token.
//
// Value always holds the raw source text of the token: strings keep their
// quotes and at-keywords keep the leading "@".
type Token struct {
	Kind   Kind
	Value  string
	Pos    Pos     // position of the first code point
	End    Pos     // position immediately after the last code point
	Number float64 // numeric value of Number and IdentifierOrNumber tokens
}

// String returns the source text of the token, or "EOF".
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Value
}

// Is reports whether t has the given kind and value.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// IsChar reports whether t is the single character ch.
func (t Token) IsChar(ch byte) bool {
	return t.Kind == Character && len(t.Value) == 1 && t.Value[0] == ch
}

// Merge builds a synthetic token from a non-empty run of tokens. The result
// takes its kind and position from the first token, its end from the last one
// and joins all values with sep.
func Merge(tokens []Token, sep string) Token {
	if len(tokens) == 0 {
		panic("token: merge of empty token list")
	}

	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}

	first, last := tokens[0], tokens[len(tokens)-1]
	return Token{
		Kind:   first.Kind,
		Value:  strings.Join(values, sep),
		Pos:    first.Pos,
		End:    last.End,
		Number: first.Number,
	}
}

// Excerpt returns the source line containing pos followed by a line with a
// caret under pos.Column. Tabs before the column are kept so the caret lines
// up in a terminal.
func Excerpt(src string, pos Pos) string {
	if pos.Offset > len(src) {
		pos.Offset = len(src)
	}

	start := strings.LastIndexByte(src[:pos.Offset], '\n') + 1
	end := strings.IndexByte(src[pos.Offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos.Offset
	}
	line := strings.TrimSuffix(src[start:end], "\r")

	var pad strings.Builder
	col := 0
	for _, ch := range line {
		if col >= pos.Column {
			break
		}
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col++
	}
	for ; col < pos.Column; col++ {
		pad.WriteByte(' ')
	}

	return line + "\n" + pad.String() + "^"
}
