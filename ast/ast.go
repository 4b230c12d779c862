package ast

import (
	"strconv"

	"github.com/mgechev/ngcss/token"
)

// Node represents a node in the CSS syntax tree.
//
// The set of nodes is closed: only types in this package implement Node.
type Node interface {
	Pos() token.Pos // position of the first character of the node
	End() token.Pos // position immediately after the node
	Accept(v Visitor, ctx any) any
	node()
}

func (*StyleSheet) node()           {}
func (*Comment) node()              {}
func (*InlineRule) node()           {}
func (*AtRulePredicate) node()      {}
func (*KeyframesRule) node()        {}
func (*KeyframeDefinition) node()   {}
func (*MediaQueryRule) node()       {}
func (*BlockRule) node()            {}
func (*SelectorRule) node()         {}
func (*Selector) node()             {}
func (*SimpleSelector) node()       {}
func (*PseudoSelector) node()       {}
func (*Declaration) node()          {}
func (*StyleValue) node()           {}
func (*Block) node()                {}
func (*StylesBlock) node()          {}
func (*UnknownRule) node()          {}
func (*UnknownTokenListRule) node() {}

// Rule represents an entry of a style sheet or of a rule block.
type Rule interface {
	Node
	rule()
}

func (*Comment) rule()              {}
func (*InlineRule) rule()           {}
func (*KeyframesRule) rule()        {}
func (*KeyframeDefinition) rule()   {}
func (*MediaQueryRule) rule()       {}
func (*BlockRule) rule()            {}
func (*SelectorRule) rule()         {}
func (*UnknownRule) rule()          {}
func (*UnknownTokenListRule) rule() {}

// Span is the source range covered by a node.
type Span struct {
	From token.Pos
	To   token.Pos
}

// Pos returns the start of the span.
func (s Span) Pos() token.Pos { return s.From }

// End returns the position immediately after the span.
func (s Span) End() token.Pos { return s.To }

// SpanOf returns the span covering the tokens from first to last.
func SpanOf(first, last token.Token) Span {
	return Span{From: first.Pos, To: last.End}
}

// BlockType identifies the kind of a rule.
type BlockType int

const (
	UnsupportedBlock BlockType = iota
	ImportBlock
	CharsetBlock
	NamespaceBlock
	SupportsBlock
	KeyframesBlock
	MediaQueryBlock
	SelectorBlock
	FontFaceBlock
	PageBlock
	DocumentBlock
	ViewportBlock
)

var blockTypes = [...]string{
	UnsupportedBlock: "unsupported",
	ImportBlock:      "import",
	CharsetBlock:     "charset",
	NamespaceBlock:   "namespace",
	SupportsBlock:    "supports",
	KeyframesBlock:   "keyframes",
	MediaQueryBlock:  "media",
	SelectorBlock:    "selector",
	FontFaceBlock:    "font-face",
	PageBlock:        "page",
	DocumentBlock:    "document",
	ViewportBlock:    "viewport",
}

// String returns the at-keyword name of the block type, without "@".
func (t BlockType) String() string {
	if t >= 0 && t < BlockType(len(blockTypes)) {
		return blockTypes[t]
	}
	return "BlockType(" + strconv.Itoa(int(t)) + ")"
}

// TypeOf returns the block type of a rule.
func TypeOf(r Rule) BlockType {
	switch r := r.(type) {
	case *InlineRule:
		return r.Type
	case *BlockRule:
		return r.Type
	case *KeyframesRule, *KeyframeDefinition:
		return KeyframesBlock
	case *MediaQueryRule:
		return MediaQueryBlock
	case *SelectorRule:
		return SelectorBlock
	}
	return UnsupportedBlock
}

// StyleSheet represents the root of a parsed style sheet.
type StyleSheet struct {
	Span
	Rules []Rule
}

// Comment represents a comment kept as a block entry when comment tracking
// is enabled.
type Comment struct {
	Span
	Token token.Token
}

// InlineRule represents an at-rule terminated by a semicolon:
// @import, @charset and @namespace.
type InlineRule struct {
	Span
	Type    BlockType
	Keyword token.Token
	Query   *AtRulePredicate
}

// AtRulePredicate represents the free-form expression between an at-keyword
// and its block or terminating semicolon.
type AtRulePredicate struct {
	Span
	Text   string
	Tokens []token.Token
}

// KeyframesRule represents an @keyframes rule.
type KeyframesRule struct {
	Span
	Keyword token.Token
	Name    *token.Token
	Block   *Block
}

// Definitions returns the keyframe definitions of the rule's block.
func (r *KeyframesRule) Definitions() []*KeyframeDefinition {
	var a []*KeyframeDefinition
	for _, e := range r.Block.Entries {
		if d, ok := e.(*KeyframeDefinition); ok {
			a = append(a, d)
		}
	}
	return a
}

// KeyframeDefinition represents one step block inside @keyframes,
// e.g. "from, 50% { opacity: 0 }".
type KeyframeDefinition struct {
	Span
	Steps []token.Token
	Name  token.Token // steps merged into one comma-separated token
	Block *StylesBlock
}

// MediaQueryRule represents an @media rule.
type MediaQueryRule struct {
	Span
	Keyword token.Token
	Query   *AtRulePredicate
	Block   *Block
}

// BlockRule represents the remaining at-rules that own a block:
// @supports, @document, @page, @font-face and @viewport.
type BlockRule struct {
	Span
	Type    BlockType
	Keyword token.Token
	Query   *AtRulePredicate
	Block   *Block
}

// SelectorRule represents a selector list followed by a declaration block.
type SelectorRule struct {
	Span
	Selectors []*Selector
	Block     *StylesBlock
}

// Selector represents a complex selector: simple selectors joined by combinators.
type Selector struct {
	Span
	Parts []*SimpleSelector
	Text  string
}

// SimpleSelector represents a compound selector such as "a.b#c[d]:hover".
// Combinator holds the combinator following it, if any: " ", ">", "+", "~",
// ">>>" or "/deep/".
type SimpleSelector struct {
	Span
	Tokens          []token.Token
	Text            string
	PseudoSelectors []*PseudoSelector
	Combinator      string
}

// PseudoSelector represents a pseudo-class or pseudo-element. Arguments that
// parse as a selector list are available in Inner; otherwise only Tokens
// carries them.
type PseudoSelector struct {
	Span
	Text    string
	Name    string
	Element bool // "::name"
	Tokens  []token.Token
	Inner   []*Selector
}

// Declaration represents a property/value pair.
type Declaration struct {
	Span
	Property  token.Token
	Value     *StyleValue
	Important bool
}

// StyleValue represents a declaration value. Text is the verbatim source.
type StyleValue struct {
	Span
	Tokens []token.Token
	Text   string
}

// Block represents a {-block containing rules or declarations.
type Block struct {
	Span
	Entries []Node
}

// StylesBlock represents a {-block of declarations.
type StylesBlock struct {
	Span
	Entries      []Node // declarations, and comments when tracked
	Declarations []*Declaration
}

// UnknownRule represents an unrecognized at-rule kept as raw tokens.
type UnknownRule struct {
	Span
	Name   string
	Tokens []token.Token
}

// UnknownTokenListRule represents tokens skipped during error recovery.
type UnknownTokenListRule struct {
	Span
	Tokens []token.Token
}

// Source returns the slice of src covered by n.
func Source(n Node, src string) string {
	from, to := n.Pos().Offset, n.End().Offset
	if from < 0 || to > len(src) || from > to {
		return ""
	}
	return src[from:to]
}
