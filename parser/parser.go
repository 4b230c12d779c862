package parser

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/parse/v2"

	"github.com/mgechev/ngcss/ast"
	"github.com/mgechev/ngcss/scanner"
	"github.com/mgechev/ngcss/token"
)

// tracer traces with key 'css.parser'.
func tracer() tracing.Trace {
	return tracing.Select("css.parser")
}

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is unset.
const DefaultMaxDepth = 64

// Options configures a parse.
type Options struct {
	// TrackComments keeps comments as Comment entries of blocks and style sheets.
	TrackComments bool

	// MaxDepth bounds nested blocks, functions and pseudo-selector arguments.
	MaxDepth int
}

func (o *Options) normalize() Options {
	var n Options
	if o != nil {
		n = *o
	}
	if n.MaxDepth <= 0 {
		n.MaxDepth = DefaultMaxDepth
	}
	return n
}

// parser represents a CSS parser working over a mode-sensitive scanner.
type parser struct {
	s      *scanner.Scanner
	src    string
	url    string
	opt    Options
	errors ErrorList
	depth  int

	// one-token lookahead, tagged with the mode it was scanned in
	buf struct {
		ok   bool
		tok  token.Token
		err  *scanner.Error
		mode scanner.Mode
		snap scanner.Snapshot
	}
}

func newParser(text, url string, opt *Options) *parser {
	o := opt.normalize()
	return &parser{
		s:   scanner.New(text, o.TrackComments),
		src: text,
		url: url,
		opt: o,
	}
}

// ParseStyleSheet parses text into a style sheet. The returned tree is never
// nil. The error, if any, is an ErrorList holding every lexical and syntax
// error in the order they were found.
func ParseStyleSheet(text, url string, opt *Options) (*ast.StyleSheet, error) {
	p := newParser(text, url, opt)
	ss := p.consumeStyleSheet()
	return ss, p.errors.err()
}

// ParseDeclarations parses the body of a declaration block without the
// surrounding braces, as found in style attributes.
func ParseDeclarations(text, url string, opt *Options) ([]*ast.Declaration, error) {
	p := newParser(text, url, opt)
	p.s.SetMode(scanner.StyleBlock)

	var decls []*ast.Declaration
	for {
		_, d := p.consumeDeclarations(false)
		decls = append(decls, d...)

		// A stray '}' does not end a style attribute.
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}
		p.errorf(tok, "unexpected %q", tok)
		p.next()
	}
	return decls, p.errors.err()
}

// fill returns the lookahead token scanned in the current mode. A token that
// was buffered under a different mode is scanned again.
func (p *parser) fill() token.Token {
	mode := p.s.Mode()
	if p.buf.ok {
		if p.buf.mode == mode {
			return p.buf.tok
		}
		p.s.Restore(p.buf.snap)
	}
	p.buf.snap = p.s.Snapshot()
	p.buf.tok, p.buf.err = p.s.Scan()
	p.buf.mode = mode
	p.buf.ok = true
	return p.buf.tok
}

// drop consumes the lookahead token. Lexical errors are recorded only once
// their token is consumed.
func (p *parser) drop() {
	if p.buf.err != nil {
		p.errors = append(p.errors, p.buf.err)
		tracer().Debugf("%s: lex error at %s: %s", p.url, p.buf.err.Pos(), p.buf.err.Message)
	}
	p.buf.ok = false
	p.buf.err = nil
}

// reset discards the lookahead and moves the scanner to snap.
func (p *parser) reset(snap scanner.Snapshot) {
	p.buf.ok = false
	p.buf.err = nil
	p.s.Restore(snap)
}

// peekEntry returns the next token including comments.
func (p *parser) peekEntry() token.Token {
	return p.fill()
}

// peek returns the next non-comment token without consuming it.
func (p *parser) peek() token.Token {
	for {
		tok := p.fill()
		if tok.Kind != token.Comment {
			return tok
		}
		p.drop()
	}
}

// next consumes and returns the next non-comment token.
func (p *parser) next() token.Token {
	tok := p.peek()
	p.drop()
	return tok
}

// nextEntry consumes and returns the next token including comments.
func (p *parser) nextEntry() token.Token {
	tok := p.peekEntry()
	p.drop()
	return tok
}

// skipWhitespace consumes whitespace tokens in modes that report them.
func (p *parser) skipWhitespace() bool {
	var ok bool
	for p.peek().Kind == token.Whitespace {
		p.next()
		ok = true
	}
	return ok
}

// setMode switches the scanner mode and returns the previous one.
func (p *parser) setMode(m scanner.Mode) scanner.Mode {
	prev := p.s.Mode()
	p.s.SetMode(m)
	return prev
}

// errorf records a syntax error at tok.
func (p *parser) errorf(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, newError(p.src, p.url, tok, msg))
	tracer().Debugf("%s: parse error at %s: %s", p.url, tok.Pos, msg)
}

// enter increments the nesting depth. It records an error and returns false
// once the depth exceeds the configured maximum.
func (p *parser) enter(tok token.Token) bool {
	p.depth++
	if p.depth > p.opt.MaxDepth {
		p.errorf(tok, "nesting exceeds maximum depth of %d", p.opt.MaxDepth)
		return false
	}
	return true
}

func (p *parser) leave() { p.depth-- }

// recover skips tokens until a boundary at the current nesting level:
// a ';' (consumed), a '}' closing the enclosing block (not consumed) or EOF.
// If block is set a balanced {}-block (consumed) also ends the run.
func (p *parser) recover(block bool) []token.Token {
	var toks []token.Token
	defer func() {
		tracer().Debugf("%s: recovered after skipping %d tokens", p.url, len(toks))
	}()

	depth := 0
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return toks
		case tok.IsChar(';') && depth == 0:
			toks = append(toks, p.next())
			return toks
		case tok.IsChar('{'):
			depth++
		case tok.IsChar('}'):
			if depth == 0 {
				return toks
			}
			depth--
			if depth == 0 && block {
				toks = append(toks, p.next())
				return toks
			}
		}
		toks = append(toks, p.next())
	}
}

// junk skips to the next rule boundary and returns the skipped tokens as a
// rule. start is the first token of the failed construct.
func (p *parser) junk(start token.Token) *ast.UnknownTokenListRule {
	prev := p.setMode(scanner.All)
	defer p.s.SetMode(prev)

	toks := p.recover(true)
	r := &ast.UnknownTokenListRule{Tokens: toks, Span: ast.Span{From: start.Pos, To: start.End}}
	if len(toks) > 0 && start.End.Before(toks[len(toks)-1].End) {
		r.To = toks[len(toks)-1].End
	}
	return r
}

// consumeStyleSheet consumes rules until EOF.
func (p *parser) consumeStyleSheet() *ast.StyleSheet {
	p.s.SetMode(scanner.Block)
	ss := &ast.StyleSheet{}
	ss.Rules = p.consumeRules(false)
	ss.To = p.peek().Pos
	return ss
}

// consumeRules consumes a list of rules. Nested lists stop before the '}'
// closing their block; the top-level list reports a stray '}' and continues.
func (p *parser) consumeRules(nested bool) []ast.Rule {
	var rules []ast.Rule
	for {
		tok := p.peekEntry()
		switch {
		case tok.Kind == token.EOF:
			return rules
		case tok.IsChar('}'):
			if nested {
				return rules
			}
			p.errorf(tok, "unexpected %q", tok)
			p.next()
			rules = append(rules, &ast.UnknownTokenListRule{Span: ast.SpanOf(tok, tok), Tokens: []token.Token{tok}})
		case tok.Kind == token.Comment:
			p.nextEntry()
			rules = append(rules, &ast.Comment{Span: ast.SpanOf(tok, tok), Token: tok})
		case tok.IsChar(';'):
			p.next()
		case tok.Kind == token.AtKeyword:
			rules = append(rules, p.consumeAtRule())
		default:
			rules = append(rules, p.consumeSelectorRule())
		}
	}
}

// atRuleTypes maps at-keyword names, without vendor prefix, to block types.
var atRuleTypes = []struct {
	name string
	typ  ast.BlockType
}{
	{"import", ast.ImportBlock},
	{"charset", ast.CharsetBlock},
	{"namespace", ast.NamespaceBlock},
	{"supports", ast.SupportsBlock},
	{"keyframes", ast.KeyframesBlock},
	{"media", ast.MediaQueryBlock},
	{"font-face", ast.FontFaceBlock},
	{"page", ast.PageBlock},
	{"document", ast.DocumentBlock},
	{"viewport", ast.ViewportBlock},
}

// BlockTypeOf returns the block type of an at-keyword such as "@media" or
// "@-webkit-keyframes". Matching is case-insensitive.
func BlockTypeOf(keyword string) ast.BlockType {
	name := []byte(keyword)
	if len(name) > 0 && name[0] == '@' {
		name = name[1:]
	}
	name = stripVendorPrefix(name)
	for _, t := range atRuleTypes {
		if parse.EqualFold(name, []byte(t.name)) {
			return t.typ
		}
	}
	return ast.UnsupportedBlock
}

// stripVendorPrefix removes a leading "-vendor-" from name.
func stripVendorPrefix(name []byte) []byte {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return name
	}
	for i := 1; i < len(name)-1; i++ {
		if name[i] == '-' {
			return name[i+1:]
		}
	}
	return name
}

// consumeAtRule consumes an at-rule starting at the next at-keyword.
func (p *parser) consumeAtRule() ast.Rule {
	kw := p.next()
	switch typ := BlockTypeOf(kw.Value); typ {
	case ast.ImportBlock, ast.CharsetBlock, ast.NamespaceBlock:
		return p.consumeInlineRule(kw, typ)
	case ast.KeyframesBlock:
		return p.consumeKeyframesRule(kw)
	case ast.MediaQueryBlock:
		return p.consumeMediaQueryRule(kw)
	case ast.SupportsBlock, ast.DocumentBlock:
		return p.consumeBlockRule(kw, typ, true)
	case ast.PageBlock, ast.FontFaceBlock, ast.ViewportBlock:
		return p.consumeBlockRule(kw, typ, false)
	default:
		return p.consumeUnknownRule(kw)
	}
}

// consumeAtRulePredicate consumes the tokens between the at-keyword kw and the
// '{', ';' or '}' ending it, outside of any brackets. An empty predicate is
// placed at the end of kw.
func (p *parser) consumeAtRulePredicate(kw token.Token, mode scanner.Mode) *ast.AtRulePredicate {
	prev := p.setMode(mode)
	defer p.s.SetMode(prev)

	var toks []token.Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}
		if depth == 0 && (tok.IsChar('{') || tok.IsChar(';') || tok.IsChar('}')) {
			break
		}
		switch {
		case tok.IsChar('(') || tok.IsChar('['):
			depth++
		case (tok.IsChar(')') || tok.IsChar(']')) && depth > 0:
			depth--
		}
		toks = append(toks, p.next())
	}

	pred := &ast.AtRulePredicate{Tokens: toks}
	if len(toks) == 0 {
		pred.Span = ast.Span{From: kw.End, To: kw.End}
		return pred
	}
	pred.Span = ast.SpanOf(toks[0], toks[len(toks)-1])
	pred.Text = ast.Source(pred, p.src)
	return pred
}

// consumeInlineRule consumes an at-rule terminated by ';'.
func (p *parser) consumeInlineRule(kw token.Token, typ ast.BlockType) ast.Rule {
	r := &ast.InlineRule{Type: typ, Keyword: kw}
	r.Query = p.consumeAtRulePredicate(kw, scanner.AtRuleQuery)
	r.Span = ast.Span{From: kw.Pos, To: r.Query.End()}
	malformed := len(r.Query.Tokens) == 0
	if malformed {
		p.errorf(p.peek(), "malformed %s predicate", kw.Value)
	}

	switch tok := p.peek(); {
	case tok.IsChar(';'):
		r.To = p.next().End
	case tok.Kind == token.EOF:
	case malformed:
		p.recover(true)
	default:
		p.errorf(tok, "expected ';' after %s, got %q", kw.Value, tok)
		p.recover(true)
	}
	return r
}

// consumeMediaQueryRule consumes an @media rule.
func (p *parser) consumeMediaQueryRule(kw token.Token) ast.Rule {
	r := &ast.MediaQueryRule{Keyword: kw}
	r.Query = p.consumeAtRulePredicate(kw, scanner.MediaQuery)
	if len(r.Query.Tokens) == 0 {
		p.errorf(p.peek(), "malformed %s predicate", kw.Value)
	}
	r.Block = p.consumeRuleBlock()
	r.Span = ast.Span{From: kw.Pos, To: r.Block.End()}
	return r
}

// consumeBlockRule consumes an at-rule with an optional predicate and a block.
// Rule blocks hold nested rules, the others hold declarations.
func (p *parser) consumeBlockRule(kw token.Token, typ ast.BlockType, rules bool) ast.Rule {
	r := &ast.BlockRule{Type: typ, Keyword: kw}
	if pred := p.consumeAtRulePredicate(kw, scanner.AtRuleQuery); len(pred.Tokens) > 0 {
		r.Query = pred
	} else if rules {
		p.errorf(p.peek(), "malformed %s predicate", kw.Value)
	}

	if rules {
		r.Block = p.consumeRuleBlock()
	} else {
		r.Block = p.consumeDeclarationBlock()
	}
	r.Span = ast.Span{From: kw.Pos, To: r.Block.End()}
	return r
}

// consumeUnknownRule keeps an unrecognized at-rule as raw tokens.
func (p *parser) consumeUnknownRule(kw token.Token) ast.Rule {
	prev := p.setMode(scanner.All)
	defer p.s.SetMode(prev)

	tracer().Debugf("%s: unknown at-rule %s at %s", p.url, kw.Value, kw.Pos)
	toks := append([]token.Token{kw}, p.recover(true)...)
	return &ast.UnknownRule{
		Span:   ast.SpanOf(kw, toks[len(toks)-1]),
		Name:   kw.Value,
		Tokens: toks,
	}
}

// openBlock consumes the '{' opening a block. On failure it records an error
// and returns an empty span at the current position.
func (p *parser) openBlock() (ast.Span, bool) {
	tok := p.peek()
	if !tok.IsChar('{') {
		p.errorf(tok, "expected '{', got %q", tok)
		return ast.Span{From: tok.Pos, To: tok.Pos}, false
	}
	p.next()
	if !p.enter(tok) {
		p.leave()
		toks := p.recover(false)
		end := tok.End
		if len(toks) > 0 {
			end = toks[len(toks)-1].End
		}
		if c := p.peek(); c.IsChar('}') {
			end = p.next().End
		}
		return ast.Span{From: tok.Pos, To: end}, false
	}
	return ast.Span{From: tok.Pos, To: tok.End}, true
}

// closeBlock consumes the '}' closing a block opened at span and returns the
// completed span.
func (p *parser) closeBlock(span ast.Span, last []ast.Node) ast.Span {
	p.leave()
	tok := p.peek()
	if tok.IsChar('}') {
		span.To = p.next().End
		return span
	}
	p.errorf(tok, "expected '}', got %q", tok)
	if len(last) > 0 {
		span.To = last[len(last)-1].End()
	}
	return span
}

// consumeRuleBlock consumes a {-block of rules.
func (p *parser) consumeRuleBlock() *ast.Block {
	prev := p.setMode(scanner.Block)
	defer p.s.SetMode(prev)

	span, ok := p.openBlock()
	b := &ast.Block{Span: span}
	if !ok {
		return b
	}
	for _, r := range p.consumeRules(true) {
		b.Entries = append(b.Entries, r)
	}
	b.Span = p.closeBlock(b.Span, b.Entries)
	return b
}

// consumeDeclarationBlock consumes a {-block of declarations and at-rules.
func (p *parser) consumeDeclarationBlock() *ast.Block {
	prev := p.setMode(scanner.StyleBlock)
	defer p.s.SetMode(prev)

	span, ok := p.openBlock()
	b := &ast.Block{Span: span}
	if !ok {
		return b
	}
	b.Entries, _ = p.consumeDeclarations(true)
	b.Span = p.closeBlock(b.Span, b.Entries)
	return b
}

// consumeStylesBlock consumes a {-block of declarations.
func (p *parser) consumeStylesBlock() *ast.StylesBlock {
	prev := p.setMode(scanner.StyleBlock)
	defer p.s.SetMode(prev)

	span, ok := p.openBlock()
	b := &ast.StylesBlock{Span: span}
	if !ok {
		return b
	}
	b.Entries, b.Declarations = p.consumeDeclarations(false)
	b.Span = p.closeBlock(b.Span, b.Entries)
	return b
}

// consumeKeyframesRule consumes an @keyframes rule.
func (p *parser) consumeKeyframesRule(kw token.Token) ast.Rule {
	r := &ast.KeyframesRule{Keyword: kw}

	pred := p.consumeAtRulePredicate(kw, scanner.AtRuleQuery)
	switch {
	case len(pred.Tokens) == 1 && (pred.Tokens[0].Kind == token.Identifier || pred.Tokens[0].Kind == token.String):
		name := pred.Tokens[0]
		r.Name = &name
	case len(pred.Tokens) == 0:
		p.errorf(p.peek(), "expected name after %s", kw.Value)
	default:
		p.errorf(pred.Tokens[0], "invalid %s name %q", kw.Value, pred.Text)
	}

	r.Block = p.consumeKeyframeBlock()
	r.Span = ast.Span{From: kw.Pos, To: r.Block.End()}
	return r
}

// consumeKeyframeBlock consumes the block of an @keyframes rule.
func (p *parser) consumeKeyframeBlock() *ast.Block {
	prev := p.setMode(scanner.KeyframeBlock)
	defer p.s.SetMode(prev)

	span, ok := p.openBlock()
	b := &ast.Block{Span: span}
	if !ok {
		return b
	}
	for {
		tok := p.peekEntry()
		switch {
		case tok.Kind == token.EOF || tok.IsChar('}'):
			b.Span = p.closeBlock(b.Span, b.Entries)
			return b
		case tok.Kind == token.Comment:
			p.nextEntry()
			b.Entries = append(b.Entries, &ast.Comment{Span: ast.SpanOf(tok, tok), Token: tok})
		case tok.IsChar(';'):
			p.next()
		default:
			b.Entries = append(b.Entries, p.consumeKeyframeDefinition())
		}
	}
}

// consumeKeyframeDefinition consumes "step[, step...] { declarations }".
func (p *parser) consumeKeyframeDefinition() ast.Node {
	start := p.peek()

	var steps []token.Token
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Identifier, token.IdentifierOrNumber, token.Number:
			steps = append(steps, p.next())
		default:
			p.errorf(tok, "expected keyframe selector, got %q", tok)
			return p.junk(start)
		}

		tok = p.peek()
		if tok.IsChar(',') {
			p.next()
			continue
		}
		if tok.IsChar('{') {
			break
		}
		p.errorf(tok, "expected ',' or '{' after keyframe selector, got %q", tok)
		return p.junk(start)
	}

	d := &ast.KeyframeDefinition{Steps: steps, Name: token.Merge(steps, ",")}
	d.Block = p.consumeStylesBlock()
	d.Span = ast.Span{From: steps[0].Pos, To: d.Block.End()}
	return d
}

// consumeSelectorRule consumes a selector list followed by a declaration block.
func (p *parser) consumeSelectorRule() ast.Rule {
	start := p.peek()
	if start.IsChar('{') {
		p.errorf(start, "missing selector")
		return p.junk(start)
	}

	selectors, ok := p.consumeSelectorList('{')
	if !ok {
		return p.junk(start)
	}

	r := &ast.SelectorRule{Selectors: selectors}
	r.Block = p.consumeStylesBlock()
	r.Span = ast.Span{From: selectors[0].Pos(), To: r.Block.End()}
	return r
}

// consumeDeclarations consumes declarations up to the '}' closing the block
// or EOF. With rules set nested at-rules are accepted as entries.
func (p *parser) consumeDeclarations(rules bool) ([]ast.Node, []*ast.Declaration) {
	var entries []ast.Node
	var decls []*ast.Declaration
	for {
		tok := p.peekEntry()
		switch {
		case tok.Kind == token.EOF || tok.IsChar('}'):
			return entries, decls
		case tok.Kind == token.Comment:
			p.nextEntry()
			entries = append(entries, &ast.Comment{Span: ast.SpanOf(tok, tok), Token: tok})
		case tok.IsChar(';'):
			p.next()
		case tok.Kind == token.AtKeyword && rules:
			entries = append(entries, p.consumeAtRule())
		default:
			if d := p.consumeDeclaration(); d != nil {
				entries = append(entries, d)
				decls = append(decls, d)
			}
		}
	}
}

// consumeDeclaration consumes "property: value [;]". It returns nil after
// recording an error and skipping to the next declaration.
func (p *parser) consumeDeclaration() *ast.Declaration {
	prop := p.peek()
	switch {
	case prop.Kind == token.Identifier:
		p.next()
	case prop.IsChar('*'):
		// IE hack prefix, e.g. "*zoom".
		star := p.next()
		name := p.peek()
		if name.Kind != token.Identifier || name.Pos.Offset != star.End.Offset {
			p.errorf(name, "expected property name after %q", star)
			p.recover(false)
			return nil
		}
		p.next()
		prop = token.Merge([]token.Token{star, name}, "")
		prop.Kind = token.Identifier
	default:
		p.errorf(prop, "expected property name, got %q", prop)
		p.recover(false)
		return nil
	}

	if tok := p.peek(); !tok.IsChar(':') {
		p.errorf(tok, "expected ':' after property %q, got %q", prop, tok)
		p.recover(false)
		return nil
	}
	p.next()

	value, ok := p.consumeStyleValue()
	if !ok {
		p.recover(false)
		return nil
	}
	if len(value.Tokens) == 0 {
		p.errorf(p.peek(), "missing value for property %q", prop)
		p.recover(false)
		return nil
	}

	d := &ast.Declaration{Property: prop, Value: value, Important: important(value.Tokens)}
	d.Span = ast.Span{From: prop.Pos, To: value.End()}
	if tok := p.peek(); tok.IsChar(';') {
		d.To = p.next().End
	}
	return d
}

// important reports whether a value ends with "!important".
func important(toks []token.Token) bool {
	i := len(toks) - 1
	for i >= 0 && toks[i].Kind == token.Whitespace {
		i--
	}
	if i < 0 || toks[i].Kind != token.Identifier || !parse.EqualFold([]byte(toks[i].Value), []byte("important")) {
		return false
	}
	for i--; i >= 0 && toks[i].Kind == token.Whitespace; i-- {
	}
	return i >= 0 && toks[i].IsChar('!')
}

// consumeStyleValue consumes a declaration value up to ';', '}' or EOF. The
// value text is kept verbatim. It returns false after recording an error.
func (p *parser) consumeStyleValue() (*ast.StyleValue, bool) {
	prev := p.setMode(scanner.StyleValue)
	defer p.s.SetMode(prev)

	p.skipWhitespace()
	var toks []token.Token
loop:
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.IsChar(';') || tok.IsChar('}'):
			break loop
		case tok.IsChar('{'):
			p.errorf(tok, "unexpected %q in value", tok)
			return nil, false
		case tok.IsChar(')'):
			p.errorf(tok, "unexpected %q in value", tok)
			toks = append(toks, p.next())
		case tok.IsChar('('):
			args, ok := p.consumeFunction(token.Token{})
			toks = append(toks, args...)
			if !ok {
				return nil, false
			}
		case tok.Kind == token.Identifier:
			toks = append(toks, p.next())
			if open := p.peek(); open.IsChar('(') && open.Pos.Offset == tok.End.Offset {
				args, ok := p.consumeFunction(tok)
				toks = append(toks, args...)
				if !ok {
					return nil, false
				}
			}
		default:
			toks = append(toks, p.next())
		}
	}

	for len(toks) > 0 && toks[len(toks)-1].Kind == token.Whitespace {
		toks = toks[:len(toks)-1]
	}

	v := &ast.StyleValue{Tokens: toks}
	if len(toks) == 0 {
		pos := p.peek().Pos
		v.Span = ast.Span{From: pos, To: pos}
		return v, true
	}
	v.Span = ast.SpanOf(toks[0], toks[len(toks)-1])
	v.Text = ast.Source(v, p.src)
	return v, true
}

// isCalc reports whether name is calc() or one of its prefixed variants.
func isCalc(name string) bool {
	return parse.EqualFold(stripVendorPrefix([]byte(name)), []byte("calc"))
}

// consumeFunction consumes a parenthesized argument list, including the
// parentheses. name is the function name, or the zero token for a plain group.
func (p *parser) consumeFunction(name token.Token) ([]token.Token, bool) {
	mode := p.s.Mode()
	switch {
	case name.Kind == token.Identifier && isCalc(name.Value):
		mode = scanner.StyleCalcFunction
	case name.Kind == token.Identifier:
		mode = scanner.StyleValueFunction
	case mode == scanner.StyleValue:
		mode = scanner.StyleValueFunction
	}
	prev := p.setMode(mode)
	defer p.s.SetMode(prev)

	open := p.next()
	toks := []token.Token{open}
	defer p.leave()
	if !p.enter(open) {
		return toks, false
	}

	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.IsChar('}'):
			p.errorf(tok, "unterminated function %s(", name.Value)
			return toks, false
		case tok.IsChar(')'):
			toks = append(toks, p.next())
			return toks, true
		case tok.IsChar('('):
			args, ok := p.consumeFunction(token.Token{})
			toks = append(toks, args...)
			if !ok {
				return toks, false
			}
		case tok.Kind == token.Identifier:
			toks = append(toks, p.next())
			if open := p.peek(); open.IsChar('(') && open.Pos.Offset == tok.End.Offset {
				args, ok := p.consumeFunction(tok)
				toks = append(toks, args...)
				if !ok {
					return toks, false
				}
			}
		default:
			toks = append(toks, p.next())
		}
	}
}
