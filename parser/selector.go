package parser

import (
	"github.com/mgechev/ngcss/ast"
	"github.com/mgechev/ngcss/scanner"
	"github.com/mgechev/ngcss/token"
)

// consumeSelectorList consumes comma separated selectors up to, but not
// including, the stop character. It returns false after recording an error.
func (p *parser) consumeSelectorList(stop byte) ([]*ast.Selector, bool) {
	prev := p.setMode(scanner.Selector)
	defer p.s.SetMode(prev)

	var list []*ast.Selector
	for {
		p.skipWhitespace()
		sel, ok := p.consumeSelector(stop)
		if !ok {
			return list, false
		}
		list = append(list, sel)

		tok := p.peek()
		switch {
		case tok.IsChar(','):
			p.next()
		case tok.IsChar(stop):
			return list, true
		default:
			p.errorf(tok, "expected ',' or %q after selector, got %q", stop, tok)
			return list, false
		}
	}
}

// consumeSelector consumes simple selectors joined by combinators.
func (p *parser) consumeSelector(stop byte) (*ast.Selector, bool) {
	var parts []*ast.SimpleSelector
	for {
		part, ok := p.consumeSimpleSelector()
		if !ok {
			return nil, false
		}
		parts = append(parts, part)

		comb, ok := p.consumeCombinator(stop)
		if !ok {
			return nil, false
		}
		if comb == "" {
			break
		}
		part.Combinator = comb
	}

	sel := &ast.Selector{Parts: parts}
	sel.Span = ast.Span{From: parts[0].Pos(), To: parts[len(parts)-1].End()}
	sel.Text = ast.Source(sel, p.src)
	return sel, true
}

// consumeCombinator consumes the combinator following a simple selector along
// with surrounding whitespace. It returns "" at the end of the selector.
func (p *parser) consumeCombinator(stop byte) (string, bool) {
	ws := p.skipWhitespace()

	tok := p.peek()
	var comb string
	switch {
	case tok.Kind == token.EOF || tok.IsChar(',') || tok.IsChar(stop):
		return "", true
	case tok.IsChar('+') || tok.IsChar('~'):
		comb = p.next().Value
	case tok.IsChar('>'):
		end := p.next().End
		n := 1
		for c := p.peek(); c.IsChar('>') && c.Pos.Offset == end.Offset; c = p.peek() {
			end = p.next().End
			n++
		}
		switch n {
		case 1:
			comb = ">"
		case 3:
			comb = ">>>"
		default:
			p.errorf(tok, "invalid combinator %q", p.src[tok.Pos.Offset:end.Offset])
			return "", false
		}
	case tok.IsChar('/'):
		p.next()
		name := p.peek()
		if !name.Is(token.Identifier, "deep") || name.Pos.Offset != tok.End.Offset {
			p.errorf(tok, "unexpected %q in selector", tok)
			return "", false
		}
		p.next()
		if c := p.peek(); !c.IsChar('/') || c.Pos.Offset != name.End.Offset {
			p.errorf(c, "expected '/' to close /deep/, got %q", c)
			return "", false
		}
		p.next()
		comb = "/deep/"
	case ws:
		return " ", true
	default:
		p.errorf(tok, "unexpected %q in selector", tok)
		return "", false
	}

	p.skipWhitespace()
	return comb, true
}

// consumeSimpleSelector consumes a compound selector: an optional type,
// universal or nesting selector followed by classes, ids, attributes and
// pseudo-selectors with no whitespace in between.
func (p *parser) consumeSimpleSelector() (*ast.SimpleSelector, bool) {
	first := p.peek()
	sel := &ast.SimpleSelector{Span: ast.Span{From: first.Pos, To: first.Pos}}

loop:
	for {
		tok := p.peek()
		empty := len(sel.Tokens) == 0 && len(sel.PseudoSelectors) == 0
		switch {
		case empty && (tok.Kind == token.Identifier || tok.IsChar('*') || tok.IsChar('&')):
			sel.Tokens = append(sel.Tokens, p.next())
			sel.To = tok.End
		case tok.IsChar('.') || tok.IsChar('#'):
			p.next()
			name := p.peek()
			if name.Kind != token.Identifier || name.Pos.Offset != tok.End.Offset {
				if tok.IsChar('.') {
					p.errorf(name, "expected class name after '.', got %q", name)
				} else {
					p.errorf(name, "expected id after '#', got %q", name)
				}
				return nil, false
			}
			sel.Tokens = append(sel.Tokens, tok, p.next())
			sel.To = name.End
		case tok.IsChar('['):
			toks, ok := p.consumeAttributeSelector()
			if !ok {
				return nil, false
			}
			sel.Tokens = append(sel.Tokens, toks...)
			sel.To = toks[len(toks)-1].End
		case tok.IsChar(':'):
			ps, ok := p.consumePseudoSelector()
			if !ok {
				return nil, false
			}
			sel.PseudoSelectors = append(sel.PseudoSelectors, ps)
			sel.To = ps.End()
		default:
			break loop
		}
	}

	if len(sel.Tokens) == 0 && len(sel.PseudoSelectors) == 0 {
		p.errorf(first, "expected selector, got %q", first)
		return nil, false
	}
	sel.Text = ast.Source(sel, p.src)
	return sel, true
}

// consumeAttributeSelector consumes "[name op value flags]".
func (p *parser) consumeAttributeSelector() ([]token.Token, bool) {
	prev := p.setMode(scanner.AttributeSelector)
	defer p.s.SetMode(prev)

	open := p.next()
	toks := []token.Token{open}
	for {
		tok := p.peek()
		switch {
		case tok.IsChar(']'):
			if len(toks) == 1 {
				p.errorf(tok, "empty attribute selector")
				return toks, false
			}
			toks = append(toks, p.next())
			return toks, true
		case tok.Kind == token.EOF || tok.IsChar('{') || tok.IsChar('}') || tok.IsChar(';'):
			p.errorf(tok, "unterminated attribute selector")
			return toks, false
		case len(toks) == 1 && tok.Kind != token.Identifier && !tok.IsChar('*') && !tok.IsChar('|'):
			p.errorf(tok, "expected attribute name, got %q", tok)
			return toks, false
		}
		toks = append(toks, p.next())
	}
}

// consumePseudoSelector consumes ":name", "::name" or ":name(arguments)".
func (p *parser) consumePseudoSelector() (*ast.PseudoSelector, bool) {
	prev := p.setMode(scanner.PseudoSelector)
	defer p.s.SetMode(prev)

	colon := p.next()
	ps := &ast.PseudoSelector{Tokens: []token.Token{colon}}
	end := colon.End
	if c := p.peek(); c.IsChar(':') && c.Pos.Offset == end.Offset {
		ps.Tokens = append(ps.Tokens, p.next())
		ps.Element = true
		end = c.End
	}

	name := p.peek()
	if name.Kind != token.Identifier || name.Pos.Offset != end.Offset {
		p.errorf(name, "expected pseudo-selector name, got %q", name)
		return nil, false
	}
	ps.Tokens = append(ps.Tokens, p.next())
	ps.Name = name.Value
	end = name.End

	if open := p.peek(); open.IsChar('(') && open.Pos.Offset == end.Offset {
		toks, inner, ok := p.consumePseudoArguments(name)
		ps.Tokens = append(ps.Tokens, toks...)
		if !ok {
			return nil, false
		}
		ps.Inner = inner
		end = toks[len(toks)-1].End
	}

	ps.Span = ast.Span{From: colon.Pos, To: end}
	ps.Text = ast.Source(ps, p.src)
	return ps, true
}

// consumePseudoArguments consumes a parenthesized argument list. Arguments
// are first parsed as a selector list, as in ":not(.a, .b)", in which case
// only the parentheses are returned as tokens. If that fails the scanner is
// rewound and the arguments are kept as raw tokens, as in ":nth-child(2n + 1)".
func (p *parser) consumePseudoArguments(name token.Token) ([]token.Token, []*ast.Selector, bool) {
	open := p.next()
	toks := []token.Token{open}

	defer p.leave()
	if p.enter(open) {
		snap, nerr := p.s.Snapshot(), len(p.errors)
		inner, ok := p.consumeSelectorList(')')
		if ok {
			toks = append(toks, p.next())
			return toks, inner, true
		}

		tracer().Debugf("%s: arguments of :%s are not a selector list, keeping raw tokens", p.url, name.Value)
		p.errors = p.errors[:nerr]
		p.reset(snap)
	}

	prev := p.setMode(scanner.PseudoSelectorWithArguments)
	defer p.s.SetMode(prev)

	depth := 0
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.IsChar('{') || tok.IsChar('}') || tok.IsChar(';'):
			p.errorf(tok, "unterminated arguments of :%s", name.Value)
			return toks, nil, false
		case tok.IsChar('('):
			depth++
		case tok.IsChar(')'):
			if depth == 0 {
				toks = append(toks, p.next())
				return toks, nil, true
			}
			depth--
		}
		toks = append(toks, p.next())
	}
}
