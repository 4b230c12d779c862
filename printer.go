package css

import (
	"bytes"
	"io"
	"strings"

	"github.com/mgechev/ngcss/ast"
	"github.com/mgechev/ngcss/token"
)

// Printer writes a syntax tree back out as CSS in a normalized layout: one
// top-level rule per line, single spaces around blocks and "name: value;"
// declarations. Values, predicates and selectors keep their source text.
// Tokens skipped during error recovery are not printed.
type Printer struct{}

// Print writes n to w.
func (p *Printer) Print(w io.Writer, n ast.Node) (err error) {
	switch n := n.(type) {
	case *ast.StyleSheet:
		if n == nil {
			return nil
		}
		for _, r := range n.Rules {
			if _, ok := r.(*ast.UnknownTokenListRule); ok {
				continue
			}
			if err = p.Print(w, r); err != nil {
				return err
			}
			if _, err = io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

	case *ast.Comment:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Token.Value)

	case *ast.InlineRule:
		if n == nil {
			return nil
		}
		if err = p.prelude(w, n.Keyword, n.Query); err != nil {
			return err
		}
		_, err = io.WriteString(w, ";")

	case *ast.MediaQueryRule:
		if n == nil {
			return nil
		}
		if err = p.prelude(w, n.Keyword, n.Query); err != nil {
			return err
		}
		err = p.block(w, n.Block)

	case *ast.BlockRule:
		if n == nil {
			return nil
		}
		if err = p.prelude(w, n.Keyword, n.Query); err != nil {
			return err
		}
		err = p.block(w, n.Block)

	case *ast.KeyframesRule:
		if n == nil {
			return nil
		}
		if _, err = io.WriteString(w, n.Keyword.Value); err != nil {
			return err
		}
		if n.Name != nil {
			if _, err = io.WriteString(w, " "+n.Name.Value); err != nil {
				return err
			}
		}
		err = p.block(w, n.Block)

	case *ast.KeyframeDefinition:
		if n == nil {
			return nil
		}
		steps := make([]string, len(n.Steps))
		for i, s := range n.Steps {
			steps[i] = s.Value
		}
		if _, err = io.WriteString(w, strings.Join(steps, ", ")); err != nil {
			return err
		}
		err = p.block(w, n.Block)

	case *ast.SelectorRule:
		if n == nil {
			return nil
		}
		for i, s := range n.Selectors {
			if i > 0 {
				if _, err = io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if err = p.Print(w, s); err != nil {
				return err
			}
		}
		err = p.block(w, n.Block)

	case *ast.Selector:
		if n == nil {
			return nil
		}
		for _, part := range n.Parts {
			if _, err = io.WriteString(w, part.Text); err != nil {
				return err
			}
			switch part.Combinator {
			case "":
			case " ":
				_, err = io.WriteString(w, " ")
			default:
				_, err = io.WriteString(w, " "+part.Combinator+" ")
			}
			if err != nil {
				return err
			}
		}

	case *ast.SimpleSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Text)

	case *ast.PseudoSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Text)

	case *ast.AtRulePredicate:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Text)

	case *ast.Declaration:
		if n == nil {
			return nil
		}
		if _, err = io.WriteString(w, n.Property.Value+": "); err != nil {
			return err
		}
		if err = p.Print(w, n.Value); err != nil {
			return err
		}
		_, err = io.WriteString(w, ";")

	case *ast.StyleValue:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Text)

	case *ast.Block:
		if n == nil {
			return nil
		}
		err = p.entries(w, n.Entries)

	case *ast.StylesBlock:
		if n == nil {
			return nil
		}
		err = p.entries(w, n.Entries)

	case *ast.UnknownRule:
		if n == nil {
			return nil
		}
		vals := make([]string, len(n.Tokens))
		for i, tok := range n.Tokens {
			vals[i] = tok.Value
		}
		_, err = io.WriteString(w, strings.Join(vals, " "))
	}

	return
}

// prelude writes an at-keyword and its predicate, if any.
func (p *Printer) prelude(w io.Writer, kw token.Token, q *ast.AtRulePredicate) error {
	if _, err := io.WriteString(w, kw.Value); err != nil {
		return err
	}
	if q == nil || q.Text == "" {
		return nil
	}
	if _, err := io.WriteString(w, " "); err != nil {
		return err
	}
	return p.Print(w, q)
}

// block writes a space followed by a block node.
func (p *Printer) block(w io.Writer, n ast.Node) error {
	if _, err := io.WriteString(w, " "); err != nil {
		return err
	}
	return p.Print(w, n)
}

// entries writes "{ a b }", or "{}" when there is nothing to print.
func (p *Printer) entries(w io.Writer, entries []ast.Node) error {
	var n int
	for _, e := range entries {
		if _, ok := e.(*ast.UnknownTokenListRule); ok {
			continue
		}
		if n == 0 {
			if _, err := io.WriteString(w, "{"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := p.Print(w, e); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}
	_, err := io.WriteString(w, " }")
	return err
}

// Print returns n printed with the default configuration.
func Print(n ast.Node) string {
	var p Printer
	var buf bytes.Buffer
	_ = p.Print(&buf, n)
	return buf.String()
}
