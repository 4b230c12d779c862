package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgechev/ngcss/ast"
)

// Dump writes an indented outline of the tree rooted at n, one node per line
// with its 1-based source span.
func Dump(w io.Writer, n ast.Node) error {
	d := &dumper{w: w}
	d.dump(n, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) dump(n ast.Node, depth int) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s [%s-%s]\n", strings.Repeat("  ", depth), Label(n), n.Pos(), n.End())
	for _, c := range ast.Children(n) {
		d.dump(c, depth+1)
	}
}

// Label returns a short description of a node: its type followed by the
// name or text that identifies it.
func Label(n ast.Node) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")

	var detail string
	switch n := n.(type) {
	case *ast.Comment:
		detail = n.Token.Value
	case *ast.InlineRule:
		detail = n.Keyword.Value
	case *ast.BlockRule:
		detail = n.Keyword.Value
	case *ast.MediaQueryRule:
		detail = n.Keyword.Value
	case *ast.KeyframesRule:
		if n.Name != nil {
			detail = n.Name.Value
		}
	case *ast.KeyframeDefinition:
		detail = n.Name.Value
	case *ast.AtRulePredicate:
		detail = n.Text
	case *ast.Selector:
		detail = n.Text
	case *ast.SimpleSelector:
		detail = n.Text
		if n.Combinator != "" {
			return name + " " + strconv.Quote(detail) + " " + strconv.Quote(n.Combinator)
		}
	case *ast.PseudoSelector:
		detail = n.Text
	case *ast.Declaration:
		detail = n.Property.Value
		if n.Important {
			return name + " " + strconv.Quote(detail) + " !important"
		}
	case *ast.StyleValue:
		detail = n.Text
	case *ast.UnknownRule:
		detail = n.Name
	case *ast.UnknownTokenListRule:
		return name + " (" + strconv.Itoa(len(n.Tokens)) + " tokens)"
	}

	if detail == "" {
		return name
	}
	return name + " " + strconv.Quote(detail)
}
