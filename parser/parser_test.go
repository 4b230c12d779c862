package parser_test

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mgechev/ngcss/ast"
	"github.com/mgechev/ngcss/parser"
	"github.com/mgechev/ngcss/scanner"
)

// testiter sets the table test iteration to run in isolation.
var testiter = flag.Int("test.iter", -1, "table test number")

// MustParse parses s and fails the test on any error.
func MustParse(t *testing.T, s string) *ast.StyleSheet {
	t.Helper()
	ss, err := parser.ParseStyleSheet(s, "test.css", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return ss
}

// outline returns a one-line description of every rule in a list.
func outline(nodes []ast.Node) []string {
	var a []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.SelectorRule:
			var sels []string
			for _, s := range n.Selectors {
				sels = append(sels, s.Text)
			}
			a = append(a, fmt.Sprintf("selector %s %v", strings.Join(sels, ","), outline(n.Block.Entries)))
		case *ast.Declaration:
			s := n.Property.Value + "=" + n.Value.Text
			if n.Important {
				s += " important"
			}
			a = append(a, s)
		case *ast.MediaQueryRule:
			a = append(a, fmt.Sprintf("media %s %v", n.Query.Text, outline(n.Block.Entries)))
		case *ast.KeyframesRule:
			var name string
			if n.Name != nil {
				name = n.Name.Value
			}
			a = append(a, fmt.Sprintf("keyframes %s %v", name, outline(n.Block.Entries)))
		case *ast.KeyframeDefinition:
			a = append(a, fmt.Sprintf("step %s %v", n.Name.Value, outline(n.Block.Entries)))
		case *ast.InlineRule:
			a = append(a, fmt.Sprintf("%s %s", n.Type, n.Query.Text))
		case *ast.BlockRule:
			q := ""
			if n.Query != nil {
				q = n.Query.Text
			}
			a = append(a, fmt.Sprintf("%s %q %v", n.Type, q, outline(n.Block.Entries)))
		case *ast.UnknownRule:
			a = append(a, fmt.Sprintf("unknown %s (%d tokens)", n.Name, len(n.Tokens)))
		case *ast.UnknownTokenListRule:
			a = append(a, "junk")
		case *ast.Comment:
			a = append(a, "comment "+n.Token.Value)
		}
	}
	return a
}

// rules converts style sheet rules to nodes for outline.
func rules(ss *ast.StyleSheet) []ast.Node {
	a := make([]ast.Node, len(ss.Rules))
	for i, r := range ss.Rules {
		a[i] = r
	}
	return a
}

// messages returns the raw messages of all errors in err.
func messages(err error) []string {
	var a []string
	for _, e := range parser.Errors(err) {
		var perr *parser.Error
		var lerr *scanner.Error
		switch {
		case errors.As(e, &perr):
			a = append(a, perr.Message)
		case errors.As(e, &lerr):
			a = append(a, "lex: "+lerr.Message)
		default:
			a = append(a, e.Error())
		}
	}
	return a
}

// Ensure that style sheets are parsed into the expected rules and errors.
func TestParseStyleSheet(t *testing.T) {
	var tests = []struct {
		in   string
		out  []string
		errs []string
	}{
		{in: ``},
		{in: "  \n\t "},

		// 2. Basic rules.
		{in: `.a { color: red; }`, out: []string{"selector .a [color=red]"}},
		{in: `a{color:red}`, out: []string{"selector a [color=red]"}},
		{in: `h1, h2 .b { margin: 0 auto; padding: 1px 2px }`, out: []string{"selector h1,h2 .b [margin=0 auto padding=1px 2px]"}},
		{in: `a { }`, out: []string{"selector a []"}},
		{in: `a { color: red !important; }`, out: []string{"selector a [color=red !important important]"}},
		{in: `a { color: red ! IMPORTANT }`, out: []string{"selector a [color=red ! IMPORTANT important]"}},
		{in: `a { *zoom: 1; _height: 1px }`, out: []string{"selector a [*zoom=1 _height=1px]"}},
		{in: `a { width: calc(calc(1px + 2px) * 2); }`, out: []string{"selector a [width=calc(calc(1px + 2px) * 2)]"}},
		{in: `a { background: url(data:image/png;base64,AAA) no-repeat }`, out: []string{"selector a [background=url(data:image/png;base64,AAA) no-repeat]"}},
		{in: `a { content: "a;b}" }`, out: []string{`selector a [content="a;b}"]`}},
		{in: `a { --gap: -1px }`, out: []string{"selector a [--gap=-1px]"}},

		// 13. At-rules.
		{in: `@media (min-width: 10px) { .b { margin: 0 } }`, out: []string{"media (min-width: 10px) [selector .b [margin=0]]"}},
		{in: `@MEDIA screen and (max-width: 600px) { }`, out: []string{"media screen and (max-width: 600px) []"}},
		{in: `@keyframes spin { 0% { opacity: 0 } 100% { opacity: 1 } }`, out: []string{"keyframes spin [step 0% [opacity=0] step 100% [opacity=1]]"}},
		{in: `@-webkit-keyframes x { from, 50% { top: 0 } to { top: 1px } }`, out: []string{"keyframes x [step from,50% [top=0] step to [top=1px]]"}},
		{in: `@import url("a.css") screen;`, out: []string{`import url("a.css") screen`}},
		{in: `@charset "utf-8"; a {}`, out: []string{`charset "utf-8"`, "selector a []"}},
		{in: `@namespace svg url(http://www.w3.org/2000/svg);`, out: []string{"namespace svg url(http://www.w3.org/2000/svg)"}},
		{in: `@supports (display: grid) { a { b: c } }`, out: []string{`supports "(display: grid)" [selector a [b=c]]`}},
		{in: `@-moz-document url-prefix() { a { b: c } }`, out: []string{`document "url-prefix()" [selector a [b=c]]`}},
		{in: `@font-face { font-family: x; src: url(a.woff); }`, out: []string{`font-face "" [font-family=x src=url(a.woff)]`}},
		{in: `@page :first { margin: 1in; @top-left { content: "x" } }`, out: []string{`page ":first" [margin=1in unknown @top-left (6 tokens)]`}},
		{in: `@-ms-viewport { width: device-width }`, out: []string{`viewport "" [width=device-width]`}},

		// 25. Unknown at-rules are kept without errors.
		{in: `@foo bar; a {}`, out: []string{"unknown @foo (3 tokens)", "selector a []"}},
		{in: `@foo { x: y } a {}`, out: []string{"unknown @foo (6 tokens)", "selector a []"}},

		// 27. Recovery.
		{in: `.a { color: ; }`, out: []string{"selector .a []"}, errs: []string{`missing value for property "color"`}},
		{in: `a { color red; margin: 0 }`, out: []string{"selector a [margin=0]"}, errs: []string{`expected ':' after property "color", got "red"`}},
		{in: `a { 1: 2; b: c }`, out: []string{"selector a [b=c]"}, errs: []string{`expected property name, got "1"`}},
		{in: `} a { color: red }`, out: []string{"junk", "selector a [color=red]"}, errs: []string{`unexpected "}"`}},
		{in: `a > { color: red } b { }`, out: []string{"junk", "selector b []"}, errs: []string{`expected selector, got "{"`}},
		{in: `{ color: red } b { }`, out: []string{"junk", "selector b []"}, errs: []string{"missing selector"}},
		{in: `a { content: "x; } b { color: blue; }`, out: []string{`selector a [content="x]`, "selector b [color=blue]"}, errs: []string{"lex: unterminated string"}},
		{in: `a { color: red`, out: []string{"selector a [color=red]"}, errs: []string{`expected '}', got "EOF"`}},
		{in: `a { width: calc(1px + }`, out: []string{"selector a []"}, errs: []string{"unterminated function calc("}},
		{in: `a { b: c { d } e: f }`, out: []string{"selector a []"}, errs: []string{`unexpected "{" in value`}},
		{in: `@media screen`, out: []string{"media screen []"}, errs: []string{`expected '{', got "EOF"`}},
		{in: `@import;`, out: []string{"import "}, errs: []string{"malformed @import predicate"}},
		{in: `@import } a {}`, out: []string{"import ", "junk", "selector a []"}, errs: []string{"malformed @import predicate", `unexpected "}"`}},
		{in: `@keyframes { }`, out: []string{"keyframes  []"}, errs: []string{"expected name after @keyframes"}},
		{in: `@keyframes k { x% { } to { top: 0 } }`, out: []string{"keyframes k [junk step to [top=0]]"}, errs: []string{`expected ',' or '{' after keyframe selector, got "%"`}},
		{in: `a. { } b {}`, out: []string{"junk", "selector b []"}, errs: []string{`expected class name after '.', got " "`}},

		// 43. Larger inputs.
		{in: `.a, .b { color: red; }`, out: []string{"selector .a,.b [color=red]"}},
		{in: `@media (min-width: 10px) { .a { color: red; } }`, out: []string{"media (min-width: 10px) [selector .a [color=red]]"}},
		{in: `@keyframes spin { 0% { opacity: 0; } 100% { opacity: 1; } }`, out: []string{"keyframes spin [step 0% [opacity=0] step 100% [opacity=1]]"}},
		{in: `a { color: "red }`, out: []string{`selector a [color="red]`}, errs: []string{"lex: unterminated string"}},
		{in: "@import url(a.css);\n@media print {\n  @page { margin: 0 }\n  .x > .y:hover, .z { display: none !important; }\n}\n", out: []string{
			"import url(a.css)",
			`media print [page "" [margin=0] selector .x > .y:hover,.z [display=none !important important]]`,
		}},
	}

	for i, tt := range tests {
		if *testiter > -1 && *testiter != i {
			continue
		}

		ss, err := parser.ParseStyleSheet(tt.in, "test.css", nil)
		if ss == nil {
			t.Fatalf("%d. <%q> nil style sheet", i, tt.in)
		}
		if tt.out != nil || len(ss.Rules) > 0 {
			if diff := cmp.Diff(tt.out, outline(rules(ss))); diff != "" {
				t.Errorf("%d. <%q> rules (-want +got):\n%s", i, tt.in, diff)
			}
		}
		if diff := cmp.Diff(tt.errs, messages(err)); diff != "" {
			t.Errorf("%d. <%q> errors (-want +got):\n%s", i, tt.in, diff)
		}
	}
}

// Ensure that selectors are split into simple selectors and combinators.
func TestParseStyleSheet_Selectors(t *testing.T) {
	var tests = []struct {
		in    string
		parts []string
	}{
		{in: `a`, parts: []string{"a"}},
		{in: `a.b#c[d="e" i]:hover`, parts: []string{`a.b#c[d="e" i]:hover`}},
		{in: `a b > c + d ~ e >>> f /deep/ g`, parts: []string{`a " "`, `b ">"`, `c "+"`, `d "~"`, `e ">>>"`, `f "/deep/"`, `g`}},
		{in: `a>b`, parts: []string{`a ">"`, `b`}},
		{in: `:host(.active) ::ng-deep .x`, parts: []string{`:host(.active) " "`, `::ng-deep " "`, `.x`}},
		{in: `* &`, parts: []string{`* " "`, `&`}},
		{in: `li:nth-child(2n + 1)::before`, parts: []string{`li:nth-child(2n + 1)::before`}},
	}

	for i, tt := range tests {
		ss := MustParse(t, tt.in+" {}")
		r := ss.Rules[0].(*ast.SelectorRule)
		if len(r.Selectors) != 1 {
			t.Fatalf("%d. <%q> got %d selectors", i, tt.in, len(r.Selectors))
		}

		var parts []string
		for _, p := range r.Selectors[0].Parts {
			s := p.Text
			if p.Combinator != "" {
				s += fmt.Sprintf(" %q", p.Combinator)
			}
			parts = append(parts, s)
		}
		if diff := cmp.Diff(tt.parts, parts); diff != "" {
			t.Errorf("%d. <%q> parts (-want +got):\n%s", i, tt.in, diff)
		}
		if r.Selectors[0].Text != tt.in {
			t.Errorf("%d. <%q> text: got %q", i, tt.in, r.Selectors[0].Text)
		}
	}
}

// Ensure that pseudo-selector arguments are parsed as selectors when possible.
func TestParseStyleSheet_PseudoSelectors(t *testing.T) {
	ss := MustParse(t, `a:not(:not(.a)), li:nth-child(2n + 1), p::before, b:is(.x, .y) {}`)
	sels := ss.Rules[0].(*ast.SelectorRule).Selectors
	if len(sels) != 4 {
		t.Fatalf("got %d selectors", len(sels))
	}

	// :not(:not(.a))
	outer := sels[0].Parts[0].PseudoSelectors[0]
	if outer.Name != "not" || outer.Text != ":not(:not(.a))" || len(outer.Inner) != 1 {
		t.Fatalf("unexpected outer pseudo-selector: %+v", outer)
	}
	inner := outer.Inner[0].Parts[0].PseudoSelectors[0]
	if inner.Name != "not" || len(inner.Inner) != 1 || inner.Inner[0].Text != ".a" {
		t.Fatalf("unexpected inner pseudo-selector: %+v", inner)
	}

	// :nth-child keeps raw tokens.
	nth := sels[1].Parts[0].PseudoSelectors[0]
	if nth.Inner != nil {
		t.Errorf("nth-child: unexpected inner selectors")
	}
	var vals []string
	for _, tok := range nth.Tokens {
		vals = append(vals, tok.Value)
	}
	if diff := cmp.Diff([]string{":", "nth-child", "(", "2n", "+", "1", ")"}, vals); diff != "" {
		t.Errorf("nth-child tokens (-want +got):\n%s", diff)
	}

	if ps := sels[2].Parts[0].PseudoSelectors[0]; !ps.Element || ps.Name != "before" {
		t.Errorf("unexpected pseudo-element: %+v", ps)
	}

	is := sels[3].Parts[0].PseudoSelectors[0]
	if len(is.Inner) != 2 || is.Inner[0].Text != ".x" || is.Inner[1].Text != ".y" {
		t.Errorf("unexpected :is arguments: %+v", is.Inner)
	}
}

// Ensure that keyframe definitions are returned in order without comments.
func TestKeyframesRule_Definitions(t *testing.T) {
	ss, err := parser.ParseStyleSheet(`@keyframes spin { 0% { opacity: 0; } /* mid */ 100% { opacity: 1; } }`, "", &parser.Options{TrackComments: true})
	if err != nil {
		t.Fatal(err)
	}
	r, ok := ss.Rules[0].(*ast.KeyframesRule)
	if !ok {
		t.Fatalf("got %T, want *ast.KeyframesRule", ss.Rules[0])
	}
	if n := len(r.Block.Entries); n != 3 {
		t.Fatalf("got %d block entries, want 3", n)
	}

	var got []string
	for _, d := range r.Definitions() {
		got = append(got, d.Name.Value+" "+d.Block.Declarations[0].Value.Text)
	}
	if diff := cmp.Diff([]string{"0% 0", "100% 1"}, got); diff != "" {
		t.Errorf("definitions (-want +got):\n%s", diff)
	}
}

// Ensure that nesting deeper than the limit is reported and skipped.
func TestParseStyleSheet_MaxDepth(t *testing.T) {
	in := `@media a { @media b { @media c { x { y: z } } } } p { q: r }`
	ss, err := parser.ParseStyleSheet(in, "", &parser.Options{MaxDepth: 2})
	if diff := cmp.Diff([]string{"nesting exceeds maximum depth of 2"}, messages(err)); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
	want := []string{"media a [media b [media c []]]", "selector p [q=r]"}
	if diff := cmp.Diff(want, outline(rules(ss))); diff != "" {
		t.Errorf("rules (-want +got):\n%s", diff)
	}

	// Deeply nested pseudo-selectors fall back to raw tokens.
	in = strings.Repeat(":not(", 5) + ".a" + strings.Repeat(")", 5) + " {}"
	if _, err := parser.ParseStyleSheet(in, "", &parser.Options{MaxDepth: 3}); len(parser.Errors(err)) == 0 {
		t.Error("expected depth error")
	}
}

// Ensure that comments are kept only when tracked.
func TestParseStyleSheet_Comments(t *testing.T) {
	in := `/* a */ .x { /* b */ color: red; } @keyframes k { /* c */ to { top: 0 } }`

	ss, err := parser.ParseStyleSheet(in, "", &parser.Options{TrackComments: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"comment /* a */", "selector .x [comment /* b */ color=red]", "keyframes k [comment /* c */ step to [top=0]]"}
	if diff := cmp.Diff(want, outline(rules(ss))); diff != "" {
		t.Errorf("tracked (-want +got):\n%s", diff)
	}
	if n := len(ss.Rules[1].(*ast.SelectorRule).Block.Declarations); n != 1 {
		t.Errorf("declarations: got %d, want 1", n)
	}

	ss = MustParse(t, in)
	want = []string{"selector .x [color=red]", "keyframes k [step to [top=0]]"}
	if diff := cmp.Diff(want, outline(rules(ss))); diff != "" {
		t.Errorf("untracked (-want +got):\n%s", diff)
	}
}

// Ensure that every node lies within its parent and children are ordered.
func TestParseStyleSheet_Spans(t *testing.T) {
	for i, in := range []string{
		`.a { color: red; }`,
		"@media (min-width: 10px) {\n  .b:not(.c) > d { margin: 0 }\n}",
		`@keyframes spin { 0% { opacity: 0 } 100% { opacity: 1 } }`,
		`@import "a.css"; @font-face { src: url(a) } a[b] { c: calc(1px + 2px) !important }`,
		`} a > { } b { c: ; d: e`,
		`@foo bar; li:nth-child(2n + 1) { x: y }`,
		`@import `,
		`@import }`,
		"@charset\n\n",
		`@media { }`,
	} {
		ss, _ := parser.ParseStyleSheet(in, "", nil)
		if ss.Pos().Offset != 0 || ss.End().Offset != len(in) {
			t.Errorf("%d. <%q> style sheet span %d-%d", i, in, ss.Pos().Offset, ss.End().Offset)
		}
		ast.Inspect(ss, func(n ast.Node) bool {
			prev := n.Pos()
			for _, c := range ast.Children(n) {
				if c.Pos().Before(prev) || n.End().Before(c.End()) || c.End().Before(c.Pos()) {
					t.Errorf("%d. <%q> %T [%d,%d) not within %T [%d,%d) after %d",
						i, in, c, c.Pos().Offset, c.End().Offset, n, n.Pos().Offset, n.End().Offset, prev.Offset)
				}
				prev = c.End()
			}
			return true
		})
	}
}

// Ensure that errors render with position and excerpt.
func TestError(t *testing.T) {
	_, err := parser.ParseStyleSheet("a { color }", "x.css", nil)
	list := parser.Errors(err)
	if len(list) != 1 {
		t.Fatalf("got %d errors", len(list))
	}
	if !errors.Is(list[0], parser.ErrParse) {
		t.Error("error does not wrap ErrParse")
	}
	want := "x.css: expected ':' after property \"color\", got \"}\" at line 1, column 11:\na { color }\n          ^"
	if got := list[0].Error(); got != want {
		t.Errorf("message:\ngot:  %q\nwant: %q", got, want)
	}
}

// Ensure that an error list summarizes its length.
func TestErrorList_Error(t *testing.T) {
	if s := (parser.ErrorList{}).Error(); s != "no errors" {
		t.Errorf("empty: got %q", s)
	}
	list := parser.ErrorList{errors.New("a"), errors.New("b"), errors.New("c")}
	if s := list.Error(); s != "a (and 2 more errors)" {
		t.Errorf("got %q", s)
	}
	if parser.Errors(nil) != nil {
		t.Error("expected nil list")
	}
}

// Ensure that bare declaration lists can be parsed.
func TestParseDeclarations(t *testing.T) {
	decls, err := parser.ParseDeclarations(`color: red; *zoom: 1 } width: 2px`, "", nil)
	if diff := cmp.Diff([]string{`unexpected "}"`}, messages(err)); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}

	var got []string
	for _, d := range decls {
		got = append(got, d.Property.Value+"="+d.Value.Text)
	}
	if diff := cmp.Diff([]string{"color=red", "*zoom=1", "width=2px"}, got); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
}

// Ensure that at-keywords map to block types regardless of case and prefix.
func TestBlockTypeOf(t *testing.T) {
	var tests = []struct {
		in   string
		want ast.BlockType
	}{
		{"@media", ast.MediaQueryBlock},
		{"@MEDIA", ast.MediaQueryBlock},
		{"@-webkit-keyframes", ast.KeyframesBlock},
		{"@-moz-document", ast.DocumentBlock},
		{"@font-face", ast.FontFaceBlock},
		{"@import", ast.ImportBlock},
		{"@foo", ast.UnsupportedBlock},
		{"@--x", ast.UnsupportedBlock},
	}
	for i, tt := range tests {
		if got := parser.BlockTypeOf(tt.in); got != tt.want {
			t.Errorf("%d. %s: got %s, want %s", i, tt.in, got, tt.want)
		}
	}
}
