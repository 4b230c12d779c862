package css

import (
	"github.com/mgechev/ngcss/ast"
	"github.com/mgechev/ngcss/parser"
)

// ParseStylesheet parses text with the default options. The tree is always
// returned; the error, if any, is a parser.ErrorList.
func ParseStylesheet(text, url string) (*ast.StyleSheet, error) {
	return parser.ParseStyleSheet(text, url, nil)
}

// Parse decodes b and parses it as a style sheet.
func Parse(b []byte, url string, opt *parser.Options) (*ast.StyleSheet, error) {
	text, err := Decode(b)
	if err != nil {
		return &ast.StyleSheet{}, err
	}
	return parser.ParseStyleSheet(text, url, opt)
}
