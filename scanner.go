package css

import (
	"github.com/mgechev/ngcss/parser"
	"github.com/mgechev/ngcss/scanner"
	"github.com/mgechev/ngcss/token"
)

// Tokenize scans text in a single mode and returns every token up to, but
// not including, EOF. Scanning continues past malformed input; the error, if
// any, is a parser.ErrorList of the lexical errors found.
func Tokenize(text string, mode scanner.Mode, trackComments bool) ([]token.Token, error) {
	s := scanner.New(text, trackComments)
	s.SetMode(mode)

	var toks []token.Token
	var errs parser.ErrorList
	for {
		tok, err := s.Scan()
		if err != nil {
			errs = append(errs, err)
		}
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}

	if len(errs) > 0 {
		return toks, errs
	}
	return toks, nil
}
