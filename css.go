package css

import (
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tracer traces with key 'css'.
func tracer() tracing.Trace {
	return tracing.Select("css")
}

// Decode converts raw style sheet bytes to a string. A UTF-16 or UTF-8 byte
// order mark selects the encoding and is removed; input without one is read
// as UTF-8 with invalid sequences replaced by U+FFFD.
func Decode(b []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", err
	}
	tracer().Debugf("decoded %d bytes into %d", len(b), len(out))
	return string(out), nil
}
