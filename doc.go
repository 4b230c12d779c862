/*
Package css parses CSS style sheets into a syntax tree with source positions.

Parsing happens in two layers. The scanner package breaks text into tokens
such as identifiers, numbers, strings and single characters. The same text
can scan differently depending on the scanner's mode: "50%" is one token in a
keyframe block but a number and a character elsewhere, and whitespace is
reported only where it is significant, as in descendant selectors. The parser
package drives the scanner by recursive descent, switching the mode as it
enters each production and restoring it on the way out.


Recovery

The parser never stops at the first error. Malformed input produces an error
and the parser skips ahead to the next ';', to the '}' closing the current
block or to the end of the input, then carries on. Skipped tokens are kept in
the tree as UnknownTokenListRule nodes. Unrecognized at-rules are not errors;
they are kept as UnknownRule nodes. Every error carries the offending
position and a source excerpt with a caret under the column.


Syntax Tree

A StyleSheet holds a list of rules. Selector rules pair a selector list with a
block of declarations. At-rules are represented by InlineRule (@import,
@charset, @namespace), MediaQueryRule, KeyframesRule and BlockRule (@supports,
@document, @page, @font-face, @viewport). Selectors are split into compound
SimpleSelectors joined by combinators, and pseudo-selector arguments are
parsed as nested selector lists when they form one.

Declaration values and at-rule predicates are not interpreted. Their source
text is kept verbatim along with the tokens it scanned to. The ast package
provides a Visitor with one method per node type and a BaseVisitor that
walks children in source order.
*/
package css
