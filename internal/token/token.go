// Package token defines the lexical symbol set of the iona language.
package token

import "iona/internal/source"

// Token pairs a symbol tag with a source position, plus the payload the
// symbol carries for identifier/literal kinds (spec §3).
type Token struct {
	Kind Kind
	Pos  source.Position

	// Text is the exact lexeme, used for identifiers, operators in
	// diagnostics, and as the unprocessed content of string literals.
	Text string

	IntVal   int64
	FloatVal float64
}

// IsWhitespace reports whether the token is one of the two whitespace
// markers the lexer emits instead of skipping (spec §4.2).
func (t Token) IsWhitespace() bool {
	return t.Kind == Space || t.Kind == NewLine
}
