// Package parser implements the Pratt expression parser and the
// recursive-descent declaration parser that together turn a token stream
// into a module's AST.
package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/lexer"
	"iona/internal/source"
	"iona/internal/token"
)

// maxExprDepth is the hard recursion guard on parse_expr, per spec §4.3.
const maxExprDepth = 30

// maxStatementIterations bounds how many statements a single block body
// can parse before the parser gives up rather than loop forever on a
// pathological input, per spec §4.4.
const maxStatementIterations = 1000

// Parser owns an indexed token buffer, a cursor offset, the expression
// recursion counter, and a rule trace stack whose deepest snapshot is
// exposed through DeepestTrace - the cheap substitute for a symbolic
// stack trace. The trace is not added to the diagnostics.
type Parser struct {
	filename     string
	tokens       []token.Token
	pos          int
	exprDepth    int
	trace        []string
	deepestTrace []string
	fatal        bool
}

// New tokenizes the given source fully, then returns a Parser positioned
// at its first token. Tokenizing eagerly keeps the declaration parser's
// primitives simple: lookahead is just indexing, never re-lexing.
func New(filename, content string, rep diag.Reporter) *Parser {
	lx := lexer.New(filename, content, rep)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return &Parser{filename: filename, tokens: toks}
}

func (p *Parser) pushTrace(label string) {
	p.trace = append(p.trace, label)
	if len(p.trace) > len(p.deepestTrace) {
		p.deepestTrace = append([]string(nil), p.trace...)
	}
}

func (p *Parser) popTrace() { p.trace = p.trace[:len(p.trace)-1] }

// Trace returns the current rule trace stack, for --verbose diagnostics.
func (p *Parser) Trace() []string {
	return append([]string(nil), p.trace...)
}

// DeepestTrace returns the rule-trace stack snapshotted at the deepest
// point parsing reached. Since every pushTrace is paired with a deferred
// popTrace, the live trace is always empty again by the time ParseModule
// returns - this is the cheap substitute for a real stack trace that
// --verbose actually prints.
func (p *Parser) DeepestTrace() []string {
	return append([]string(nil), p.deepestTrace...)
}

// peek returns the token at the cursor without consuming it.
func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

// peekAt returns the token n positions past the cursor.
func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// advance consumes and returns the token at the cursor.
func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

// skipWhitespace consumes Space/NewLine tokens at the cursor.
func (p *Parser) skipWhitespace() {
	for p.at(token.Space) || p.at(token.NewLine) {
		p.advance()
	}
}

// lookahead returns the next meaningful (non-whitespace) token without
// consuming anything, used for match-arm and list-terminator
// disambiguation.
func (p *Parser) lookahead() token.Token {
	i := 0
	for {
		t := p.peekAt(i)
		if t.Kind != token.Space && t.Kind != token.NewLine {
			return t
		}
		if t.Kind == token.EOF {
			return t
		}
		i++
	}
}

// withWhitespace skips whitespace, runs f, then skips whitespace again.
func withWhitespace[T any](p *Parser, f func() Output[T]) Output[T] {
	p.skipWhitespace()
	out := f()
	p.skipWhitespace()
	return out
}

// thenIgnore fails with a diagnostic if the next token differs from k;
// otherwise consumes it.
func (p *Parser) thenIgnore(k token.Kind) Output[struct{}] {
	if !p.at(k) {
		got := p.peek()
		return None[struct{}](diag.New(diag.Error,
			fmt.Sprintf("expected %s, found %s", k, got.Kind), got.Pos))
	}
	p.advance()
	return Some(struct{}{})
}

// thenIdentifier accepts an identifier token and returns its name.
func (p *Parser) thenIdentifier() Output[string] {
	if !p.at(token.Ident) {
		got := p.peek()
		return None[string](diag.New(diag.Error,
			fmt.Sprintf("expected identifier, found %s", got.Kind), got.Pos))
	}
	t := p.advance()
	return Some(t.Text)
}

// isListTerminator reports whether k is one of the tokens that ends a
// comma-separated list (spec §4.4).
func isListTerminator(k token.Kind) bool {
	switch k {
	case token.RBrace, token.RBracket, token.At, token.Semi, token.RParen, token.EOF:
		return true
	default:
		return false
	}
}

// parseListCommaSeparated loops collecting items via item, stopping at a
// list terminator. Trailing commas are tolerated.
func parseListCommaSeparated[T any](p *Parser, item func() Output[T]) Output[[]T] {
	var result []T
	var diags []diag.Diagnostic
	p.skipWhitespace()
	for !isListTerminator(p.peek().Kind) {
		out := item()
		diags = append(diags, out.Diagnostics...)
		if !out.Ok {
			break
		}
		result = append(result, out.Value)
		p.skipWhitespace()
		if p.at(token.Comma) {
			p.advance()
			p.skipWhitespace()
			continue
		}
		break
	}
	return Output[[]T]{Value: result, Ok: true, Diagnostics: diags}
}

// parseListNewlineSeparated is the top-level driver: it keeps calling
// item until EOF, breaking early if a rule fails without the cursor
// having advanced (which would otherwise loop forever).
func parseListNewlineSeparated[T any](p *Parser, item func() Output[T]) Output[[]T] {
	var result []T
	var diags []diag.Diagnostic
	for {
		p.skipWhitespace()
		if p.at(token.EOF) {
			break
		}
		before := p.pos
		out := item()
		diags = append(diags, out.Diagnostics...)
		if out.Ok {
			result = append(result, out.Value)
		}
		if p.pos == before {
			break
		}
	}
	return Output[[]T]{Value: result, Ok: true, Diagnostics: diags}
}

// ParseModule parses every top-level declaration in the file, returning
// the accumulated AST and every diagnostic produced along the way.
func ParseModule(moduleName string, p *Parser) (*ast.File, []diag.Diagnostic) {
	out := parseListNewlineSeparated(p, p.parseTopLevelItem)
	return &ast.File{ModuleName: moduleName, Nodes: out.Value}, out.Diagnostics
}

func errPos(t token.Token) source.Position { return t.Pos }
