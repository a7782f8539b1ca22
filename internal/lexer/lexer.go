// Package lexer turns iona source text into a token stream.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"iona/internal/diag"
	"iona/internal/source"
	"iona/internal/token"
)

const maxStringLiteralBytes = 5 * 1024 * 1024

// Lexer scans one file into tokens on demand. It never allocates the full
// token slice up front; Next/Peek pull one token at a time with at most
// one token of lookahead buffered.
type Lexer struct {
	cur          *cursor
	rep          diag.Reporter
	lookahed     *token.Token
	fatal        bool
	emittedEOFNL bool // true once the trailing synthetic NewLine has been handed out
}

// New creates a Lexer over content, reporting lexical errors to rep.
func New(filename, content string, rep diag.Reporter) *Lexer {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Lexer{cur: newCursor(filename, content), rep: rep}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if l.lookahed == nil {
		t := l.scan()
		l.lookahed = &t
	}
	return *l.lookahed
}

// Next consumes and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.lookahed != nil {
		t := *l.lookahed
		l.lookahed = nil
		return t
	}
	return l.scan()
}

// Fatal reports whether scanning hit an unrecoverable error (currently
// only the string-literal size cap, per spec §4.2).
func (l *Lexer) Fatal() bool { return l.fatal }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || b == '_' || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *Lexer) scan() token.Token {
	c := l.cur
	if c.eof() {
		if !l.emittedEOFNL {
			l.emittedEOFNL = true
			return token.Token{Kind: token.NewLine, Pos: c.pos()}
		}
		// token.EOF never reaches the invariant-checked token stream past
		// this point - it is an internal buffer sentinel the parser uses
		// to stop consuming tokens (spec.md:87's trailing NewLine already
		// satisfies the "always one token of lookahead" contract).
		return token.Token{Kind: token.EOF, Pos: c.pos()}
	}

	start := c.pos()
	b := c.peek()

	switch {
	case b == '\n':
		c.advance()
		return token.Token{Kind: token.NewLine, Pos: start, Text: "\n"}
	case b == ' ' || b == '\t' || b == '\r':
		return l.scanSpace(start)
	case b == '#':
		return l.scanComment(start)
	case b == '"':
		return l.scanString(start)
	case isDigit(b):
		return l.scanNumber(start)
	case isIdentStart(b):
		return l.scanIdent(start)
	default:
		return l.scanPunct(start)
	}
}

func (l *Lexer) scanSpace(start source.Position) token.Token {
	c := l.cur
	var sb strings.Builder
	for !c.eof() {
		b := c.peek()
		if b != ' ' && b != '\t' && b != '\r' {
			break
		}
		sb.WriteByte(c.advance())
	}
	return token.Token{Kind: token.Space, Pos: start, Text: sb.String()}
}

// scanComment consumes a '#' line comment through (not including) the
// terminating newline, and recurses to produce the next real token - iona
// comments carry no semantic content (spec §4.2).
func (l *Lexer) scanComment(start source.Position) token.Token {
	c := l.cur
	for !c.eof() && c.peek() != '\n' {
		c.advance()
	}
	return l.scan()
}

func (l *Lexer) scanIdent(start source.Position) token.Token {
	c := l.cur
	var sb strings.Builder
	for !c.eof() && isIdentCont(c.peek()) {
		sb.WriteByte(c.advance())
	}
	text := sb.String()
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Pos: start, Text: text}
	}
	return token.Token{Kind: token.Ident, Pos: start, Text: text}
}

func (l *Lexer) scanNumber(start source.Position) token.Token {
	c := l.cur
	var sb strings.Builder
	for !c.eof() && isDigit(c.peek()) {
		sb.WriteByte(c.advance())
	}
	isFloat := false
	if c.peek() == '.' && isDigit(c.peekAt(1)) {
		isFloat = true
		sb.WriteByte(c.advance())
		for !c.eof() && isDigit(c.peek()) {
			sb.WriteByte(c.advance())
		}
	}
	text := sb.String()
	if isFloat {
		v, _ := strconv.ParseFloat(text, 64)
		return token.Token{Kind: token.FloatLit, Pos: start, Text: text, FloatVal: v}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.rep.Report(diag.Error, start, "integer literal out of range: "+text)
	}
	return token.Token{Kind: token.IntLit, Pos: start, Text: text, IntVal: v}
}

// scanString reads a "..." literal with no escape processing (spec §4.2).
// An unterminated literal is reported and its text up to end of input is
// returned. A literal exceeding the hard byte cap is a fatal lex error:
// the rest of it is skipped rather than buffered.
func (l *Lexer) scanString(start source.Position) token.Token {
	c := l.cur
	c.advance() // opening quote
	var sb strings.Builder
	for {
		if c.eof() {
			l.rep.Report(diag.Error, start, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Pos: start, Text: sb.String()}
		}
		if c.peek() == '"' {
			c.advance()
			break
		}
		if sb.Len() >= maxStringLiteralBytes {
			n, convErr := safecast.Conv[uint32](sb.Len())
			msg := "string literal exceeds maximum size"
			if convErr == nil {
				msg = fmt.Sprintf("string literal exceeds maximum size (%d bytes so far)", n)
			}
			l.rep.Report(diag.Error, start, msg)
			l.fatal = true
			for !c.eof() && c.peek() != '"' {
				c.advance()
			}
			if !c.eof() {
				c.advance()
			}
			break
		}
		sb.WriteByte(c.advance())
	}
	return token.Token{Kind: token.StringLit, Pos: start, Text: sb.String()}
}

func (l *Lexer) scanPunct(start source.Position) token.Token {
	c := l.cur
	b := c.advance()
	switch b {
	case '{':
		return token.Token{Kind: token.LBrace, Pos: start, Text: "{"}
	case '}':
		return token.Token{Kind: token.RBrace, Pos: start, Text: "}"}
	case '[':
		return token.Token{Kind: token.LBracket, Pos: start, Text: "["}
	case ']':
		return token.Token{Kind: token.RBracket, Pos: start, Text: "]"}
	case '<':
		return token.Token{Kind: token.LAngle, Pos: start, Text: "<"}
	case '>':
		return token.Token{Kind: token.RAngle, Pos: start, Text: ">"}
	case '(':
		return token.Token{Kind: token.LParen, Pos: start, Text: "("}
	case ')':
		return token.Token{Kind: token.RParen, Pos: start, Text: ")"}
	case ':':
		return token.Token{Kind: token.Colon, Pos: start, Text: ":"}
	case ';':
		return token.Token{Kind: token.Semi, Pos: start, Text: ";"}
	case ',':
		return token.Token{Kind: token.Comma, Pos: start, Text: ","}
	case '.':
		return token.Token{Kind: token.Dot, Pos: start, Text: "."}
	case '@':
		return token.Token{Kind: token.At, Pos: start, Text: "@"}
	case '-':
		return token.Token{Kind: token.Minus, Pos: start, Text: "-"}
	case '+':
		return token.Token{Kind: token.Plus, Pos: start, Text: "+"}
	case '*':
		return token.Token{Kind: token.Star, Pos: start, Text: "*"}
	case '/':
		return token.Token{Kind: token.Slash, Pos: start, Text: "/"}
	case '%':
		return token.Token{Kind: token.Percent, Pos: start, Text: "%"}
	case '_':
		return token.Token{Kind: token.Underscore, Pos: start, Text: "_"}
	case '=':
		if c.peek() == '>' {
			c.advance()
			return token.Token{Kind: token.FatArrow, Pos: start, Text: "=>"}
		}
		return token.Token{Kind: token.Equals, Pos: start, Text: "="}
	default:
		l.rep.Report(diag.Error, start, "unexpected character "+strconv.QuoteRune(rune(b)))
		return l.scan()
	}
}
