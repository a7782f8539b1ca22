package lexer_test

import (
	"testing"

	"iona/internal/diag"
	"iona/internal/lexer"
	"iona/internal/source"
	"iona/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(sev diag.Severity, pos source.Position, msg string) {
	r.diagnostics = append(r.diagnostics, diag.New(sev, msg, pos))
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		t := lx.Next()
		kinds = append(kinds, t.Kind)
		if t.Kind == token.EOF {
			return kinds
		}
	}
}

func TestLexerPunctuationAndKeywords(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "struct Foo { }", rep)
	kinds := collectKinds(lx)
	want := []token.Kind{
		token.KwStruct, token.Space, token.Ident, token.Space,
		token.LBrace, token.Space, token.RBrace, token.NewLine, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d: got %s, want %s", i, k, want[i])
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.diagnostics)
	}
}

func TestLexerNumberLiterals(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "42 3.14", rep)

	tok := lx.Next()
	if tok.Kind != token.IntLit || tok.IntVal != 42 {
		t.Fatalf("got %+v, want int literal 42", tok)
	}
	lx.Next() // space
	tok = lx.Next()
	if tok.Kind != token.FloatLit || tok.FloatVal != 3.14 {
		t.Fatalf("got %+v, want float literal 3.14", tok)
	}
}

func TestLexerStringLiteral(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", `"hello world"`, rep)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != "hello world" {
		t.Fatalf("got %+v, want string literal", tok)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", `"never closed`, rep)
	lx.Next()
	if lx.Fatal() {
		t.Fatal("unterminated string must be reported, not fatal")
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(rep.diagnostics))
	}
}

func TestLexerComment(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "# a comment\nlet", rep)
	kinds := collectKinds(lx)
	want := []token.Kind{token.NewLine, token.KwLet, token.NewLine, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestLexerNewlineTracksLineNumber(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "a\nb", rep)
	lx.Next() // 'a'
	lx.Next() // newline
	tok := lx.Next()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("got pos %v, want line 2 col 1", tok.Pos)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "fn", rep)
	first := lx.Peek()
	second := lx.Peek()
	if first != second {
		t.Fatalf("Peek not idempotent: %+v vs %+v", first, second)
	}
	third := lx.Next()
	if third != first {
		t.Fatalf("Next after Peek mismatch: %+v vs %+v", third, first)
	}
}

// TestLexerTrailingNewlineMatchesLineCount is spec.md:209's testable
// property: the number of NewLine tokens across a file equals its line
// count, even when the source has no trailing newline of its own.
func TestLexerTrailingNewlineMatchesLineCount(t *testing.T) {
	for _, src := range []string{"a\nb", "a\nb\n", "a"} {
		rep := &testReporter{}
		lx := lexer.New("test.iona", src, rep)
		var newlines int
		for {
			t := lx.Next()
			if t.Kind == token.NewLine {
				newlines++
			}
			if t.Kind == token.EOF {
				break
			}
		}
		f := source.NewFile("test.iona", []byte(src))
		if newlines != f.LineCount() {
			t.Errorf("src %q: got %d NewLine tokens, want %d (LineCount)", src, newlines, f.LineCount())
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	rep := &testReporter{}
	lx := lexer.New("test.iona", "a ? b", rep)
	collectKinds(lx)
	if len(rep.diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(rep.diagnostics))
	}
	if rep.diagnostics[0].Severity != diag.Error {
		t.Errorf("got severity %s, want error", rep.diagnostics[0].Severity)
	}
}
