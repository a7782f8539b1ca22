package diag_test

import (
	"strings"
	"testing"

	"iona/internal/diag"
	"iona/internal/source"
)

func TestRenderColorDisabledMatchesPlainRender(t *testing.T) {
	d := diag.New(diag.Error, "unexpected token", source.Position{Filename: "a.iona", Line: 1, Column: 1})
	plain := diag.Render(d, nil)
	colored := diag.RenderColor(d, nil, false)
	if plain != colored {
		t.Fatalf("expected identical output with color disabled, got %q vs %q", plain, colored)
	}
}

func TestRenderColorEnabledWrapsSeverity(t *testing.T) {
	d := diag.New(diag.Error, "unexpected token", source.Position{Filename: "a.iona", Line: 1, Column: 1})
	colored := diag.RenderColor(d, nil, true)
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected ANSI escape sequence in colored output, got %q", colored)
	}
}
