package diag

import (
	"fmt"
	"strconv"
	"strings"

	"iona/internal/source"
)

// Render formats d as a three-line context window (previous, primary,
// next) from src with a caret column-aligned under the offending
// character, prefixed with the line number (spec §4.1). src may be nil
// (e.g. a diagnostic about a file that failed to load); in that case only
// the one-line summary is produced.
func Render(d Diagnostic, src *source.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s\n", d.Primary, d.Severity, d.Message)
	if src != nil {
		writeContext(&b, src, d.Primary)
	}
	for _, rel := range d.Related {
		fmt.Fprintf(&b, "  note: see %s\n", rel)
	}
	return b.String()
}

func writeContext(b *strings.Builder, src *source.File, pos source.Position) {
	gutter := len(strconv.Itoa(pos.Line + 1))
	writeLine := func(n int) {
		if n < 1 || n > src.LineCount() {
			return
		}
		fmt.Fprintf(b, "%*d | %s\n", gutter, n, src.Line(n))
	}
	writeLine(pos.Line - 1)
	writeLine(pos.Line)
	col := pos.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(b, "%s | %s^\n", strings.Repeat(" ", gutter), strings.Repeat(" ", col-1))
	writeLine(pos.Line + 1)
}

// RenderAll renders every diagnostic in b, looking up source files by
// Position.Filename from set (nil files are tolerated by Render).
func RenderAll(b *Bag, set *source.Set) string {
	var out strings.Builder
	for _, d := range b.Items() {
		var f *source.File
		if set != nil {
			f, _ = set.Get(d.Primary.Filename)
		}
		out.WriteString(Render(d, f))
	}
	return out.String()
}
