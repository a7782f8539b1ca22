package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"iona/internal/source"
)

// severityColor returns the color a severity is rendered in, matching
// the error/warning/info palette conventional for compiler diagnostics.
func severityColor(s Severity) *color.Color {
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// RenderColor is Render with the severity word wrapped in an ANSI color
// code when useColor is true. useColor is resolved by the caller (cmd/iona
// derives it from --color, checking term.IsTerminal on stderr for "auto"),
// not guessed here.
func RenderColor(d Diagnostic, src *source.File, useColor bool) string {
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !useColor

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s\n", d.Primary, severityColor(d.Severity).Sprint(d.Severity), d.Message)
	if src != nil {
		writeContext(&b, src, d.Primary)
	}
	for _, rel := range d.Related {
		fmt.Fprintf(&b, "  note: see %s\n", rel)
	}
	return b.String()
}

// RenderAllColor is RenderAll with RenderColor's coloring applied to every
// diagnostic.
func RenderAllColor(b *Bag, set *source.Set, useColor bool) string {
	var out strings.Builder
	for _, d := range b.Items() {
		var f *source.File
		if set != nil {
			f, _ = set.Get(d.Primary.Filename)
		}
		out.WriteString(RenderColor(d, f, useColor))
	}
	return out.String()
}
