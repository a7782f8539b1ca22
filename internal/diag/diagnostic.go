package diag

import "iona/internal/source"

// Diagnostic is a single error/warning/lint tied to a source position,
// with optional related positions (spec §4.1).
type Diagnostic struct {
	Severity Severity
	Message  string
	Primary  source.Position
	Related  []source.Position
}

// New constructs a Diagnostic with no related positions.
func New(sev Severity, msg string, pos source.Position) Diagnostic {
	return Diagnostic{Severity: sev, Message: msg, Primary: pos}
}

// WithRelated returns a copy of d with the given related positions
// appended; used when a diagnostic wants to point at a second location
// (e.g. "previous declaration here").
func (d Diagnostic) WithRelated(positions ...source.Position) Diagnostic {
	d.Related = append(append([]source.Position(nil), d.Related...), positions...)
	return d
}
