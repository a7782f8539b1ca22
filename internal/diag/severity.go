package diag

// Severity classifies a diagnostic's importance, per spec §4.1.
type Severity uint8

const (
	// Lint is an informational style/convention issue.
	Lint Severity = iota
	// Warning flags something likely wrong but not fatal to emission.
	Warning
	// Error marks the diagnostic's producing file as non-emittable when
	// it prevented the top-level AST from being produced.
	Error
)

// String renders the severity the way it is printed before every
// rendered diagnostic ("error: ...", "warning: ...", "lint: ...").
func (s Severity) String() string {
	switch s {
	case Lint:
		return "lint"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
