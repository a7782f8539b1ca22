package source

import (
	"os"
	"strings"
)

// maxStringLiteralBytes caps a single string literal's content, per the
// lexer's hard 5 MiB limit (spec §4.2).
const maxStringLiteralBytes = 5 * 1024 * 1024

// MaxStringLiteralBytes exposes the lexer's string-literal cap so callers
// (and tests) don't need to duplicate the constant.
func MaxStringLiteralBytes() int { return maxStringLiteralBytes }

// File holds the full text of one loaded .iona source file plus an
// index of line-start offsets built by NewFile, used only for rendering
// diagnostic context windows (§4.1) - never for lexing itself, which
// tracks line/column incrementally as it scans.
type File struct {
	Path    string
	Content string

	lineStarts []int // byte offset of the first character of each line
}

// NewFile wraps raw bytes read from disk (or from memory, in tests) as a
// File and precomputes its line index.
func NewFile(path string, content []byte) *File {
	f := &File{Path: path, Content: string(content)}
	f.lineStarts = append(f.lineStarts, 0)
	for i, b := range f.Content {
		if b == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LoadFile reads path from disk and wraps it as a File.
func LoadFile(path string) (*File, error) {
	// #nosec G304 -- path is supplied by the compiler's own CLI/module walk
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, content), nil
}

// Line returns the text of the given 1-based line number, without its
// trailing newline. Out-of-range line numbers return "".
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	var end int
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1 // exclude the '\n'
	} else {
		end = len(f.Content)
	}
	if end < start {
		end = start
	}
	if end > len(f.Content) {
		end = len(f.Content)
	}
	return strings.TrimSuffix(f.Content[start:end], "\r")
}

// LineCount returns how many lines the file contains.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// Set is a small registry of Files keyed by path, letting the pipeline
// driver and the diagnostic renderer share File instances without
// threading them through every call individually.
type Set struct {
	byPath map[string]*File
}

// NewSet creates an empty file Set.
func NewSet() *Set {
	return &Set{byPath: make(map[string]*File)}
}

// Add registers f under its Path, overwriting any previous entry for the
// same path (a module is parsed at most once, so overwriting never loses
// a still-referenced File in practice - see aggregate.ModuleTable).
func (s *Set) Add(f *File) {
	s.byPath[f.Path] = f
}

// Get returns the File previously Add-ed under path, if any.
func (s *Set) Get(path string) (*File, bool) {
	f, ok := s.byPath[path]
	return f, ok
}
