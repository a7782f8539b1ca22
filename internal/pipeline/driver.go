// Package pipeline drives one compilation: reading source files,
// running the lexer and parser, and feeding the aggregation tables,
// recursing over unresolved imports until every reachable module has
// been parsed exactly once.
package pipeline

import (
	"fmt"
	"path/filepath"
	"sync"

	"iona/internal/aggregate"
	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/observ"
	"iona/internal/parser"
	"iona/internal/source"
)

// Driver owns everything a compilation mutates: the loaded source set,
// the per-module ASTs, the diagnostic bags, and the two aggregation
// tables. Token vectors are not retained past the file that produced
// them; the AST, the diagnostics and the loaded source file (kept in
// Files for rendering diagnostic context) survive into the driver's maps.
type Driver struct {
	Dir         string
	Files       *source.Set
	ASTs        map[string]*ast.File
	Bags        map[string]*diag.Bag
	Traces      map[string][]string
	ModuleTable *aggregate.ModuleTable
	TypeTable   *aggregate.TypeTable
	Timer       *observ.Timer

	mu sync.Mutex // serializes table mutations when run concurrently
}

// NewDriver returns a Driver that reads modules from dir (each module
// name M resolves to "<dir>/<M>.iona").
func NewDriver(dir string) *Driver {
	return &Driver{
		Dir:         dir,
		Files:       source.NewSet(),
		ASTs:        make(map[string]*ast.File),
		Bags:        make(map[string]*diag.Bag),
		Traces:      make(map[string][]string),
		ModuleTable: aggregate.NewModuleTable(),
		TypeTable:   aggregate.NewTypeTable(),
		Timer:       observ.NewTimer(),
	}
}

func (d *Driver) modulePath(name string) string {
	return filepath.Join(d.Dir, name+".iona")
}

// Run parses entryModule and then loops: while any module's
// parsing_status is false, parse it and update both tables, per spec
// §4.5's scheduling rule. The next module is whichever pending entry
// ModuleTable.Unresolved returns, so the order in which imported modules
// are parsed is not defined. The loop terminates because each iteration
// flips exactly one parsing_status entry and no imports are ever
// removed.
func (d *Driver) Run(entryModule string) error {
	if err := d.parseModule(entryModule); err != nil {
		return err
	}
	for {
		name, ok := d.ModuleTable.Unresolved()
		if !ok {
			break
		}
		if err := d.parseModule(name); err != nil {
			return err
		}
	}
	return nil
}

// parseModule loads, lexes, parses and aggregates one module. A
// filesystem error is a pipeline error: it surfaces immediately and
// terminates compilation of this target (spec §7).
func (d *Driver) parseModule(name string) error {
	phase := d.Timer.Begin("parse:" + name)
	defer func() { d.Timer.End(phase, "") }()

	path := d.modulePath(name)
	file, err := source.LoadFile(path)
	if err != nil {
		return fmt.Errorf("pipeline: loading module %q: %w", name, err)
	}

	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	p := parser.New(path, file.Content, rep)
	astFile, diags := parser.ParseModule(name, p)
	for _, dg := range diags {
		bag.Add(dg)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.Files.Add(file)
	d.ASTs[name] = astFile
	d.Bags[name] = bag
	d.Traces[name] = p.DeepestTrace()
	d.ModuleTable.Update(name, astFile)
	d.TypeTable.Update(name, astFile)
	return nil
}

// HasErrors reports whether any module's diagnostics include a fatal
// error, across every module parsed so far.
func (d *Driver) HasErrors() bool {
	for _, bag := range d.Bags {
		if bag.HasErrors() {
			return true
		}
	}
	return false
}

// RenderDiagnostics renders every recorded diagnostic across every
// module, via the Diagnostic Store's three-line context-window
// formatter.
func (d *Driver) RenderDiagnostics() string {
	var out string
	for _, bag := range d.Bags {
		out += diag.RenderAll(bag, d.Files)
	}
	return out
}
