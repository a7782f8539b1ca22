package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"iona/internal/pipeline"
)

// runBatch implements the "iona build stdlib" batch-compile target
// (original cli.rs, supplemented feature not named by spec.md's
// distillation): every *.iona file directly under dir is treated as its
// own entrypoint. Driver.Run shares the same ModuleTable/TypeTable across
// calls, so a module discovered as an import of an earlier entry already
// has an AST in d.ASTs by the time its own name comes up, and is skipped
// rather than re-parsed.
func runBatch(d *pipeline.Driver, dir string) error {
	names, err := listIonaModules(dir)
	if err != nil {
		return fmt.Errorf("listing stdlib directory %q: %w", dir, err)
	}
	for _, name := range names {
		if _, done := d.ASTs[name]; done {
			continue
		}
		if err := d.Run(name); err != nil {
			return err
		}
	}
	return nil
}

func listIonaModules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		const ext = ".iona"
		if !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// sortedModuleNames returns every module name the driver has parsed so
// far, in a stable order - diagnostics render deterministically instead
// of following Go's randomized map iteration.
func sortedModuleNames(d *pipeline.Driver) []string {
	names := make([]string, 0, len(d.Bags))
	for name := range d.Bags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
