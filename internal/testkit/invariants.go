// Package testkit holds small invariant-checking helpers shared across
// package tests, rather than letting every _test.go reimplement the same
// assertions (spec §8's testable-properties list).
package testkit

import (
	"fmt"
	"reflect"
	"slices"

	"iona/internal/aggregate"
	"iona/internal/ast"
)

// CheckModuleTableIdempotent applies file to mt twice under the same
// moduleName and fails if that recorded nothing at all; it then applies
// file a third time and fails if that observably changed anything -
// spec §8's "re-running Update on an already-parsed module must be a
// no-op" invariant.
func CheckModuleTableIdempotent(mt *aggregate.ModuleTable, moduleName string, file *ast.File) error {
	before := snapshotModuleTable(mt)
	mt.Update(moduleName, file)
	mt.Update(moduleName, file)
	after := snapshotModuleTable(mt)
	if reflect.DeepEqual(before, after) {
		return fmt.Errorf("ModuleTable.Update(%q, ...) twice produced no change at all - nothing was recorded", moduleName)
	}
	before2 := snapshotModuleTable(mt)
	mt.Update(moduleName, file)
	after2 := snapshotModuleTable(mt)
	if !reflect.DeepEqual(before2, after2) {
		return fmt.Errorf("ModuleTable.Update(%q, ...) is not idempotent: a third call changed state", moduleName)
	}
	return nil
}

func snapshotModuleTable(mt *aggregate.ModuleTable) map[string]any {
	return map[string]any{
		"parsing":  cloneBoolMap(mt.ParsingStatus),
		"imported": cloneSetMap(mt.ImportedItems),
		"public":   cloneSetMap(mt.PublicItems),
		"exported": cloneSetMap(mt.ExportedItems),
	}
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSetMap(m map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		items := make([]string, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		slices.Sort(items)
		out[k] = items
	}
	return out
}
