// Package aggregate walks module ASTs into the two cross-module tables
// that drive scheduling and code generation: the module table (import
// graph and export obligations) and the type table (monomorphization
// input).
package aggregate

import "iona/internal/ast"

// ModuleTable holds the four maps described in spec §3, all keyed by
// module name. Sets grow monotonically; parsing_status flips from false
// to true exactly once per module.
type ModuleTable struct {
	ParsingStatus map[string]bool
	ImportedItems map[string]map[string]struct{}
	PublicItems   map[string]map[string]struct{}
	ExportedItems map[string]map[string]struct{}
}

// NewModuleTable returns an empty table.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{
		ParsingStatus: make(map[string]bool),
		ImportedItems: make(map[string]map[string]struct{}),
		PublicItems:   make(map[string]map[string]struct{}),
		ExportedItems: make(map[string]map[string]struct{}),
	}
}

func union(m map[string]map[string]struct{}, key, item string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[item] = struct{}{}
}

// Update applies one module's AST to the table, per spec §4.5: every
// import records its target as a module still needing to be parsed (if
// not already known), and every exported/public declaration records its
// name under the owning module.
func (t *ModuleTable) Update(moduleName string, file *ast.File) {
	t.ParsingStatus[moduleName] = true

	for _, node := range file.Nodes {
		switch node.Kind {
		case ast.NodeImportStatement:
			imp := node.Import
			if _, ok := t.ParsingStatus[imp.File]; !ok {
				t.ParsingStatus[imp.File] = false
			}
			for _, item := range imp.Items {
				union(t.ImportedItems, imp.File, item)
			}
		case ast.NodeStructDeclaration:
			t.recordProperties(moduleName, node.Struct.Name, node.Struct.DataProperties)
		case ast.NodeEnumDeclaration:
			t.recordProperties(moduleName, node.Enum.Name, node.Enum.DataProperties)
		case ast.NodeFunctionDeclaration:
			t.recordProperties(moduleName, node.Function.Name, node.Function.DataProperties)
		}
	}
}

func (t *ModuleTable) recordProperties(moduleName, name string, props []ast.DataProperty) {
	for _, p := range props {
		switch p {
		case ast.PropExport:
			union(t.ExportedItems, moduleName, name)
		case ast.PropPublic:
			union(t.PublicItems, moduleName, name)
		}
	}
}

// Unresolved returns a module name with ParsingStatus false, and true, if
// one exists; this is the condition the pipeline driver loops on (spec
// §4.5's "while there exists a key M ... parse it").
func (t *ModuleTable) Unresolved() (string, bool) {
	for name, done := range t.ParsingStatus {
		if !done {
			return name, true
		}
	}
	return "", false
}
