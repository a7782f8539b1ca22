package aggregate

import "iona/internal/ast"

// TypeTable holds the three structures described in spec §3. type_list
// and types_used_by_module are keyed by ast.Type.Key() since ast.Type is
// not itself comparable once it nests container elements behind a
// pointer.
type TypeTable struct {
	TypeList          map[string]ast.Type
	TypesUsedByModule map[string]map[string]ast.Type
	NewStructs        map[string]*ast.Struct
	NewEnums          map[string]*ast.Enum
}

// NewTypeTable returns an empty table.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		TypeList:          make(map[string]ast.Type),
		TypesUsedByModule: make(map[string]map[string]ast.Type),
		NewStructs:        make(map[string]*ast.Struct),
		NewEnums:          make(map[string]*ast.Enum),
	}
}

func (t *TypeTable) addType(moduleName string, ty ast.Type) {
	t.TypeList[ty.Key()] = ty
	set, ok := t.TypesUsedByModule[moduleName]
	if !ok {
		set = make(map[string]ast.Type)
		t.TypesUsedByModule[moduleName] = set
	}
	set[ty.Key()] = ty
	// Keep type_list closed under sub-container extraction: the element
	// types of a container are recorded too, down to the innermost one.
	for e := ty.Elem; e != nil; e = e.Elem {
		t.TypeList[e.Key()] = *e
	}
}

// Update applies one module's AST to the table, per spec §4.5.
func (t *TypeTable) Update(moduleName string, file *ast.File) {
	for _, node := range file.Nodes {
		switch node.Kind {
		case ast.NodeStructDeclaration:
			s := node.Struct
			t.NewStructs[s.Name] = s
			t.addType(moduleName, ast.CustomOf(s.Name))
			for _, f := range s.Fields {
				t.addType(moduleName, f.Type)
			}
		case ast.NodeEnumDeclaration:
			e := node.Enum
			t.NewEnums[e.Name] = e
			t.addType(moduleName, ast.CustomOf(e.Name))
			for _, f := range e.Fields {
				t.addType(moduleName, f.Type)
			}
		case ast.NodeFunctionDeclaration:
			fn := node.Function
			t.addType(moduleName, fn.Returns)
			for _, a := range fn.Args {
				t.addType(moduleName, a.Type)
			}
			for _, stmt := range fn.Statements {
				t.walkStatement(moduleName, stmt)
			}
		}
	}
}

// walkStatement recurses into a statement tree collecting every
// VariableDeclaration's type, descending into Conditional branches per
// spec §4.5.
func (t *TypeTable) walkStatement(moduleName string, stmt ast.Statement) {
	if stmt.Kind == ast.StmtVariableDeclaration {
		t.addType(moduleName, stmt.Type)
	}
	for _, branch := range stmt.Branches {
		for _, inner := range branch.Computations {
			t.walkStatement(moduleName, inner)
		}
	}
}
