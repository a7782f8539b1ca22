package emit

import (
	"fmt"
	"strings"

	"iona/internal/ast"
)

// CType renders the C type name for an iona Type, per the same naming
// rule the monomorphization pass uses for container types (spec §6:
// "the C type name for Array<T> is <T-type-name>Array, recursively").
func CType(t ast.Type) string {
	switch t.Kind {
	case ast.TVoid:
		return "void"
	case ast.TInt:
		return "int_fast64_t"
	case ast.TFloat:
		return "double"
	case ast.TString:
		return "char *"
	case ast.TBool:
		return "bool"
	case ast.TSize:
		return "size_t"
	case ast.TByte:
		return "uint8_t"
	case ast.TAuto:
		return "void *"
	case ast.TRawCType:
		return t.Name
	case ast.TArray:
		return arrayTypeName(t) + " *"
	case ast.TMap, ast.TShared:
		return CType(*t.Elem) + " *"
	case ast.TGeneric, ast.TCustom:
		return t.Name
	default:
		return "void"
	}
}

func arrayTypeName(t ast.Type) string {
	elem := *t.Elem
	if elem.Kind == ast.TArray {
		return arrayTypeName(elem) + "Array"
	}
	return capitalize(elemBaseName(elem)) + "Array"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func elemBaseName(t ast.Type) string {
	switch t.Kind {
	case ast.TInt:
		return "integer"
	case ast.TFloat:
		return "float"
	case ast.TString:
		return "string"
	case ast.TBool:
		return "bool"
	case ast.TSize:
		return "size"
	case ast.TByte:
		return "byte"
	case ast.TGeneric, ast.TCustom:
		return t.Name
	default:
		return "void"
	}
}

// StructDecl renders a C struct declaration for s.
func StructDecl(s *ast.Struct) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef struct {\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "\t%s %s;\n", CType(f.Type), f.Name)
	}
	fmt.Fprintf(&b, "} %s;\n", s.Name)
	return b.String()
}

// EnumDecl renders a C tagged-union declaration for e: a discriminant
// enum plus a union of each non-Void variant's payload.
func EnumDecl(e *ast.Enum) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef enum {\n")
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "\t%s_%s,\n", strings.ToUpper(e.Name), strings.ToUpper(f.Name))
	}
	fmt.Fprintf(&b, "} %sTag;\n\n", e.Name)

	fmt.Fprintf(&b, "typedef struct {\n\t%sTag tag;\n\tunion {\n", e.Name)
	for _, f := range e.Fields {
		if f.Type.Kind == ast.TVoid {
			continue
		}
		fmt.Fprintf(&b, "\t\t%s %s;\n", CType(f.Type), f.Name)
	}
	fmt.Fprintf(&b, "\t} as;\n} %s;\n", e.Name)
	return b.String()
}

// FunctionDecl renders a C function prototype for fn.
func FunctionDecl(fn *ast.Function) string {
	args := make([]string, 0, len(fn.Args))
	for _, a := range fn.Args {
		args = append(args, fmt.Sprintf("%s %s", CType(a.Type), a.Name))
	}
	return fmt.Sprintf("%s %s(%s);\n", CType(fn.Returns), fn.Name, strings.Join(args, ", "))
}
