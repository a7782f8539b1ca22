package emit

import (
	"strings"

	"iona/internal/aggregate"
	"iona/internal/ast"
)

// InstantiateArrayTemplate fills in the array.h template for one
// monomorphization obligation. otherHeaders lists the header filenames
// (e.g. "gen_string_array.h") any nested container instantiation this
// one depends on requires - these become the <OTHER_IMPORTS> block.
func InstantiateArrayTemplate(template string, inst aggregate.ArrayInstance, otherHeaders []string) string {
	var includes strings.Builder
	for _, h := range otherHeaders {
		includes.WriteString("#include \"")
		includes.WriteString(h)
		includes.WriteString("\"\n")
	}
	elemType := CType(*inst.ArrayType.Elem)
	return ApplyTemplate(template, inst.Name, elemType, inst.Name, includes.String())
}

// DependencyHeaders returns the header filenames a container
// instantiation's own element type requires, when that element is
// itself a container - the recursive-nesting case spec §4.5 and §6
// describe (Array<Array<T>> needs Array<T>'s header too).
func DependencyHeaders(inst aggregate.ArrayInstance) []string {
	elem := *inst.ArrayType.Elem
	if elem.Kind != ast.TArray {
		return nil
	}
	return []string{aggregate.HeaderName(elem)}
}
