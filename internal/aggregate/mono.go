package aggregate

import (
	"slices"

	"iona/internal/ast"
)

// typeName renders the iona-side name used to build a monomorphized C
// identifier, e.g. "Integer" for the Int primitive (matching the C
// emitter's own naming, not the source-level keyword) and "StringArray"
// for Array<String>. Container kinds recurse into their element type.
func typeName(t ast.Type) string {
	switch t.Kind {
	case ast.TInt:
		return "Integer"
	case ast.TFloat:
		return "Float"
	case ast.TString:
		return "String"
	case ast.TBool:
		return "Bool"
	case ast.TSize:
		return "Size"
	case ast.TByte:
		return "Byte"
	case ast.TVoid:
		return "Void"
	case ast.TAuto:
		return "Auto"
	case ast.TRawCType:
		return "RawCType"
	case ast.TArray:
		return typeName(*t.Elem) + "Array"
	case ast.TMap:
		return typeName(*t.Elem) + "Map"
	case ast.TShared:
		return typeName(*t.Elem) + "Shared"
	case ast.TGeneric, ast.TCustom:
		return t.Name
	default:
		return "Unknown"
	}
}

// HeaderName derives the generated-header filename for an Array
// instantiation, per spec §6: "gen_<lowercased_element_type_name>_array.h".
// The name is built from the element type, not the Array type itself -
// typeName already appends "Array" for the element when it is itself an
// array, so naming off t would double that suffix.
func HeaderName(t ast.Type) string {
	return "gen_" + lower(typeName(*t.Elem)) + "_array.h"
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ArrayInstance is one monomorphization obligation: a concrete Array<T>
// the emitter must instantiate the array.h template for.
type ArrayInstance struct {
	ArrayType ast.Type
	Name      string // e.g. "StringArray"
	Header    string // e.g. "gen_string_array.h"
}

// CollectArrayInstances walks type_list and recursively collects every
// Array instantiation obligation, per spec §4.5's monomorphization rule:
// Array(Array(T)) yields obligations for both the outer and the inner
// array. The result is deduplicated and returned in a stable order
// (sorted by Name) so a caller's generated output is independent of map
// iteration order, per spec §8's idempotence property.
func CollectArrayInstances(typeList map[string]ast.Type) []ArrayInstance {
	seen := make(map[string]ArrayInstance)
	var collect func(t ast.Type)
	collect = func(t ast.Type) {
		if t.Kind != ast.TArray {
			return
		}
		name := typeName(t)
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = ArrayInstance{ArrayType: t, Name: name, Header: HeaderName(t)}
		collect(*t.Elem)
	}
	for _, t := range typeList {
		collect(t)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]ArrayInstance, 0, len(names))
	for _, name := range names {
		out = append(out, seen[name])
	}
	return out
}
