// Package emit implements the contract-level C backend: formatting
// struct/enum/function declarations and filling in the array-template
// header files a monomorphization obligation requires. The spec treats
// both as external collaborators specified only at the contract level
// (§1, §6); this package is a literal implementation of that contract,
// not a production C code generator.
package emit

import "strings"

// ApplyTemplate substitutes the three literal tokens a template contract
// exposes (spec §6): ARRAY_NAME, ELEM_TYPE, PREFIX. An additional
// <OTHER_IMPORTS> placeholder is replaced by otherImports (a possibly
// empty block of #include lines for transitively required templated
// headers).
//
// strings.Replacer is used rather than text/template: the contract is
// literal token substitution, not Go template syntax (no control flow,
// no field access) - a single pre-built Replacer running once per
// instantiation is both simpler and cheaper than parsing a template AST
// for three fixed placeholders.
func ApplyTemplate(template, arrayName, elemType, prefix, otherImports string) string {
	r := strings.NewReplacer(
		"ARRAY_NAME", arrayName,
		"ELEM_TYPE", elemType,
		"PREFIX", prefix,
		"<OTHER_IMPORTS>", otherImports,
	)
	return r.Replace(template)
}
