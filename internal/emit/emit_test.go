package emit_test

import (
	"strings"
	"testing"

	"iona/internal/aggregate"
	"iona/internal/ast"
	"iona/internal/emit"
)

func TestStructDecl(t *testing.T) {
	s := &ast.Struct{
		Name: "Animal",
		Fields: []ast.Field{
			{Name: "legs", Type: ast.Primitive(ast.TInt)},
			{Name: "hair", Type: ast.Primitive(ast.TBool)},
		},
	}
	out := emit.StructDecl(s)
	if !strings.Contains(out, "} Animal;") {
		t.Fatalf("got %q, missing struct name", out)
	}
	if !strings.Contains(out, "bool hair;") {
		t.Fatalf("got %q, missing hair field", out)
	}
}

func TestApplyTemplateSubstitutesAllTokens(t *testing.T) {
	tmpl := "typedef struct { PREFIX_elem *data; } ARRAY_NAME;\nELEM_TYPE x;\n<OTHER_IMPORTS>"
	out := emit.ApplyTemplate(tmpl, "StringArray", "char *", "StringArray", "#include \"gen_string_array.h\"\n")
	for _, want := range []string{"StringArray_elem", "StringArray;", "char * x;", "gen_string_array.h"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestHeaderNamingNestedArray(t *testing.T) {
	nested := ast.ArrayOf(ast.ArrayOf(ast.Primitive(ast.TString)))
	if got, want := aggregate.HeaderName(nested), "gen_stringarray_array.h"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestHeaderNamingScenario5 is spec.md §8 scenario 5: a program declaring
// Array<Int>, Array<Array<String>>, Array<Array<Array<Bool>>> must produce
// exactly 6 generated headers.
func TestHeaderNamingScenario5(t *testing.T) {
	typeList := map[string]ast.Type{
		"a": ast.ArrayOf(ast.Primitive(ast.TInt)),
		"b": ast.ArrayOf(ast.ArrayOf(ast.Primitive(ast.TString))),
		"c": ast.ArrayOf(ast.ArrayOf(ast.ArrayOf(ast.Primitive(ast.TBool)))),
	}
	instances := aggregate.CollectArrayInstances(typeList)

	headers := make(map[string]bool, len(instances))
	for _, inst := range instances {
		headers[inst.Header] = true
	}

	want := []string{
		"gen_integer_array.h",
		"gen_string_array.h",
		"gen_stringarray_array.h",
		"gen_bool_array.h",
		"gen_boolarray_array.h",
		"gen_boolarrayarray_array.h",
	}
	if len(headers) != len(want) {
		t.Fatalf("got %d distinct headers %v, want %d: %v", len(headers), headers, len(want), want)
	}
	for _, h := range want {
		if !headers[h] {
			t.Errorf("missing header %q among %v", h, headers)
		}
	}
}
