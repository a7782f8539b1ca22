package aggregate_test

import (
	"testing"

	"iona/internal/aggregate"
	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/parser"
	"iona/internal/testkit"
)

func mustParse(t *testing.T, moduleName, src string) *ast.File {
	t.Helper()
	p := parser.New(moduleName+".iona", src, diag.NopReporter{})
	file, diags := parser.ParseModule(moduleName, p)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics parsing %q: %v", moduleName, diags)
	}
	return file
}

func TestModuleTableImportAndExport(t *testing.T) {
	main := mustParse(t, "main", `import npc with Creature;`)
	npc := mustParse(t, "npc", `struct Creature { hp: Int @metadata { Is: Public, Export; Derives: Eq; } }`)

	mt := aggregate.NewModuleTable()
	mt.Update("main", main)
	mt.Update("npc", npc)

	if !mt.ParsingStatus["npc"] {
		t.Error("expected npc to be marked parsed")
	}
	if _, ok := mt.ImportedItems["npc"]["Creature"]; !ok {
		t.Error("expected npc to record imported item Creature")
	}
	if _, ok := mt.ExportedItems["npc"]["Creature"]; !ok {
		t.Error("expected npc to export Creature")
	}

	diags := aggregate.CheckImportClosure(mt)
	if len(diags) != 0 {
		t.Errorf("unexpected closure diagnostics: %v", diags)
	}
}

func TestImportClosureSatisfiedByPublicAlone(t *testing.T) {
	main := mustParse(t, "main", `import npc with Creature;`)
	npc := mustParse(t, "npc", `struct Creature { hp: Int @metadata { Is: Public; Derives: Eq; } }`)

	mt := aggregate.NewModuleTable()
	mt.Update("main", main)
	mt.Update("npc", npc)

	diags := aggregate.CheckImportClosure(mt)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics since Public items satisfy the closure, got %v", diags)
	}
}

func TestImportClosureDetectsMissingExport(t *testing.T) {
	main := mustParse(t, "main", `import npc with Creature;`)
	npc := mustParse(t, "npc", `struct Creature { hp: Int @metadata { Derives: Eq; } }`)

	mt := aggregate.NewModuleTable()
	mt.Update("main", main)
	mt.Update("npc", npc)

	diags := aggregate.CheckImportClosure(mt)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic: Creature is neither Public nor Export")
	}
}

func TestModuleTableUpdateIsIdempotent(t *testing.T) {
	npc := mustParse(t, "npc", `struct Creature { hp: Int @metadata { Is: Public, Export; Derives: Eq; } }`)
	mt := aggregate.NewModuleTable()
	if err := testkit.CheckModuleTableIdempotent(mt, "npc", npc); err != nil {
		t.Fatal(err)
	}
}

func TestTypeTableClosedUnderSubContainers(t *testing.T) {
	file := mustParse(t, "m", `fn foo() -> Array<Array<String>> {
		let x: Array<Array<String>> = nested();
		return x;
	}`)
	tt := aggregate.NewTypeTable()
	tt.Update("m", file)

	if _, ok := tt.TypeList[ast.ArrayOf(ast.ArrayOf(ast.Primitive(ast.TString))).Key()]; !ok {
		t.Fatal("expected Array<Array<String>> in type_list")
	}
	if _, ok := tt.TypeList[ast.ArrayOf(ast.Primitive(ast.TString)).Key()]; !ok {
		t.Error("type_list must be closed under sub-container extraction: Array<String> missing")
	}
}

func TestCollectArrayInstancesRecursesIntoNestedArrays(t *testing.T) {
	typeList := map[string]ast.Type{
		"a": ast.ArrayOf(ast.Primitive(ast.TInt)),
		"b": ast.ArrayOf(ast.ArrayOf(ast.Primitive(ast.TString))),
	}
	instances := aggregate.CollectArrayInstances(typeList)
	if len(instances) != 3 {
		t.Fatalf("got %d instances, want 3: %+v", len(instances), instances)
	}
	names := make(map[string]bool)
	for _, inst := range instances {
		names[inst.Name] = true
	}
	for _, want := range []string{"IntegerArray", "StringArray", "StringArrayArray"} {
		if !names[want] {
			t.Errorf("missing instance %q in %v", want, names)
		}
	}
}

func TestCollectArrayInstancesOrderIndependent(t *testing.T) {
	a := map[string]ast.Type{"x": ast.ArrayOf(ast.Primitive(ast.TInt)), "y": ast.ArrayOf(ast.Primitive(ast.TBool))}
	first := aggregate.CollectArrayInstances(a)
	second := aggregate.CollectArrayInstances(a)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic result lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("order mismatch at %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
	}
}
