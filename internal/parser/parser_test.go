package parser_test

import (
	"testing"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/parser"
)

func parseModule(t *testing.T, src string) (*ast.File, []diag.Diagnostic) {
	t.Helper()
	p := parser.New("test.iona", src, diag.NopReporter{})
	file, diags := parser.ParseModule("test", p)
	return file, diags
}

func TestParseMinimalStruct(t *testing.T) {
	src := `struct Animal { legs: Int, hair: Bool @metadata { Is: Public, Export; Derives: Eq, Show; } }`
	file, diags := parseModule(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(file.Nodes) != 1 || file.Nodes[0].Kind != ast.NodeStructDeclaration {
		t.Fatalf("expected one struct declaration, got %+v", file.Nodes)
	}
	s := file.Nodes[0].Struct
	if s.Name != "Animal" {
		t.Errorf("got name %q, want Animal", s.Name)
	}
	if len(s.Fields) != 2 || s.Fields[0].Name != "legs" || s.Fields[1].Name != "hair" {
		t.Fatalf("got fields %+v", s.Fields)
	}
	if len(s.DataProperties) != 2 || len(s.DataTraits) != 2 {
		t.Fatalf("got properties %+v traits %+v", s.DataProperties, s.DataTraits)
	}
}

func TestParseImportWithItems(t *testing.T) {
	file, diags := parseModule(t, `import npc with Creature;`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(file.Nodes) != 1 || file.Nodes[0].Kind != ast.NodeImportStatement {
		t.Fatalf("expected one import, got %+v", file.Nodes)
	}
	imp := file.Nodes[0].Import
	if imp.File != "npc" {
		t.Errorf("got file %q, want npc", imp.File)
	}
	if len(imp.Items) != 1 || imp.Items[0] != "Creature" {
		t.Fatalf("got items %v", imp.Items)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	p := parser.New("test.iona", "add(2, 5 * a)", diag.NopReporter{})
	out := p.ParseExpr(0)
	if !out.Ok {
		t.Fatalf("parse failed: %v", out.Diagnostics)
	}
	call := out.Value
	if call.Kind != ast.ExprFunctionCall || call.Name != "add" {
		t.Fatalf("got %+v, want FunctionCall(add)", call)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	if call.Args[0].Kind != ast.ExprIntLit || call.Args[0].IntVal != 2 {
		t.Errorf("arg0 = %+v, want Int(2)", call.Args[0])
	}
	mul := call.Args[1]
	if mul.Kind != ast.ExprBinaryOp || mul.Op != ast.OpMultiply {
		t.Fatalf("arg1 = %+v, want BinaryOp(Multiply)", mul)
	}
	if mul.Left.Kind != ast.ExprIntLit || mul.Left.IntVal != 5 {
		t.Errorf("left = %+v, want Int(5)", mul.Left)
	}
	if mul.Right.Kind != ast.ExprVariable || mul.Right.Name != "a" {
		t.Errorf("right = %+v, want Variable(a)", mul.Right)
	}
}

func TestParseFunctionWithMetadataContractsAndBody(t *testing.T) {
	src := `fn foo(a: Int, b: Int) -> Int {
		@metadata { Is: Public; Uses: ReadFile, WriteFile; }
		@contracts { In: (a > 0, "a must be >0") Out: (result > 0, "output >0") }
		let x: Shared<Auto> = add(a, 5);
		return x;
	}`
	file, diags := parseModule(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(file.Nodes) != 1 || file.Nodes[0].Kind != ast.NodeFunctionDeclaration {
		t.Fatalf("expected one function, got %+v", file.Nodes)
	}
	fn := file.Nodes[0].Function
	if fn.Name != "foo" {
		t.Fatalf("got name %q", fn.Name)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("got args %+v", fn.Args)
	}
	if fn.Returns.Kind != ast.TInt {
		t.Fatalf("got return type %+v", fn.Returns)
	}
	if len(fn.DataProperties) != 1 || fn.DataProperties[0] != ast.PropPublic {
		t.Fatalf("got properties %+v", fn.DataProperties)
	}
	if len(fn.Permissions) != 2 {
		t.Fatalf("got permissions %+v", fn.Permissions)
	}
	if len(fn.Contracts) != 2 {
		t.Fatalf("got contracts %+v", fn.Contracts)
	}
	if fn.Contracts[0].Kind != ast.ContractInput || fn.Contracts[1].Kind != ast.ContractOutput {
		t.Fatalf("got contract kinds %+v", fn.Contracts)
	}
	if len(fn.Statements) != 2 {
		t.Fatalf("got statements %+v", fn.Statements)
	}
	if fn.Statements[0].Kind != ast.StmtVariableDeclaration || fn.Statements[0].Name != "x" {
		t.Fatalf("stmt0 = %+v", fn.Statements[0])
	}
	if fn.Statements[0].Type.Kind != ast.TShared || fn.Statements[0].Type.Elem.Kind != ast.TAuto {
		t.Fatalf("stmt0 type = %+v", fn.Statements[0].Type)
	}
	if fn.Statements[1].Kind != ast.StmtReturn {
		t.Fatalf("stmt1 = %+v", fn.Statements[1])
	}
}

func TestParseRecoversInsideMetadataBlock(t *testing.T) {
	src := "struct Foo { x: Int @metadata {\n Bogus: Nope;\n Is: Public;\n } }"
	file, diags := parseModule(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the unknown metadata key")
	}
	if len(file.Nodes) != 1 || file.Nodes[0].Kind != ast.NodeStructDeclaration {
		t.Fatalf("expected recovery to still produce the struct, got %+v", file.Nodes)
	}
	s := file.Nodes[0].Struct
	if len(s.DataProperties) != 1 || s.DataProperties[0] != ast.PropPublic {
		t.Fatalf("got properties %+v, want [Public] recovered after the bad line", s.DataProperties)
	}
}
