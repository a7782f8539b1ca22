package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"iona/internal/pipeline"
)

func writeModule(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".iona"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture module %q: %v", name, err)
	}
}

func TestDriverResolvesImportedModules(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", `import npc with Creature;`)
	writeModule(t, dir, "npc", `struct Creature { hp: Int @metadata { Is: Public, Export; Derives: Eq; } }`)

	d := pipeline.NewDriver(dir)
	if err := d.Run("main"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.RenderDiagnostics())
	}
	if !d.ModuleTable.ParsingStatus["npc"] {
		t.Error("expected npc to be resolved by the scheduling loop")
	}
	if _, ok := d.ASTs["npc"]; !ok {
		t.Error("expected npc's AST to be recorded")
	}
}

func TestDriverReportsMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", `import ghost with Thing;`)

	d := pipeline.NewDriver(dir)
	if err := d.Run("main"); err == nil {
		t.Fatal("expected a pipeline error for the missing ghost module")
	}
}
