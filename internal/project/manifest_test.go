package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"iona/internal/project"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iona.toml")
	content := `
[package]
name = "demo"
entry = "main.iona"
stdlib_dir = "stdlib"

[templates]
dir = "c_libs/templates"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture manifest: %v", err)
	}

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Entry != "main.iona" {
		t.Fatalf("got %+v", m.Package)
	}
	if m.Templates.Dir != "c_libs/templates" {
		t.Fatalf("got templates dir %q", m.Templates.Dir)
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "iona.toml"), []byte("[package]\nname=\"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := project.FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest(%q) = %q, %v, %v", nested, path, ok, err)
	}
}
