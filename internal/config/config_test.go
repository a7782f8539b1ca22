package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"iona/internal/config"
)

func TestResolveEntryModuleFromPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Resolve(config.ModeBuild, filepath.Join(dir, "main.iona"), false, false, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.EntryModule != "main" {
		t.Fatalf("got entry module %q", cfg.EntryModule)
	}
	if cfg.Stdlib {
		t.Fatalf("expected Stdlib=false for a concrete path target")
	}
}

func TestResolveStdlibTarget(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Resolve(config.ModeBuild, "stdlib", false, false, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !cfg.Stdlib || cfg.Dir != "stdlib" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestResolveNoTargetNoManifestErrors(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Resolve(config.ModeBuild, "", false, false, false); err == nil {
		t.Fatal("expected an error with no target and no manifest")
	}
}
