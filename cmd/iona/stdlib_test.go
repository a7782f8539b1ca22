package main

import (
	"os"
	"path/filepath"
	"testing"

	"iona/internal/pipeline"
)

func TestListIonaModulesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.iona", "a.iona", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := listIonaModules(dir)
	if err != nil {
		t.Fatalf("listIonaModules failed: %v", err)
	}
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSortedModuleNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main.iona", "util.iona"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("struct X { a: Int @metadata { Is: Public; } }"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	d := pipeline.NewDriver(dir)
	if err := runBatch(d, dir); err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	got := sortedModuleNames(d)
	if len(got) != 2 || got[0] != "main" || got[1] != "util" {
		t.Fatalf("got %v", got)
	}
}
