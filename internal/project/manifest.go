// Package project locates and parses a compilation's optional iona.toml
// project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded contents of an iona.toml file.
type Manifest struct {
	Package struct {
		Name      string `toml:"name"`
		Entry     string `toml:"entry"`
		StdlibDir string `toml:"stdlib_dir"`
	} `toml:"package"`
	Templates struct {
		Dir string `toml:"dir"`
	} `toml:"templates"`
}

// FindManifest walks up from startDir looking for iona.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "iona.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest decodes the iona.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: parsing manifest: %w", path, err)
	}
	return &m, nil
}

// Defaults returns a Manifest with every field left at its zero value,
// used when no iona.toml is present - project configuration is entirely
// optional.
func Defaults() *Manifest {
	return &Manifest{}
}
