// Package config resolves the compiler-wide configuration a single
// invocation of cmd/iona runs with: the mode, the resolved target
// directory/entry module, and the output flags, merging CLI flags with an
// optional iona.toml project manifest (spec.md §6's "parsed Command").
package config

import (
	"fmt"
	"path/filepath"

	"iona/internal/project"
)

// Mode is one of the three CLI subcommands spec.md §6 names.
type Mode string

const (
	ModeBuild Mode = "build"
	ModeCheck Mode = "check"
	ModeTest  Mode = "test"
)

// Config is the fully-resolved configuration a pipeline run needs: which
// directory to read modules from, which module to start at, and how much
// to report.
type Config struct {
	Mode       Mode
	Dir        string // directory modules resolve against ("<Dir>/<module>.iona")
	EntryModule string
	Stdlib     bool // target was the literal "stdlib" batch-compile directory
	SingleFile bool // -f|--file; recorded only, the pipeline does not read it
	Verbose    bool
	Color      bool
	Manifest   *project.Manifest
}

// Resolve turns a CLI target positional plus flags into a Config,
// consulting an iona.toml manifest (if FindManifest locates one from the
// current directory) for defaults the target argument does not override.
//
// target is either a .iona path or the literal string "stdlib" per
// spec.md §6. stdlib_dir defaults to "stdlib" when no manifest overrides
// it.
func Resolve(mode Mode, target string, verbose, singleFile, color bool) (*Config, error) {
	manifest := project.Defaults()
	if path, ok, err := project.FindManifest("."); err != nil {
		return nil, fmt.Errorf("locating iona.toml: %w", err)
	} else if ok {
		m, err := project.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		manifest = m
	}

	cfg := &Config{
		Mode:       mode,
		Verbose:    verbose,
		SingleFile: singleFile,
		Color:      color,
		Manifest:   manifest,
	}

	stdlibDir := manifest.Package.StdlibDir
	if stdlibDir == "" {
		stdlibDir = "stdlib"
	}

	switch {
	case target == "stdlib":
		cfg.Stdlib = true
		cfg.Dir = stdlibDir
	case target != "":
		cfg.Dir = filepath.Dir(target)
		cfg.EntryModule = trimIonaExt(filepath.Base(target))
	case manifest.Package.Entry != "":
		cfg.Dir = filepath.Dir(manifest.Package.Entry)
		cfg.EntryModule = trimIonaExt(filepath.Base(manifest.Package.Entry))
	default:
		return nil, fmt.Errorf("no target given and no iona.toml entry configured")
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	return cfg, nil
}

func trimIonaExt(name string) string {
	const ext = ".iona"
	if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
		return name[:len(name)-len(ext)]
	}
	return name
}
