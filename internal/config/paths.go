// Package config resolves project-relative paths and loads the app config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// rootMarkers are checked, in order, when walking upward from the working
// directory looking for the project root.
var rootMarkers = []string{"tapdlens.yaml", ".git"}

// Paths resolves project-relative locations and ensures the directories the
// engine writes into exist.
type Paths struct {
	Root string
}

// DiscoverPaths walks upward from dir (the current working directory if dir
// is empty) until a root marker is found, then ensures the standard
// directories exist. If no marker is found, dir itself is treated as the
// root — this keeps the engine usable as a library dropped into an
// arbitrary working directory without a marker file.
func DiscoverPaths(dir string) (*Paths, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}

	root := dir
	for cur := dir; ; {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				root = cur
				goto found
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break // reached filesystem root, no marker found; keep dir as root
		}
		cur = parent
	}
found:

	p := &Paths{Root: root}
	if err := p.ensureDirs(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Paths) ensureDirs() error {
	for _, d := range []string{
		p.LocalDataDir(),
		p.VectorDataDir(),
		p.TimeTrendDir(),
		p.ModelsDir(),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return nil
}

// LocalDataDir is the root of all flat-file state.
func (p *Paths) LocalDataDir() string { return filepath.Join(p.Root, "local_data") }

// VectorDataDir holds vector-index sidecar files.
func (p *Paths) VectorDataDir() string { return filepath.Join(p.LocalDataDir(), "vector_data") }

// TimeTrendDir holds rendered trend charts.
func (p *Paths) TimeTrendDir() string { return filepath.Join(p.LocalDataDir(), "time_trend") }

// ModelsDir holds locally cached embedding-model snapshots.
func (p *Paths) ModelsDir() string { return filepath.Join(p.Root, "models") }

// ConfigDir holds rubric and requirement-KB files.
func (p *Paths) ConfigDir() string { return filepath.Join(p.Root, "config") }

// DataFile resolves a relative string to an absolute path under local_data,
// or returns it unchanged if it is already absolute.
func (p *Paths) DataFile(relOrAbs string) string {
	if filepath.IsAbs(relOrAbs) {
		return relOrAbs
	}
	return filepath.Join(p.LocalDataDir(), relOrAbs)
}

// VectorIndexBase returns the base path (no extension) for a named vector
// index, e.g. "<VectorDataDir>/<name>". Sidecars are "<base>.index",
// "<base>.metadata.jsonl", "<base>.config.json".
func (p *Paths) VectorIndexBase(name string) string {
	return filepath.Join(p.VectorDataDir(), name)
}

// RubricFile is the path to the rubric configuration.
func (p *Paths) RubricFile() string { return filepath.Join(p.ConfigDir(), "test_case_rules.json") }

// RequirementKBFile is the path to the requirement knowledge base.
func (p *Paths) RequirementKBFile() string {
	return filepath.Join(p.ConfigDir(), "require_list_config.json")
}
