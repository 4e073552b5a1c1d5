// Package filestore implements flat-file JSON and spreadsheet I/O: the
// engine's only persistence layer (no database, per scope).
package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tapdlens/internal/config"
	"tapdlens/internal/issuedata"
)

// Store reads and writes the engine's flat-file state.
type Store struct {
	paths *config.Paths
}

// New returns a Store rooted at paths.
func New(paths *config.Paths) *Store {
	return &Store{paths: paths}
}

// LoadJSON decodes f into v. A missing file is not an error: v is left at
// its zero value, matching the "load JSON -> empty mapping on missing file"
// contract. A malformed file is an error.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// SaveJSON pretty-prints v as UTF-8 JSON with non-ASCII characters preserved
// literally (not \uXXXX-escaped), creating parent directories as needed.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadDataset loads the canonical issue dataset from a project-relative or
// absolute path, via the store's Paths.
func (s *Store) LoadDataset(relOrAbs string) (*issuedata.Dataset, error) {
	path := s.paths.DataFile(relOrAbs)
	var ds issuedata.Dataset
	if err := LoadJSON(path, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// SaveDataset writes the dataset wholesale, replacing any prior contents.
func (s *Store) SaveDataset(relOrAbs string, ds *issuedata.Dataset) error {
	return SaveJSON(s.paths.DataFile(relOrAbs), ds)
}
