// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package project discovers a spec tree's root marker and tracks, per
// output directory, which generated files came from which spec — the
// bookkeeping the CLI's init/regen/status commands need and that §6 of the
// specification calls "persisted state".
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RootMarker is the file name that marks a project root; nested
// directories inherit the root's settings by walking up until one is
// found.
const RootMarker = ".imacs_root"

// MetadataFile is the per-output-directory bookkeeping file tracking which
// generated file names came from which spec ID, used to clean up orphans
// during regeneration.
const MetadataFile = ".imacs_meta.yaml"

// FindRoot walks up from startDir looking for a RootMarker file, returning
// the directory that contains it. Returns an error if none is found before
// reaching the filesystem root.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, RootMarker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found above %s", RootMarker, startDir)
		}
		dir = parent
	}
}

// InitRoot writes a RootMarker file into dir, creating dir if necessary.
func InitRoot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project root %s: %w", dir, err)
	}
	path := filepath.Join(dir, RootMarker)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already initialized", dir)
	}
	return os.WriteFile(path, []byte("# marks the root of an imacs spec tree\n"), 0o644)
}

// SpecMeta records the generated file names produced from one spec ID, and
// the spec hash they were generated from — the basis for both staleness
// detection (regen) and orphan cleanup (regen --clean).
type SpecMeta struct {
	Hash  string   `yaml:"hash"`
	Files []string `yaml:"files"`
}

// Metadata is the per-output-directory bookkeeping persisted to
// MetadataFile.
type Metadata struct {
	Specs map[string]SpecMeta `yaml:"specs"`
}

// LoadMetadata reads outDir's metadata file, returning an empty Metadata if
// it does not yet exist.
func LoadMetadata(outDir string) (*Metadata, error) {
	path := filepath.Join(outDir, MetadataFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Metadata{Specs: map[string]SpecMeta{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Specs == nil {
		m.Specs = map[string]SpecMeta{}
	}
	return &m, nil
}

// Save writes m to outDir's metadata file.
func (m *Metadata) Save(outDir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	path := filepath.Join(outDir, MetadataFile)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Orphans returns every file previously generated for specIDs no longer
// present in currentSpecIDs.
func (m *Metadata) Orphans(currentSpecIDs map[string]bool) []string {
	var orphans []string
	for id, meta := range m.Specs {
		if currentSpecIDs[id] {
			continue
		}
		orphans = append(orphans, meta.Files...)
	}
	return orphans
}

// DiscoverSpecFiles walks dir for *.yaml/*.yml files, skipping the
// metadata and root marker files themselves.
func DiscoverSpecFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filepath.Base(path) == MetadataFile {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
