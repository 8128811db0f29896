// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndFindRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitRoot(dir))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindRoot(nested)
	require.NoError(t, err)
	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, found)
}

func TestFindRoot_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := FindRoot(dir)
	assert.Error(t, err)
}

func TestInitRoot_AlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitRoot(dir))
	assert.Error(t, InitRoot(dir))
}

func TestMetadata_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Metadata{Specs: map[string]SpecMeta{
		"access": {Hash: "abc123", Files: []string{"access.go", "access_test.go"}},
	}}
	require.NoError(t, m.Save(dir))

	loaded, err := LoadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.Specs["access"].Hash)
	assert.Equal(t, []string{"access.go", "access_test.go"}, loaded.Specs["access"].Files)
}

func TestMetadata_LoadMissingIsEmpty(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMetadata(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Specs)
}

func TestMetadata_Orphans(t *testing.T) {
	m := &Metadata{Specs: map[string]SpecMeta{
		"access": {Files: []string{"access.go"}},
		"old":    {Files: []string{"old.go", "old_test.go"}},
	}}
	orphans := m.Orphans(map[string]bool{"access": true})
	assert.ElementsMatch(t, []string{"old.go", "old_test.go"}, orphans)
}

func TestDiscoverSpecFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access.yaml"), []byte("id: access\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte("specs: {}\n"), 0o644))

	files, err := DiscoverSpecFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "access.yaml", filepath.Base(files[0]))
}
