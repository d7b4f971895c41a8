package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "servers_info.txt")
	require.NoError(t, os.WriteFile(path, []byte("=== Server: a ===\n"), 0600))
	text, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "=== Server: a ===\n", text)

	_, err = ReadInput(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, ErrInputNotFound))

	_, err = ReadInput(dir)
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	exists, err := FileExists(filepath.Join(dir, "nope"))
	assert.NoError(t, err)
	assert.False(t, exists)
	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "out/report.json", ReplaceExtension("out/report.xlsx", "json"))
	assert.Equal(t, "report.txt", ReplaceExtension("report", "txt"))
}

func TestExpandUser(t *testing.T) {
	assert.Equal(t, "/tmp/x", ExpandUser("/tmp/x"))
	assert.NotEqual(t, "~", ExpandUser("~"))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		filepath.Join(dir, "a.txt"): []byte("a"),
		filepath.Join(dir, "b.txt"): []byte("b"),
	}
	require.NoError(t, WriteFiles(files))
	for path, want := range files {
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")

	err = WriteFiles(map[string][]byte{filepath.Join(dir, "missing", "c.txt"): []byte("c")})
	assert.Error(t, err)
}
