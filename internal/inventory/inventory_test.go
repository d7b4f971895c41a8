// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	servers, err := Parse([]byte(`
servers:
  - id: 10.0.0.50
    hostname: legacy-db
  - id: " 10.0.0.51 "
`))
	require.NoError(t, err)
	assert.Equal(t, []Server{{ID: "10.0.0.50", Hostname: "legacy-db"}, {ID: "10.0.0.51"}}, servers)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("servers:\n  - hostname: nameless\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("servers:\n  - id: a\n    address: b\n"))
	assert.Error(t, err, "unknown keys are rejected")
	_, err = Parse([]byte("servers: [\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers:\n  - id: a\n"), 0600))
	servers, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, servers, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
