// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "servers_info.txt", cfg.Input)
	assert.Equal(t, "server-report.xlsx", cfg.Output)
	assert.Equal(t, []string{"xlsx"}, cfg.Format)
	assert.Equal(t, "suffix", cfg.Duplicates)
}

func TestSetupConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: dump.txt\nformat: [xlsx, json]\nsummary_sheet: Index\ndisk_alert: use_percent > 80\n"), 0600))
	v := viper.New()
	require.NoError(t, Setup(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "dump.txt", cfg.Input)
	assert.Equal(t, []string{"xlsx", "json"}, cfg.Format)
	assert.Equal(t, "Index", cfg.SummarySheet)
	assert.Equal(t, "use_percent > 80", cfg.DiskAlert)
	assert.Equal(t, "server-report.xlsx", cfg.Output)
}

func TestSetupMissingExplicitFile(t *testing.T) {
	assert.Error(t, Setup(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestSetupEnvironment(t *testing.T) {
	t.Setenv("SERVERREPORT_OUTPUT", "out.xlsx")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	v := viper.New()
	require.NoError(t, Setup(v, ""))
	v.SetDefault("output", "server-report.xlsx")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "out.xlsx", cfg.Output)
}
