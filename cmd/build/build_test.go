package build

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"serverreport/internal/config"
)

const testDump = `=== Server: web-01 ===
Hostname: web-01.example.com
Disk Usage:
Filesystem Size Used Avail Use% Mounted on
/dev/sda1 50G 45G 5G 90% /
Memory and Swap Usage:
               total        used        free      shared  buff/cache   available
Mem:           15Gi       3.1Gi       9.0Gi       0.2Gi       3.2Gi        11Gi
Swap:          2.0Gi          0B       2.0Gi
Failed Logins:
root ssh 10.0.0.9 Mon Jan 1 00:00
=== End of web-01 ===
=== Server: db-01 ===
Hostname: db-01
Disk Usage:
Filesystem Size Used Avail Use% Mounted on
/dev/sdb1 100G 10G 90G 10% /data
=== End of db-01 ===
`

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	input := filepath.Join(dir, "servers_info.txt")
	require.NoError(t, os.WriteFile(input, []byte(testDump), 0644))
	return &config.Config{
		Input:      input,
		Output:     filepath.Join(dir, "report.xlsx"),
		Format:     []string{"xlsx"},
		Duplicates: "suffix",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", modify: func(c *config.Config) {}},
		{name: "all formats", modify: func(c *config.Config) { c.Format = []string{"all"} }},
		{name: "unknown format", modify: func(c *config.Config) { c.Format = []string{"pdf"} }, wantErr: "format options are"},
		{name: "no format", modify: func(c *config.Config) { c.Format = nil }, wantErr: "--format"},
		{name: "no input", modify: func(c *config.Config) { c.Input = "" }, wantErr: "--input"},
		{name: "unknown duplicates policy", modify: func(c *config.Config) { c.Duplicates = "merge" }, wantErr: "duplicates options are"},
		{name: "bad summary name", modify: func(c *config.Config) { c.SummarySheet = "All/Servers" }, wantErr: "summary sheet name"},
		{name: "valid disk alert", modify: func(c *config.Config) { c.DiskAlert = "use_percent >= 90" }},
		{name: "invalid disk alert", modify: func(c *config.Config) { c.DiskAlert = "use_percent >=" }, wantErr: "alert"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Input: "in.txt", Output: "out.xlsx", Format: []string{"xlsx"}, Duplicates: "suffix"}
			tt.modify(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildReports(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = []string{"xlsx", "txt"}
	cfg.DiskAlert = "use_percent >= 90"
	cfg.MetricsFile = filepath.Join(filepath.Dir(cfg.Output), "metrics.prom")
	var status bytes.Buffer
	o, err := buildReports(cfg, &status)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Servers)
	assert.Equal(t, 0, o.Placeholders)
	assert.Equal(t, 1, o.Alerts)
	require.Len(t, o.ReportFiles, 2)
	assert.Contains(t, status.String(), "[2/2]")

	f, err := excelize.OpenFile(o.ReportFiles[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Server List", "web-01", "db-01"}, f.GetSheetList())

	txt, err := os.ReadFile(o.ReportFiles[1])
	require.NoError(t, err)
	assert.Contains(t, string(txt), "web-01")

	metrics, err := os.ReadFile(o.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "serverreport_servers_total")
}

func TestBuildReportsInventory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Inventory = filepath.Join(filepath.Dir(cfg.Input), "servers.yaml")
	require.NoError(t, os.WriteFile(cfg.Inventory, []byte("servers:\n  - id: spare-01\n    hostname: spare\n"), 0644))
	o, err := buildReports(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Servers)
	assert.Equal(t, 1, o.Placeholders)

	f, err := excelize.OpenFile(o.ReportFiles[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Server List", "web-01", "db-01", "spare-01"}, f.GetSheetList())
}

func TestBuildReportsMissingInputWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input = filepath.Join(filepath.Dir(cfg.Input), "missing.txt")
	_, err := buildReports(cfg, nil)
	require.Error(t, err)
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintOutcome(t *testing.T) {
	var out bytes.Buffer
	printOutcome(&out, outcome{Servers: 1200, Placeholders: 3, Dropped: 2, ReportFiles: []string{"/tmp/r.xlsx"}})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Servers: 1,200 from dump, 3 from inventory",
		"Lines skipped: 2 (see log for details)",
		"Report files:",
		"  /tmp/r.xlsx",
	}, lines)
}

func TestFlagGroupsReferenceDefinedFlags(t *testing.T) {
	for _, group := range getFlagGroups() {
		for _, flag := range group.Flags {
			assert.NotNil(t, Cmd.Flags().Lookup(flag.Name), flag.Name)
		}
	}
}
