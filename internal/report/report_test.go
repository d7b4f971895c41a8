package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"serverreport/internal/alert"
	"serverreport/internal/inventory"
	"serverreport/internal/layout"
	"serverreport/internal/workflow"
)

const dumpText = `=== Server: 10.0.0.1 ===
Hostname: web1
Disk Usage:
Filesystem Size Used Avail Use% Mounted-on
/dev/sda1 10G 5G 5G 50% /
/dev/sdb1 10G 10G 0 100% /var
Memory and Swap Usage:
total used free shared buff/cache available
Mem: 2G 1G 1G 0 0 1G
Failed Logins:
root ssh 1.2.3.4 Jan 1 00:00
=== End of 10.0.0.1 ===
=== Server: 10.0.0.2 ===
Disk Usage:
Filesystem Size Used Avail Use% Mounted-on
/dev/sda1 20G 1G 19G 5% /
=== End of 10.0.0.2 ===
`

func testPlan(t *testing.T) layout.Plan {
	rule, err := alert.Compile("use_percent >= 90")
	require.NoError(t, err)
	result, err := workflow.BuildPlan(dumpText, workflow.Options{
		DiskAlert: rule,
		Inventory: []inventory.Server{{ID: "10.0.0.9", Hostname: "legacy"}},
	})
	require.NoError(t, err)
	return result.Plan
}

func TestCreateXlsx(t *testing.T) {
	out, err := Create(FormatXlsx, testPlan(t))
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{layout.DefaultSummaryName, "10.0.0.1", "10.0.0.2", "10.0.0.9"}, f.GetSheetList())

	rows, err := f.GetRows(layout.DefaultSummaryName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"IP Address", "Hostname"},
		{"10.0.0.1", "web1"},
		{"10.0.0.2", "Unknown"},
		{"10.0.0.9", "legacy"},
	}, rows)
	for _, cell := range []string{"A2", "B2"} {
		ok, target, err := f.GetCellHyperLink(layout.DefaultSummaryName, cell)
		require.NoError(t, err)
		assert.True(t, ok, cell)
		assert.Equal(t, "'10.0.0.1'!A1", target)
	}

	sheet := "10.0.0.1"
	ok, target, err := f.GetCellHyperLink(sheet, "A1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "'Server List'!A1", target)

	cells := map[string]string{
		"A1": layout.BackLinkText,
		"A2": "Disk Usage",
		"A3": "Filesystem",
		"F3": "Mounted-on",
		"A4": "/dev/sda1",
		"F5": "/var",
		"I2": "Memory and Swap Usage",
		"I3": "total",
		"I4": "Mem:",
		"I7": "Failed Logins",
		"I8": "User",
		"L8": "Date/Time",
		"I9": "root",
		"L9": "Jan 1 00:00",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	// the second server has only a disk table
	got, err := f.GetCellValue("10.0.0.2", "I2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateXlsxEmptyPlan(t *testing.T) {
	out, err := Create(FormatXlsx, layout.LinkPages("", nil))
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{layout.DefaultSummaryName}, f.GetSheetList())
	rows, err := f.GetRows(layout.DefaultSummaryName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"IP Address", "Hostname"}}, rows)
}

func TestCreateText(t *testing.T) {
	out, err := Create(FormatTxt, testPlan(t))
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Server List\n===========\n")
	assert.Contains(t, text, "Disk Usage (A2)")
	assert.Contains(t, text, "Memory and Swap Usage (I2)")
	assert.Contains(t, text, "Failed Logins (I7)")
	assert.Contains(t, text, "! /dev/sdb1")
	assert.Contains(t, text, "Declared in inventory")
}

func TestCreateJson(t *testing.T) {
	out, err := Create(FormatJson, testPlan(t))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "pages")
	assert.Contains(t, string(out), `"kind": "failed_logins"`)
}

func TestCreateYaml(t *testing.T) {
	out, err := Create(FormatYaml, testPlan(t))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "links")
}

func TestCreateUnknownFormat(t *testing.T) {
	_, err := Create("pdf", layout.Plan{})
	assert.Error(t, err)
}

func TestExpandFormats(t *testing.T) {
	assert.Equal(t, FormatOptions, ExpandFormats([]string{FormatAll}))
	assert.Equal(t, []string{FormatJson, FormatXlsx}, ExpandFormats([]string{FormatJson, FormatXlsx, FormatJson}))
	assert.Equal(t, []string{FormatTxt, FormatXlsx, FormatJson, FormatYaml}, ExpandFormats([]string{FormatTxt, FormatAll}))
}

func TestGetValueForCell(t *testing.T) {
	assert.Equal(t, 42, getValueForCell("42"))
	assert.Equal(t, "10G", getValueForCell("10G"))
	assert.Equal(t, "007", getValueForCell("007"))
	assert.Equal(t, "10.0.0.1", getValueForCell("10.0.0.1"))
}
