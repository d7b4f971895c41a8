// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package extract

import (
	"strings"

	"serverreport/internal/table"
)

// DefaultMemoryHeaders are used for servers declared without a dump
var DefaultMemoryHeaders = []string{"Type", "total", "used", "free", "shared", "buff/cache", "available"}

var memoryRowPrefixes = []string{"Mem:", "Swap:"}

// ExtractMemory parses free output. The first line is the header; only Mem: and Swap:
// lines become rows, each fitted to the header width.
func ExtractMemory(lines []string) (table.Table, Diagnostics) {
	var diag Diagnostics
	t := table.New(table.Memory, nil)
	if len(lines) == 0 {
		return t, diag
	}
	t.Headers = strings.Fields(lines[0])
	for _, line := range lines[1:] {
		if !isMemoryRow(line) {
			if strings.TrimSpace(line) != "" {
				diag.drop(table.Memory, ReasonNotMemSwap)
			}
			continue
		}
		t.Rows = append(t.Rows, table.Fit(strings.Fields(line), t.Width()))
	}
	return t, diag
}

func isMemoryRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range memoryRowPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
