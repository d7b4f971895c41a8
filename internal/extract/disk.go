// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package extract

import (
	"strings"

	"serverreport/internal/dump"
	"serverreport/internal/table"
)

// DiskColumns is the number of columns kept from df output
const DiskColumns = 6

// DefaultDiskHeaders are used for servers declared without a dump
var DefaultDiskHeaders = []string{"Filesystem", "Size", "Used", "Avail", "Use%", "Mounted-on"}

// ExtractDisk parses df output. The first line is the header. Data lines need at least
// six tokens and only the first six are kept, so mount points containing spaces are cut
// at the first space.
func ExtractDisk(lines []string) (table.Table, Diagnostics) {
	var diag Diagnostics
	t := table.New(table.Disk, nil)
	if len(lines) == 0 {
		t.Headers = table.Fit(nil, DiskColumns)
		return t, diag
	}
	t.Headers = diskHeaders(strings.Fields(lines[0]))
	for _, line := range lines[1:] {
		if dump.Terminates(table.Disk, line) != "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < DiskColumns {
			diag.drop(table.Disk, ReasonShort)
			continue
		}
		t.Rows = append(t.Rows, table.Fit(fields, DiskColumns))
	}
	return t, diag
}

// diskHeaders folds header tokens past the sixth into the last column, so df's
// "Mounted on" stays one header
func diskHeaders(tokens []string) []string {
	if len(tokens) <= DiskColumns {
		return table.Fit(tokens, DiskColumns)
	}
	headers := table.Fit(tokens, DiskColumns)
	headers[DiskColumns-1] = strings.Join(tokens[DiskColumns-1:], " ")
	return headers
}
