// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package table defines the normalized tables extracted from a server's dump and
// the section kinds they come from.
package table

import (
	"fmt"
)

// Kind identifies one of the fixed sections found in a server block
type Kind int

const (
	Disk Kind = iota
	Memory
	FailedLogins
)

// Kinds lists every section kind in page order
var Kinds = []Kind{Disk, Memory, FailedLogins}

// String returns the short, lower case name used in logs and metric labels
func (k Kind) String() string {
	switch k {
	case Disk:
		return "disk"
	case Memory:
		return "memory"
	case FailedLogins:
		return "failed_logins"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the section title written above the table on a detail page
func (k Kind) Title() string {
	switch k {
	case Disk:
		return "Disk Usage"
	case Memory:
		return "Memory and Swap Usage"
	case FailedLogins:
		return "Failed Logins"
	}
	return ""
}

// Header returns the exact line that opens the section in the dump
func (k Kind) Header() string {
	return k.Title() + ":"
}

// MarshalText lets a Kind be used as a json/yaml value
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Table is a header row and data rows, all rows having len(Headers) fields
type Table struct {
	Kind    Kind       `json:"kind" yaml:"kind"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// New returns an empty table with a copy of the given headers
func New(kind Kind, headers []string) Table {
	return Table{Kind: kind, Headers: append([]string{}, headers...)}
}

// Width is the number of columns in the table
func (t Table) Width() int {
	return len(t.Headers)
}

// Height is the number of data rows in the table
func (t Table) Height() int {
	return len(t.Rows)
}

// Fit pads fields with empty strings or truncates them so that exactly width fields remain.
// The input slice is never modified.
func Fit(fields []string, width int) []string {
	if width < 0 {
		width = 0
	}
	row := make([]string, width)
	copy(row, fields)
	return row
}

// GetColumnIndex returns the index of the column with the given header
func GetColumnIndex(header string, t Table) (int, error) {
	for i, h := range t.Headers {
		if h == header {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column [%s] not found in table [%s]", header, t.Kind)
}

// Validate confirms that every row has exactly one field per header
func Validate(t Table) error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("table %s, row %d, expected %d fields, got %d", t.Kind, i, len(t.Headers), len(row))
		}
	}
	return nil
}
