// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package extract

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"serverreport/internal/dump"
	"serverreport/internal/table"
)

// FailedLoginHeaders are the fixed column headers of the failed logins table
var FailedLoginHeaders = []string{"User", "Service", "IP Address", "Date/Time"}

const minLoginTokens = 4

// FailedLoginRecord is one line of lastb output
type FailedLoginRecord struct {
	User      string `json:"user" yaml:"user"`
	Service   string `json:"service" yaml:"service"`
	IP        string `json:"ip" yaml:"ip"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Fields returns the record in FailedLoginHeaders order
func (r FailedLoginRecord) Fields() []string {
	return []string{r.User, r.Service, r.IP, r.Timestamp}
}

// CleanFailedLogins drops blank lines, btmp banners and end markers, then removes exact
// duplicate lines keeping the first occurrence.
func CleanFailedLogins(lines []string) []string {
	cleaned, _ := cleanFailedLogins(lines)
	return cleaned
}

func cleanFailedLogins(lines []string) ([]string, Diagnostics) {
	var diag Diagnostics
	seen := mapset.NewThreadUnsafeSet[string]()
	cleaned := []string{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, dump.RotationMarkerPrefix) || dump.IsEndMarker(trimmed) {
			diag.drop(table.FailedLogins, ReasonNoise)
			continue
		}
		if !seen.Add(line) {
			diag.drop(table.FailedLogins, ReasonDuplicate)
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned, diag
}

// ParseFailedLogin maps a cleaned line to a record. Lines with fewer than four tokens
// produce no record.
func ParseFailedLogin(line string) (FailedLoginRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < minLoginTokens {
		return FailedLoginRecord{}, false
	}
	return FailedLoginRecord{
		User:      fields[0],
		Service:   fields[1],
		IP:        fields[2],
		Timestamp: strings.Join(fields[3:], " "),
	}, true
}

// ExtractFailedLogins cleans the section and parses every surviving line
func ExtractFailedLogins(lines []string) ([]FailedLoginRecord, Diagnostics) {
	cleaned, diag := cleanFailedLogins(lines)
	records := []FailedLoginRecord{}
	for _, line := range cleaned {
		record, ok := ParseFailedLogin(line)
		if !ok {
			diag.drop(table.FailedLogins, ReasonShort)
			continue
		}
		records = append(records, record)
	}
	return records, diag
}

// LoginsTable renders records as a table with FailedLoginHeaders
func LoginsTable(records []FailedLoginRecord) table.Table {
	t := table.New(table.FailedLogins, FailedLoginHeaders)
	for _, r := range records {
		t.Rows = append(t.Rows, r.Fields())
	}
	return t
}
