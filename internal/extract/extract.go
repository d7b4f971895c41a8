// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package extract turns the sections of a server block into normalized tables and
// assembles them into a ServerReport.
package extract

import (
	"log/slog"

	"serverreport/internal/dump"
	"serverreport/internal/table"
)

// Drop reasons recorded in Diagnostics
const (
	ReasonShort      = "short"        // fewer tokens than the table needs
	ReasonNoise      = "noise"        // blank lines and log banners
	ReasonDuplicate  = "duplicate"    // repeated failed-login line
	ReasonNotMemSwap = "not_mem_swap" // memory line that is neither Mem: nor Swap:
)

// Diagnostics counts the anomalies absorbed while extracting one server
type Diagnostics struct {
	Absent  []table.Kind
	Dropped map[table.Kind]map[string]int
}

func (d *Diagnostics) drop(kind table.Kind, reason string) {
	d.add(kind, reason, 1)
}

func (d *Diagnostics) add(kind table.Kind, reason string, n int) {
	if d.Dropped == nil {
		d.Dropped = make(map[table.Kind]map[string]int)
	}
	if d.Dropped[kind] == nil {
		d.Dropped[kind] = make(map[string]int)
	}
	d.Dropped[kind][reason] += n
}

// DroppedCount returns the number of lines dropped for kind and reason
func (d Diagnostics) DroppedCount(kind table.Kind, reason string) int {
	return d.Dropped[kind][reason]
}

// TotalDropped returns the number of lines dropped for any kind and reason
func (d Diagnostics) TotalDropped() (total int) {
	for _, reasons := range d.Dropped {
		for _, n := range reasons {
			total += n
		}
	}
	return
}

func (d *Diagnostics) merge(kind table.Kind, other Diagnostics) {
	for reason, n := range other.Dropped[kind] {
		d.add(kind, reason, n)
	}
}

// ServerReport is everything extracted for one server. Disk and Memory are nil when the
// section is absent; FailedLoginsFound is false when the Failed Logins section is absent.
type ServerReport struct {
	ID                string
	Hostname          string
	Disk              *table.Table
	Memory            *table.Table
	FailedLogins      []FailedLoginRecord
	FailedLoginsFound bool
	Manual            bool
	Diagnostics       Diagnostics
}

// FailedLoginsTable returns the failed logins as a table, or nil if the section was absent
func (r ServerReport) FailedLoginsTable() *table.Table {
	if !r.FailedLoginsFound {
		return nil
	}
	t := LoginsTable(r.FailedLogins)
	return &t
}

// Table returns the table of the given kind, or nil if the section was absent
func (r ServerReport) Table(kind table.Kind) *table.Table {
	switch kind {
	case table.Disk:
		return r.Disk
	case table.Memory:
		return r.Memory
	case table.FailedLogins:
		return r.FailedLoginsTable()
	}
	return nil
}

// BuildServerReport locates and extracts every section of the block
func BuildServerReport(block dump.ServerBlock) ServerReport {
	report := ServerReport{
		ID:       block.ID,
		Hostname: block.Hostname(),
	}
	sections := block.LocateSections()
	for _, kind := range table.Kinds {
		section, ok := sections[kind]
		if !ok {
			report.Diagnostics.Absent = append(report.Diagnostics.Absent, kind)
			slog.Debug("section not found", slog.String("server", block.ID), slog.String("section", kind.String()))
			continue
		}
		switch kind {
		case table.Disk:
			t, diag := ExtractDisk(section.Lines)
			report.Disk = &t
			report.Diagnostics.merge(kind, diag)
		case table.Memory:
			t, diag := ExtractMemory(section.Lines)
			report.Memory = &t
			report.Diagnostics.merge(kind, diag)
		case table.FailedLogins:
			records, diag := ExtractFailedLogins(section.Lines)
			report.FailedLogins = records
			report.FailedLoginsFound = true
			report.Diagnostics.merge(kind, diag)
		}
	}
	slog.Debug("extracted server",
		slog.String("server", report.ID),
		slog.String("hostname", report.Hostname),
		slog.Int("diskRows", heightOf(report.Disk)),
		slog.Int("memoryRows", heightOf(report.Memory)),
		slog.Int("failedLogins", len(report.FailedLogins)))
	return report
}

// PlaceholderReport builds the report of a server known only by name. Every section is
// present with default headers and no rows.
func PlaceholderReport(id, hostname string) ServerReport {
	disk := table.New(table.Disk, DefaultDiskHeaders)
	memory := table.New(table.Memory, DefaultMemoryHeaders)
	if hostname == "" {
		hostname = dump.UnknownHostname
	}
	return ServerReport{
		ID:                id,
		Hostname:          hostname,
		Disk:              &disk,
		Memory:            &memory,
		FailedLogins:      []FailedLoginRecord{},
		FailedLoginsFound: true,
		Manual:            true,
	}
}

func heightOf(t *table.Table) int {
	if t == nil {
		return 0
	}
	return t.Height()
}
