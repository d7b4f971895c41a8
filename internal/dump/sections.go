// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package dump

import (
	"strings"

	"serverreport/internal/table"
)

const (
	// EndMarkerPrefix opens the line that closes a server block
	EndMarkerPrefix = "=== End of"
	// RotationMarkerPrefix opens the banner lastb prints for each btmp file
	RotationMarkerPrefix = "btmp begins"
	memoryRowPrefix      = "Mem:"
)

// Section is the lines found between a section title and its terminator
type Section struct {
	Kind  table.Kind
	Lines []string
}

// Terminator reports whether line ends the section being scanned
type Terminator struct {
	Name  string
	Match func(line string) bool
}

// IsEndMarker matches the end-of-block marker line
func IsEndMarker(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), EndMarkerPrefix)
}

// IsSectionTitle matches the title line of any known section
func IsSectionTitle(line string) bool {
	_, ok := titleKind(line)
	return ok
}

// IsBlank matches lines holding only whitespace
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsMemoryRow matches the first row of the memory table
func IsMemoryRow(line string) bool {
	return strings.HasPrefix(line, memoryRowPrefix)
}

// Terminators returns the rules that end a section of the given kind, in priority order
func Terminators(kind table.Kind) []Terminator {
	terminators := []Terminator{
		{Name: "end-of-block", Match: IsEndMarker},
		{Name: "section-title", Match: IsSectionTitle},
	}
	if kind == table.Disk {
		terminators = append(terminators,
			Terminator{Name: "blank", Match: IsBlank},
			Terminator{Name: "memory-row", Match: IsMemoryRow},
		)
	}
	return terminators
}

// Terminates returns the name of the first terminator matching line, or "" if none match
func Terminates(kind table.Kind, line string) string {
	for _, t := range Terminators(kind) {
		if t.Match(line) {
			return t.Name
		}
	}
	return ""
}

func titleKind(line string) (table.Kind, bool) {
	trimmed := strings.TrimSpace(line)
	for _, kind := range table.Kinds {
		if trimmed == kind.Header() {
			return kind, true
		}
	}
	return 0, false
}

// LocateSection finds the first title line for kind and returns the lines that follow it
// up to the first terminator. The boolean is false when the title is absent.
func LocateSection(lines []string, kind table.Kind) (Section, bool) {
	start := -1
	for i, line := range lines {
		if k, ok := titleKind(line); ok && k == kind {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return Section{Kind: kind}, false
	}
	section := Section{Kind: kind, Lines: []string{}}
	for _, line := range lines[start:] {
		if Terminates(kind, line) != "" {
			break
		}
		section.Lines = append(section.Lines, line)
	}
	return section, true
}

// LocateSections finds every known section in the block, keyed by kind. Absent sections
// are left out of the map.
func (b ServerBlock) LocateSections() map[table.Kind]Section {
	lines := b.Lines()
	sections := make(map[table.Kind]Section)
	for _, kind := range table.Kinds {
		if section, ok := LocateSection(lines, kind); ok {
			sections[kind] = section
		}
	}
	return sections
}
