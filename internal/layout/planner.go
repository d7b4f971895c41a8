// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package layout places a server's tables on a detail page and links the detail pages
// to the summary page. It produces coordinates only, rendering is left to the report package.
package layout

import (
	"serverreport/internal/alert"
	"serverreport/internal/extract"
	"serverreport/internal/table"
)

// Page geometry, rows and columns are 1-based
const (
	BackLinkRow = 1 // reserved for the link back to the summary page
	TopRow      = 2 // section titles of the top bands
	ColumnGap   = 2 // empty columns between the disk band and the right hand bands
	RowGap      = 2 // empty rows between the memory band and the failed logins band
)

// Band is the rectangle a table occupies on a page: a title row, a header row and one
// row per data row
type Band struct {
	Kind      table.Kind  `json:"kind" yaml:"kind"`
	Title     string      `json:"title" yaml:"title"`
	Top       int         `json:"top" yaml:"top"`
	Left      int         `json:"left" yaml:"left"`
	RowExtent int         `json:"rowExtent" yaml:"rowextent"`
	ColExtent int         `json:"colExtent" yaml:"colextent"`
	Table     table.Table `json:"table" yaml:"table"`
	AlertRows []int       `json:"alertRows,omitempty" yaml:"alertrows,omitempty"`
}

// HeaderRow is the row holding the column headers
func (b Band) HeaderRow() int {
	return b.Top + 1
}

// DataRow returns the page row of the i'th data row
func (b Band) DataRow(i int) int {
	return b.Top + 2 + i
}

// Bottom is the last row occupied by the band
func (b Band) Bottom() int {
	return b.Top + b.RowExtent - 1
}

// Right is the last column occupied by the band
func (b Band) Right() int {
	return b.Left + b.ColExtent - 1
}

// ColumnsOverlap reports whether the column ranges of the two bands intersect
func (b Band) ColumnsOverlap(o Band) bool {
	return b.Left <= o.Right() && o.Left <= b.Right()
}

// Overlaps reports whether the two rectangles intersect
func (b Band) Overlaps(o Band) bool {
	return b.ColumnsOverlap(o) && b.Top <= o.Bottom() && o.Top <= b.Bottom()
}

// Page is one detail sheet
type Page struct {
	Name     string `json:"name" yaml:"name"`
	ServerID string `json:"serverId" yaml:"serverid"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Manual   bool   `json:"manual,omitempty" yaml:"manual,omitempty"`
	Bands    []Band `json:"bands" yaml:"bands"`
	Rows     int    `json:"rows" yaml:"rows"`
	Cols     int    `json:"cols" yaml:"cols"`
}

// Band returns the band holding the table of the given kind
func (p Page) Band(kind table.Kind) (Band, bool) {
	for _, b := range p.Bands {
		if b.Kind == kind {
			return b, true
		}
	}
	return Band{}, false
}

// PlanOptions tune the planner
type PlanOptions struct {
	DiskAlert *alert.Rule
}

// PlanPage lays out the report's tables. The disk band sits at the top left. The memory
// band starts ColumnGap columns right of the disk band's declared width, and the failed
// logins band shares its columns, RowGap rows below the memory data. Absent sections get
// no band and reserve no rows.
func PlanPage(name string, report extract.ServerReport, opts PlanOptions) Page {
	page := Page{
		Name:     name,
		ServerID: report.ID,
		Hostname: report.Hostname,
		Manual:   report.Manual,
	}
	diskWidth := extract.DiskColumns
	if report.Disk != nil {
		diskWidth = report.Disk.Width()
		disk := newBand(*report.Disk, TopRow, 1)
		disk.AlertRows = opts.DiskAlert.MatchingRows(*report.Disk)
		page.Bands = append(page.Bands, disk)
	}
	rightColumn := diskWidth + ColumnGap + 1
	nextTop := TopRow
	if report.Memory != nil {
		memory := newBand(*report.Memory, TopRow, rightColumn)
		page.Bands = append(page.Bands, memory)
		nextTop = memory.Bottom() + RowGap + 1
	}
	if logins := report.FailedLoginsTable(); logins != nil {
		page.Bands = append(page.Bands, newBand(*logins, nextTop, rightColumn))
	}
	page.Rows, page.Cols = BackLinkRow, 1
	for _, b := range page.Bands {
		page.Rows = max(page.Rows, b.Bottom())
		page.Cols = max(page.Cols, b.Right())
	}
	return page
}

func newBand(t table.Table, top, left int) Band {
	return Band{
		Kind:      t.Kind,
		Title:     t.Kind.Title(),
		Top:       top,
		Left:      left,
		RowExtent: 2 + t.Height(),
		ColExtent: t.Width(),
		Table:     t,
	}
}
