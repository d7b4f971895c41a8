// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSummaryName names the index page
	DefaultSummaryName = "Server List"
	// Anchor is the cell every link lands on
	Anchor = "A1"
	// BackLinkText is written in the back link cell of every detail page
	BackLinkText = "Back to Main Page"
)

// SummaryHeaders is the header row of the summary page
var SummaryHeaders = []string{"IP Address", "Hostname"}

// Link is a same-document reference from a cell to the anchor of another page
type Link struct {
	FromPage string `json:"fromPage" yaml:"frompage"`
	FromCell string `json:"fromCell" yaml:"fromcell"`
	ToPage   string `json:"toPage" yaml:"topage"`
	ToAnchor string `json:"toAnchor" yaml:"toanchor"`
}

// Location is the in-workbook target of the link, e.g., 'Server List'!A1
func (l Link) Location() string {
	return QuoteSheetName(l.ToPage) + "!" + l.ToAnchor
}

// SummaryRow is one server's entry on the summary page
type SummaryRow struct {
	Row      int    `json:"row" yaml:"row"`
	ID       string `json:"id" yaml:"id"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Page     string `json:"page" yaml:"page"`
}

// Summary is the index page
type Summary struct {
	Name    string       `json:"name" yaml:"name"`
	Headers []string     `json:"headers" yaml:"headers"`
	Rows    []SummaryRow `json:"rows" yaml:"rows"`
}

// Plan is the complete, renderer independent description of the report
type Plan struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Pages   []Page  `json:"pages" yaml:"pages"`
	Links   []Link  `json:"links" yaml:"links"`
}

// LinksFrom returns the links that start on the named page
func (p Plan) LinksFrom(page string) []Link {
	var links []Link
	for _, l := range p.Links {
		if l.FromPage == page {
			links = append(links, l)
		}
	}
	return links
}

// LinkPages builds the summary page, one row per page in the given order, and the links
// between the summary and every detail page. Both cells of a summary row point at the
// detail page and every detail page points back at the summary.
func LinkPages(summaryName string, pages []Page) Plan {
	if summaryName == "" {
		summaryName = DefaultSummaryName
	}
	plan := Plan{
		Summary: Summary{Name: summaryName, Headers: append([]string{}, SummaryHeaders...)},
		Pages:   pages,
		Links:   []Link{},
	}
	for i, page := range pages {
		row := i + 2
		plan.Summary.Rows = append(plan.Summary.Rows, SummaryRow{Row: row, ID: page.ServerID, Hostname: page.Hostname, Page: page.Name})
		for col := range SummaryHeaders {
			plan.Links = append(plan.Links, Link{FromPage: summaryName, FromCell: CellName(col+1, row), ToPage: page.Name, ToAnchor: Anchor})
		}
		plan.Links = append(plan.Links, Link{FromPage: page.Name, FromCell: CellName(1, BackLinkRow), ToPage: summaryName, ToAnchor: Anchor})
	}
	return plan
}

// CellName converts 1-based coordinates to A1 notation
func CellName(col int, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}

// QuoteSheetName quotes a sheet name for use in a cell reference
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
