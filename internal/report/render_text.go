package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"serverreport/internal/layout"
)

const columnSpacing = 3

func createTextReport(plan layout.Plan) (out []byte, err error) {
	var sb strings.Builder
	writeHeading(&sb, plan.Summary.Name, "=")
	summaryRows := make([][]string, 0, len(plan.Summary.Rows))
	for _, row := range plan.Summary.Rows {
		summaryRows = append(summaryRows, []string{row.ID, row.Hostname, "-> " + row.Page})
	}
	if len(summaryRows) == 0 {
		sb.WriteString(noDataFound + "\n")
	} else {
		sb.WriteString(renderTextRows(append(append([]string{}, plan.Summary.Headers...), "Page"), summaryRows))
	}
	sb.WriteString("\n")
	for _, page := range plan.Pages {
		writeHeading(&sb, page.Name, "=")
		sb.WriteString(fmt.Sprintf("Hostname: %s\n", page.Hostname))
		if page.Manual {
			sb.WriteString("Declared in inventory, no collected data.\n")
		}
		sb.WriteString("\n")
		if len(page.Bands) == 0 {
			sb.WriteString(noDataFound + "\n\n")
			continue
		}
		for _, band := range page.Bands {
			writeHeading(&sb, fmt.Sprintf("%s (%s)", band.Title, layout.CellName(band.Left, band.Top)), "-")
			if len(band.Table.Rows) == 0 {
				sb.WriteString(renderTextRows(band.Table.Headers, nil))
				sb.WriteString(noDataFound + "\n\n")
				continue
			}
			rows := band.Table.Rows
			if len(band.AlertRows) > 0 {
				rows = markAlertRows(rows, band.AlertRows)
			}
			sb.WriteString(renderTextRows(band.Table.Headers, rows))
			sb.WriteString("\n")
		}
	}
	out = []byte(sb.String())
	return
}

func writeHeading(sb *strings.Builder, title string, underline string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat(underline, len(title)) + "\n")
}

func markAlertRows(rows [][]string, alertRows []int) [][]string {
	marked := make([][]string, len(rows))
	for i, row := range rows {
		marked[i] = append([]string{}, row...)
	}
	for _, i := range alertRows {
		if i < len(marked) && len(marked[i]) > 0 {
			marked[i][0] = "! " + marked[i][0]
		}
	}
	return marked
}

// renderTextRows prints headers across the top followed by the rows, each column as wide
// as its longest value. The last column is not padded.
func renderTextRows(headers []string, rows [][]string) string {
	var sb strings.Builder
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, n := 0, min(len(row), len(widths)); i < n; i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}
	writeRow := func(values []string) {
		var line strings.Builder
		for i, v := range values {
			if i == len(values)-1 {
				line.WriteString(v)
				continue
			}
			line.WriteString(fmt.Sprintf("%-*s", widths[i]+columnSpacing, v))
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}
	writeRow(headers)
	underlines := make([]string, len(headers))
	for i, h := range headers {
		underlines[i] = strings.Repeat("-", len(h))
	}
	writeRow(underlines)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
