package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"serverreport/internal/layout"
)

const linkColor = "0563C1"

type xlsxStyles struct {
	title  int
	header int
	cell   int
	alert  int
	link   int
}

func thinBorder() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "right", "top", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return borders
}

func newXlsxStyles(f *excelize.File) (styles xlsxStyles, err error) {
	definitions := []struct {
		id    *int
		style *excelize.Style
	}{
		{&styles.title, &excelize.Style{Font: &excelize.Font{Bold: true}, Border: thinBorder()}},
		{&styles.header, &excelize.Style{Font: &excelize.Font{Bold: true}, Border: thinBorder()}},
		{&styles.cell, &excelize.Style{Border: thinBorder(), Alignment: &excelize.Alignment{Horizontal: "left"}}},
		{&styles.alert, &excelize.Style{
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
			Font:      &excelize.Font{Color: "9C0006"},
		}},
		{&styles.link, &excelize.Style{Font: &excelize.Font{Color: linkColor, Underline: "single"}}},
	}
	for _, d := range definitions {
		if *d.id, err = f.NewStyle(d.style); err != nil {
			err = errors.Wrap(err, "failed to create xlsx style")
			return
		}
	}
	return
}

// sheetWriter writes cells to one sheet and remembers the widest value per column
type sheetWriter struct {
	f      *excelize.File
	name   string
	widths map[int]int
}

func (w *sheetWriter) set(col, row int, value string, style int) error {
	cell := layout.CellName(col, row)
	if err := w.f.SetCellValue(w.name, cell, getValueForCell(value)); err != nil {
		return err
	}
	w.widths[col] = max(w.widths[col], utf8.RuneCountInString(value))
	if style == 0 {
		return nil
	}
	return w.f.SetCellStyle(w.name, cell, cell, style)
}

func (w *sheetWriter) style(left, top, right, bottom int, style int) error {
	if right < left || bottom < top {
		return nil
	}
	return w.f.SetCellStyle(w.name, layout.CellName(left, top), layout.CellName(right, bottom), style)
}

func (w *sheetWriter) link(l layout.Link) error {
	return w.f.SetCellHyperLink(w.name, l.FromCell, l.Location(), "Location")
}

// fitColumns sets every used column to its widest value plus two characters
func (w *sheetWriter) fitColumns() error {
	cols := make([]int, 0, len(w.widths))
	for col := range w.widths {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	for _, col := range cols {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.name, name, name, float64(w.widths[col]+2)); err != nil {
			return err
		}
	}
	return nil
}

func renderXlsxSummary(f *excelize.File, plan layout.Plan, styles xlsxStyles) error {
	w := &sheetWriter{f: f, name: plan.Summary.Name, widths: map[int]int{}}
	for col, header := range plan.Summary.Headers {
		if err := w.set(col+1, 1, header, styles.header); err != nil {
			return err
		}
	}
	for _, row := range plan.Summary.Rows {
		if err := w.set(1, row.Row, row.ID, styles.link); err != nil {
			return err
		}
		if err := w.set(2, row.Row, row.Hostname, styles.link); err != nil {
			return err
		}
	}
	for _, l := range plan.LinksFrom(plan.Summary.Name) {
		if err := w.link(l); err != nil {
			return err
		}
	}
	return w.fitColumns()
}

func renderXlsxBand(w *sheetWriter, band layout.Band, styles xlsxStyles) error {
	// border the whole band first, the title, header and alert styles overwrite it
	if err := w.style(band.Left, band.Top, band.Right(), band.Bottom(), styles.cell); err != nil {
		return err
	}
	if err := w.set(band.Left, band.Top, band.Title, styles.title); err != nil {
		return err
	}
	for i, header := range band.Table.Headers {
		if err := w.set(band.Left+i, band.HeaderRow(), header, styles.header); err != nil {
			return err
		}
	}
	for r, row := range band.Table.Rows {
		style := styles.cell
		if slices.Contains(band.AlertRows, r) {
			style = styles.alert
		}
		for c, value := range row {
			if err := w.set(band.Left+c, band.DataRow(r), value, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderXlsxPage(f *excelize.File, plan layout.Plan, page layout.Page, styles xlsxStyles) error {
	if _, err := f.NewSheet(page.Name); err != nil {
		return err
	}
	w := &sheetWriter{f: f, name: page.Name, widths: map[int]int{}}
	if err := w.set(1, layout.BackLinkRow, layout.BackLinkText, styles.link); err != nil {
		return err
	}
	for _, l := range plan.LinksFrom(page.Name) {
		if err := w.link(l); err != nil {
			return err
		}
	}
	for _, band := range page.Bands {
		if err := renderXlsxBand(w, band, styles); err != nil {
			return errors.Wrapf(err, "failed to render %s", band.Title)
		}
	}
	if err := f.SetPanes(page.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      layout.BackLinkRow,
		TopLeftCell: layout.CellName(1, layout.BackLinkRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return w.fitColumns()
}

func createXlsxReport(plan layout.Plan) (out []byte, err error) {
	f := excelize.NewFile()
	defer f.Close()
	if err = f.SetSheetName("Sheet1", plan.Summary.Name); err != nil {
		err = errors.Wrap(err, "failed to name summary sheet")
		return
	}
	styles, err := newXlsxStyles(f)
	if err != nil {
		return
	}
	if err = renderXlsxSummary(f, plan, styles); err != nil {
		err = errors.Wrap(err, "failed to render summary sheet")
		return
	}
	for _, page := range plan.Pages {
		if err = renderXlsxPage(f, plan, page, styles); err != nil {
			err = errors.Wrapf(err, "failed to render sheet %s", page.Name)
			return
		}
	}
	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		err = errors.Wrap(err, "failed to write xlsx report to buffer")
		return
	}
	out = buf.Bytes()
	return
}

// getValueForCell stores integers as numbers so that they sort and sum in the workbook.
// Everything else, including sizes like 10G and addresses, stays text.
func getValueForCell(value string) (val any) {
	intValue, err := strconv.Atoi(value)
	if err == nil && strconv.Itoa(intValue) == value {
		val = intValue
		return
	}
	val = value
	return
}
