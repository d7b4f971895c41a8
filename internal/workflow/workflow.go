// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package workflow drives a report run: split the dump, extract every server, plan its
// page and link the pages into a single plan.
package workflow

import (
	"log/slog"

	"github.com/pkg/errors"

	"serverreport/internal/alert"
	"serverreport/internal/diag"
	"serverreport/internal/dump"
	"serverreport/internal/extract"
	"serverreport/internal/inventory"
	"serverreport/internal/layout"
	"serverreport/internal/table"
)

// StatusUpdateFunc is called as each server moves through the run
type StatusUpdateFunc func(server string, status string)

// Options configure a run
type Options struct {
	SummaryName  string
	Duplicates   layout.DuplicatePolicy
	DiskAlert    *alert.Rule
	Inventory    []inventory.Server
	StatusUpdate StatusUpdateFunc
}

// Result is the outcome of a run
type Result struct {
	Plan        layout.Plan
	Reports     []extract.ServerReport
	Diagnostics *diag.Collector
}

// BuildPlan processes the dump and the inventory servers, in that order. Servers are
// handled one at a time; the summary and the set of used page names are only updated
// once a server's report is complete.
func BuildPlan(text string, opts Options) (Result, error) {
	summaryName := opts.SummaryName
	if summaryName == "" {
		summaryName = layout.DefaultSummaryName
	}
	if sanitized := layout.SanitizePageName(summaryName); sanitized != summaryName {
		return Result{}, errors.Errorf("summary page name %q is not a valid sheet name, try %q", summaryName, sanitized)
	}
	namer, err := layout.NewPageNamer(opts.Duplicates, summaryName)
	if err != nil {
		return Result{}, err
	}
	update := opts.StatusUpdate
	if update == nil {
		update = func(string, string) {}
	}
	result := Result{Diagnostics: diag.NewCollector()}

	blocks := dump.SplitBlocks(text)
	slog.Info("split dump", slog.Int("servers", len(blocks)))
	if len(blocks) == 0 {
		slog.Warn("no server blocks found in dump, report will contain only the summary page")
	}
	var reports []extract.ServerReport
	for _, block := range blocks {
		update(block.ID, "extracting")
		reports = append(reports, extract.BuildServerReport(block))
	}
	for _, server := range opts.Inventory {
		update(server.ID, "adding from inventory")
		reports = append(reports, extract.PlaceholderReport(server.ID, server.Hostname))
	}

	pages := make([]layout.Page, 0, len(reports))
	for _, report := range reports {
		name, err := namer.Name(report.ID)
		if err != nil {
			return Result{}, err
		}
		if name != report.ID {
			slog.Warn("page renamed", slog.String("server", report.ID), slog.String("page", name))
		}
		update(report.ID, "planning")
		page := layout.PlanPage(name, report, layout.PlanOptions{DiskAlert: opts.DiskAlert})
		if err := validatePage(page); err != nil {
			return Result{}, err
		}
		if disk, ok := page.Band(table.Disk); ok {
			result.Diagnostics.ObserveAlerts(len(disk.AlertRows))
		}
		result.Diagnostics.ObserveReport(report)
		result.Reports = append(result.Reports, report)
		pages = append(pages, page)
		update(report.ID, "done")
	}
	result.Plan = layout.LinkPages(summaryName, pages)
	return result, nil
}

func validatePage(page layout.Page) error {
	for _, band := range page.Bands {
		if err := table.Validate(band.Table); err != nil {
			return errors.Wrapf(err, "page %s", page.Name)
		}
	}
	return nil
}
