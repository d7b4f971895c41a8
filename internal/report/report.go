// Package report renders a layout plan in various formats such as xlsx, txt, json and yaml.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"slices"
	"strings"

	"serverreport/internal/layout"
)

const (
	FormatXlsx = "xlsx"
	FormatTxt  = "txt"
	FormatJson = "json"
	FormatYaml = "yaml"
	FormatAll  = "all"
)

// FormatOptions lists the concrete formats, FormatAll expands to all of them
var FormatOptions = []string{FormatXlsx, FormatTxt, FormatJson, FormatYaml}

const noDataFound = "No data found."

// Create renders the plan in the requested format.
// If the format is not supported, an error is returned.
func Create(format string, plan layout.Plan) (out []byte, err error) {
	switch format {
	case FormatXlsx:
		return createXlsxReport(plan)
	case FormatTxt:
		return createTextReport(plan)
	case FormatJson:
		return createJsonReport(plan)
	case FormatYaml:
		return createYamlReport(plan)
	}
	return nil, fmt.Errorf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format)
}

// ExpandFormats replaces FormatAll with every concrete format and removes duplicates
func ExpandFormats(formats []string) []string {
	var expanded []string
	for _, format := range formats {
		candidates := []string{format}
		if format == FormatAll {
			candidates = FormatOptions
		}
		for _, c := range candidates {
			if !slices.Contains(expanded, c) {
				expanded = append(expanded, c)
			}
		}
	}
	return expanded
}
