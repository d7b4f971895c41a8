// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package alert evaluates user supplied expressions against disk usage rows.
package alert

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"

	"serverreport/internal/table"
)

// Variables available to a disk rule, in df column order followed by derived values
var Variables = []string{
	"filesystem", "size", "used", "avail", "use_percent", "mounted_on",
	"size_bytes", "used_bytes", "avail_bytes",
}

const diskColumns = 6

// Rule is a compiled boolean expression over a disk row
type Rule struct {
	source     string
	expression *govaluate.EvaluableExpression
}

// Compile parses expr and rejects references to unknown variables
func Compile(expr string) (*Rule, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid disk alert expression %q", expr)
	}
	for _, v := range expression.Vars() {
		if !slices.Contains(Variables, v) {
			return nil, fmt.Errorf("disk alert expression %q uses unknown variable %s, choose from: %s", expr, v, strings.Join(Variables, ", "))
		}
	}
	return &Rule{source: expr, expression: expression}, nil
}

// String returns the expression the rule was compiled from
func (r *Rule) String() string {
	return r.source
}

// Match reports whether row satisfies the rule. Rows that cannot be evaluated, e.g.,
// a non-numeric Use% compared to a number, do not match.
func (r *Rule) Match(row []string) bool {
	result, err := r.expression.Evaluate(parameters(row))
	if err != nil {
		slog.Debug("disk alert not evaluated", slog.String("rule", r.source), slog.String("row", strings.Join(row, " ")), slog.String("error", err.Error()))
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// MatchingRows returns the indexes of the disk rows that satisfy the rule
func (r *Rule) MatchingRows(t table.Table) []int {
	rows := []int{}
	if r == nil {
		return rows
	}
	for i, row := range t.Rows {
		if r.Match(row) {
			rows = append(rows, i)
		}
	}
	return rows
}

func parameters(row []string) map[string]any {
	fields := table.Fit(row, diskColumns)
	params := map[string]any{
		"filesystem": fields[0],
		"size":       fields[1],
		"used":       fields[2],
		"avail":      fields[3],
		"mounted_on": fields[5],
	}
	// leave numeric variables unset when they do not parse so that comparisons fail
	if pct, err := strconv.ParseFloat(strings.TrimSuffix(fields[4], "%"), 64); err == nil {
		params["use_percent"] = pct
	}
	for name, value := range map[string]string{"size_bytes": fields[1], "used_bytes": fields[2], "avail_bytes": fields[3]} {
		if b, err := ParseSize(value); err == nil {
			params[name] = b
		}
	}
	return params
}

var sizeUnits = map[byte]float64{
	'B': 1,
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
	'P': 1 << 50,
}

// ParseSize converts human readable df/free sizes (e.g., 1.5G, 512M, 0) to bytes
func ParseSize(value string) (float64, error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "i")
	if value == "" {
		return 0, fmt.Errorf("empty size")
	}
	multiplier := 1.0
	if unit, ok := sizeUnits[strings.ToUpper(value[len(value)-1:])[0]]; ok {
		multiplier = unit
		value = value[:len(value)-1]
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %v", value, err)
	}
	return number * multiplier, nil
}
