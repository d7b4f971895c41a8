// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package diag counts the anomalies absorbed during a run so they can be reported
// instead of silently dropped.
package diag

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"serverreport/internal/extract"
	"serverreport/internal/table"
)

const namespace = "serverreport"

// Collector holds the counters of one run in its own registry
type Collector struct {
	registry       *prometheus.Registry
	servers        *prometheus.CounterVec
	sectionsAbsent *prometheus.CounterVec
	rowsDropped    *prometheus.CounterVec
	alertRows      prometheus.Counter
}

// NewCollector creates and registers the run counters
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		servers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "servers_total",
			Help:      "Servers written to the report, by origin",
		}, []string{"origin"}),
		sectionsAbsent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sections_absent_total",
			Help:      "Sections missing from server blocks",
		}, []string{"section"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Section lines that did not become table rows",
		}, []string{"section", "reason"}),
		alertRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disk_alert_rows_total",
			Help:      "Disk rows matching the alert rule",
		}),
	}
	c.registry.MustRegister(c.servers, c.sectionsAbsent, c.rowsDropped, c.alertRows)
	return c
}

// ObserveReport records the diagnostics of one server
func (c *Collector) ObserveReport(r extract.ServerReport) {
	origin := "dump"
	if r.Manual {
		origin = "inventory"
	}
	c.servers.WithLabelValues(origin).Inc()
	for _, kind := range r.Diagnostics.Absent {
		c.sectionsAbsent.WithLabelValues(kind.String()).Inc()
	}
	for _, kind := range table.Kinds {
		for reason, n := range r.Diagnostics.Dropped[kind] {
			c.rowsDropped.WithLabelValues(kind.String(), reason).Add(float64(n))
		}
	}
}

// ObserveAlerts records the number of disk rows flagged on a page
func (c *Collector) ObserveAlerts(n int) {
	c.alertRows.Add(float64(n))
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Log writes every non-zero counter at info level
func (c *Collector) Log() {
	families, err := c.registry.Gather()
	if err != nil {
		slog.Error("failed to gather diagnostics", slog.String("error", err.Error()))
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			attrs := []any{slog.String("counter", family.GetName()), slog.Float64("value", value)}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, slog.String(label.GetName(), label.GetValue()))
			}
			slog.Info("diagnostic", attrs...)
		}
	}
}

// WriteTextfile writes the counters in Prometheus text format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Wrap(err, "failed to write metrics file")
	}
	return nil
}
