// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package diag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serverreport/internal/dump"
	"serverreport/internal/extract"
)

func TestObserveReport(t *testing.T) {
	text := "=== Server: a ===\nDisk Usage:\nFilesystem Size Used Avail Use% Mounted-on\nbad row\nFailed Logins:\nx y\nroot ssh 1.1.1.1 now\nroot ssh 1.1.1.1 now\n"
	report := extract.BuildServerReport(dump.SplitBlocks(text)[0])

	c := NewCollector()
	c.ObserveReport(report)
	c.ObserveReport(extract.PlaceholderReport("m", "manual"))
	c.ObserveAlerts(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.servers.WithLabelValues("dump")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.servers.WithLabelValues("inventory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sectionsAbsent.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rowsDropped.WithLabelValues("disk", extract.ReasonShort)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rowsDropped.WithLabelValues("failed_logins", extract.ReasonShort)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rowsDropped.WithLabelValues("failed_logins", extract.ReasonDuplicate)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.alertRows))
	c.Log()
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveReport(extract.PlaceholderReport("m", ""))
	path := filepath.Join(t.TempDir(), "report.prom")
	require.NoError(t, c.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `serverreport_servers_total{origin="inventory"} 1`)
}
