package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSyslogMessage(t *testing.T) {
	r := slog.NewRecord(time.Now(), slog.LevelWarn, "page renamed", 0)
	r.AddAttrs(slog.String("server", "10.0.0.1"), slog.Int("rows", 3))
	msg := formatSyslogMessage(r, true, []slog.Attr{slog.String("run", "a b")})
	assert.Equal(t, `level=WARN msg="page renamed" run="a b" server="10.0.0.1" rows="3"`, msg)
}
