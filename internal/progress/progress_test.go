// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLineNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStatusLine(&buf, 2)
	sl.Status("10.0.0.1", "extracting")
	sl.Status("10.0.0.1", "extracting")
	sl.Status("10.0.0.1", "done")
	sl.Status("10.0.0.2", "done")
	sl.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "[1/2]")
	assert.Contains(t, lines[2], "[2/2]")
	assert.NotContains(t, buf.String(), "\x1b")
}
