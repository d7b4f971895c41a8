// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

/*
Package progress shows which server is being processed.
*/
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var spinChars []string = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// StatusLine prints the latest status of a run. On a terminal the line is redrawn in
// place, otherwise every change is printed on its own line.
type StatusLine struct {
	out       io.Writer
	terminal  bool
	spinIndex int
	last      string
	total     int
	done      int
	drawn     bool
}

// NewStatusLine creates a StatusLine for total items written to out
func NewStatusLine(out io.Writer, total int) *StatusLine {
	sl := &StatusLine{out: out, total: total}
	if f, ok := out.(*os.File); ok {
		sl.terminal = term.IsTerminal(int(f.Fd()))
	}
	return sl
}

// Status records the status of an item. A status of "done" counts the item as finished.
func (sl *StatusLine) Status(label string, status string) {
	if status == "done" {
		sl.done++
	}
	line := fmt.Sprintf("%-20s  %s  %-24s [%d/%d]", label, spinChars[sl.spinIndex], status, sl.done, sl.total)
	sl.spinIndex = (sl.spinIndex + 1) % len(spinChars)
	if sl.terminal {
		fmt.Fprintf(sl.out, "\r\x1b[2K%s", line)
		sl.drawn = true
		return
	}
	key := label + "\x00" + status
	if key == sl.last {
		return
	}
	sl.last = key
	fmt.Fprintln(sl.out, line)
}

// Finish ends the status line
func (sl *StatusLine) Finish() {
	if sl.terminal && sl.drawn {
		fmt.Fprintln(sl.out)
		sl.drawn = false
	}
}
