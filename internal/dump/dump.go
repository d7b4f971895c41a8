// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package dump splits a multi-server diagnostic dump into server blocks and
// locates the known sections inside each block.
package dump

import (
	"regexp"
	"strings"
)

// ServerBlock is the raw text collected for one server
type ServerBlock struct {
	ID      string
	RawText string
}

var serverDelimiterRe = regexp.MustCompile(`=== Server: (.*?) ===`)

// SplitBlocks partitions the dump into server blocks in the order they appear.
// Text before the first delimiter is ignored. A dump without delimiters yields no blocks.
func SplitBlocks(text string) []ServerBlock {
	matches := serverDelimiterRe.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]ServerBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, ServerBlock{
			ID:      strings.TrimSpace(text[m[2]:m[3]]),
			RawText: strings.TrimSpace(text[m[1]:end]),
		})
	}
	return blocks
}

// UnknownHostname is reported when a block carries no Hostname line
const UnknownHostname = "Unknown"

var hostnameRe = regexp.MustCompile(`Hostname:\s*(.*)`)

// Hostname returns the value of the first Hostname line in the block
func (b ServerBlock) Hostname() string {
	match := hostnameRe.FindStringSubmatch(b.RawText)
	if len(match) < 2 {
		return UnknownHostname
	}
	hostname := strings.TrimSpace(match[1])
	if hostname == "" {
		return UnknownHostname
	}
	return hostname
}

// Lines splits the block into lines, dropping carriage returns
func (b ServerBlock) Lines() []string {
	lines := strings.Split(b.RawText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
